// locationd 位置存储服务
//
// 共享端 PUT 自己的位置，追踪端 GET 或长轮询 watch 接口获取更新。
// 数据只保存在内存中，进程退出即丢失。
//
// 用法：
//
//	go run ./cmd/locationd -addr :8787
//	go run . -store http://localhost:8787
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decker502/arpathfinder/pkg/store"
)

var (
	addr         = flag.String("addr", ":8787", "监听地址")
	watchTimeout = flag.Duration("watch-timeout", store.DefaultWatchTimeout, "长轮询超时时间")
	verbose      = flag.Bool("verbose", true, "显示请求日志")
)

func main() {
	flag.Parse()

	server := store.NewServer(store.NewMemoryStore(), *watchTimeout)
	router := server.Router()
	if *verbose {
		router.Use(logRequests)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[locationd] Listening on %s (watch timeout %v)", *addr, *watchTimeout)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[locationd] Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[locationd] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *watchTimeout+5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[locationd] Shutdown error: %v", err)
	}
}

// logRequests 记录每个请求的方法、路径和耗时
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[locationd] %s %s (%v)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Millisecond))
	})
}
