// guidance-tui 在终端中运行引导模拟器
//
// 空格 / 回车 = 点击画面，y / n = 回答引导提示，q / Esc = 退出。
//
// 用法：
//
//	go run ./cmd/guidance-tui
//	go run ./cmd/guidance-tui -store http://localhost:8787 -code ABC123
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/session"
	"github.com/decker502/arpathfinder/pkg/store"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

var (
	storeURL        = flag.String("store", "", "位置存储服务地址，为空时不追踪好友")
	trackCode       = flag.String("code", "", "追踪的共享码")
	guidanceConfig  = flag.String("config", "", "引导配置文件路径（为空时使用内置配置）")
	logFile         = flag.String("log", "", "日志文件（终端界面运行时日志不能输出到屏幕）")
	denyCamera      = flag.Bool("deny-camera", false, "模拟拒绝相机权限")
	denyLocation    = flag.Bool("deny-location", false, "模拟拒绝定位权限")
	permissionDelay = flag.Duration("permission-delay", 500*time.Millisecond, "模拟权限弹窗的等待时间")
)

// Game 终端引导界面
type Game struct {
	screen  tcell.Screen
	session *session.Session
	view    *View
}

func main() {
	flag.Parse()

	closeLog, err := setupLogging(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "guidance-tui: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "guidance-tui: %v\n", err)
		os.Exit(1)
	}
	sess, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "guidance-tui: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "guidance-tui: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "guidance-tui: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	g := &Game{screen: screen, session: sess, view: NewView(screen, cfg.Onboarding)}
	sess.Mount(context.Background())
	g.run()

	sess.Unmount()
	screen.Fini()
}

// setupLogging 日志写入文件，未指定时丢弃
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}

// loadConfig 加载引导配置，未指定文件时使用内置配置
func loadConfig() (*config.GuidanceConfig, error) {
	if *guidanceConfig == "" {
		return config.DefaultGuidanceConfig(), nil
	}
	return config.LoadGuidanceConfig(*guidanceConfig)
}

// newSession 根据命令行参数组装会话
func newSession(cfg *config.GuidanceConfig) (*session.Session, error) {
	opts := session.Options{}
	camera, loc := capability.Granted, capability.Granted
	if *denyCamera {
		camera = capability.Denied
	}
	if *denyLocation {
		loc = capability.Denied
	}
	opts.Provider = capability.NewStaticProvider(camera, loc, *permissionDelay)

	if *trackCode != "" {
		c, err := code.Parse(*trackCode)
		if err != nil {
			return nil, fmt.Errorf("invalid -code: %w", err)
		}
		if *storeURL == "" {
			return nil, fmt.Errorf("-code requires -store")
		}
		opts.Code = c
		opts.Store = store.NewHTTPStore(*storeURL, &http.Client{Timeout: store.DefaultWatchTimeout + 10*time.Second})
	}

	return session.New(ecs.NewEntityManager(), cfg, opts)
}

func (g *Game) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			g.session.Update(now.Sub(last).Seconds())
			last = now
			g.view.Draw(g.session)
		}
	}
}

// handleInput 返回 false 表示退出
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			g.session.Tap()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				g.session.Tap()
			case 'y', 'Y':
				g.session.Confirm()
			case 'n', 'N':
				g.session.Decline()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			g.session.Tap()
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}
