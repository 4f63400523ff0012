package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/gorilla/mux"
)

// VersionHeader 响应中携带记录版本号的头
const VersionHeader = "X-Location-Version"

// DefaultWatchTimeout 长轮询默认超时
const DefaultWatchTimeout = 25 * time.Second

// Server 位置存储 HTTP 服务
//
// 路由：
//   - PUT /locations/{code}            写入位置，204
//   - GET /locations/{code}            读取位置，200 / 404
//   - GET /locations/{code}/watch      长轮询，?version=N，有新版本 200，超时 204
//   - GET /health                      健康检查
type Server struct {
	store        *MemoryStore
	watchTimeout time.Duration
}

// NewServer 创建服务
// watchTimeout <= 0 时使用 DefaultWatchTimeout
func NewServer(store *MemoryStore, watchTimeout time.Duration) *Server {
	if watchTimeout <= 0 {
		watchTimeout = DefaultWatchTimeout
	}
	return &Server{store: store, watchTimeout: watchTimeout}
}

// Router 返回配置好路由的 mux.Router
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			log.Printf("[StoreServer] health write failed: %v", err)
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/locations/{code}", s.handlePut).Methods(http.MethodPut)
	r.HandleFunc("/locations/{code}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/locations/{code}/watch", s.handleWatch).Methods(http.MethodGet)
	return r
}

// codeFromRequest 读取并校验路径中的共享码
func codeFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	c := mux.Vars(r)["code"]
	if err := code.Validate(c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return c, true
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	c, ok := codeFromRequest(w, r)
	if !ok {
		return
	}

	var rec LocationRecord
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		http.Error(w, "invalid location body", http.StatusBadRequest)
		return
	}

	if err := s.store.Put(r.Context(), c, rec); err != nil {
		log.Printf("[StoreServer] put %s failed: %v", c, err)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := codeFromRequest(w, r)
	if !ok {
		return
	}

	rec, version, err := s.store.GetVersion(r.Context(), c)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	writeRecord(w, rec, version)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	c, ok := codeFromRequest(w, r)
	if !ok {
		return
	}

	var since uint64
	if v := r.URL.Query().Get("version"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid version", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.watchTimeout)
	defer cancel()

	rec, version, err := s.store.Watch(ctx, c, since)
	if err != nil {
		// 超时或客户端断开
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeRecord(w, rec, version)
}

func writeRecord(w http.ResponseWriter, rec LocationRecord, version uint64) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(VersionHeader, strconv.FormatUint(version, 10))
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Printf("[StoreServer] encode failed: %v", err)
	}
}
