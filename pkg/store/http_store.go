package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/decker502/arpathfinder/pkg/code"
)

// watchRetryDelay 长轮询失败后的重试间隔
const watchRetryDelay = time.Second

// HTTPStore 通过 locationd 服务读写位置的客户端
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore 创建客户端
// client 为 nil 时使用 http.DefaultClient
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (h *HTTPStore) locationURL(c string) string {
	return h.baseURL + "/locations/" + url.PathEscape(c)
}

// Put 写入位置
func (h *HTTPStore) Put(ctx context.Context, c string, rec LocationRecord) error {
	if err := code.Validate(c); err != nil {
		return fmt.Errorf("put location: %w", err)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.locationURL(c), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("put location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("put location: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Get 读取最新位置
func (h *HTTPStore) Get(ctx context.Context, c string) (LocationRecord, error) {
	rec, _, err := h.fetch(ctx, h.locationURL(c))
	if err != nil {
		return LocationRecord{}, err
	}
	if rec == nil {
		return LocationRecord{}, ErrNotFound
	}
	return *rec, nil
}

// fetch 发送 GET 请求
// 404 / 204 返回 (nil, 0, nil)
func (h *HTTPStore) fetch(ctx context.Context, rawURL string) (*LocationRecord, uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("get location: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		return nil, 0, nil
	default:
		return nil, 0, fmt.Errorf("get location: unexpected status %d", resp.StatusCode)
	}

	var rec LocationRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, 0, fmt.Errorf("failed to decode location: %w", err)
	}
	version, _ := strconv.ParseUint(resp.Header.Get(VersionHeader), 10, 64)
	return &rec, version, nil
}

// httpSubscription 长轮询订阅
type httpSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Unsubscribe 停止长轮询并等待 goroutine 退出
func (s *httpSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Subscribe 订阅位置变化
// 先 GET 一次得到当前值，然后循环长轮询 /watch
func (h *HTTPStore) Subscribe(ctx context.Context, c string, fn func(*LocationRecord)) (Subscription, error) {
	if err := code.Validate(c); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	rec, version, err := h.fetch(ctx, h.locationURL(c))
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	sub := &httpSubscription{cancel: cancel, done: make(chan struct{})}

	fn(rec)

	go func() {
		defer close(sub.done)
		for {
			watchURL := fmt.Sprintf("%s/watch?version=%d", h.locationURL(c), version)
			next, nextVersion, err := h.fetch(watchCtx, watchURL)
			if watchCtx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("[HTTPStore] watch %s failed: %v", c, err)
				select {
				case <-watchCtx.Done():
					return
				case <-time.After(watchRetryDelay):
				}
				continue
			}
			if next == nil {
				continue // 超时，继续等待
			}
			version = nextVersion
			fn(next)
		}
	}()

	return sub, nil
}
