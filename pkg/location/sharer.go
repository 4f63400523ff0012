package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/store"
	"github.com/google/uuid"
)

// DefaultShareInterval 默认上报间隔
const DefaultShareInterval = time.Second

// putTimeout 单次上报超时
const putTimeout = 5 * time.Second

// Sharer 共享端：持续把当前位置写入存储
//
// 同一时刻最多只有一个位置监听；SetCode 会替换它，Stop 会释放它。
// 写入失败只记录日志，不会中断监听，也不重试。
type Sharer struct {
	store    store.Store
	source   PositionSource
	interval time.Duration

	mu     sync.Mutex
	code   string
	cancel context.CancelFunc
	done   chan struct{}

	shared   atomic.Int64
	failures atomic.Int64
	watchErr atomic.Pointer[error]
}

// NewSharer 创建共享端
// interval <= 0 时使用 DefaultShareInterval
func NewSharer(st store.Store, source PositionSource, interval time.Duration) *Sharer {
	if interval <= 0 {
		interval = DefaultShareInterval
	}
	return &Sharer{store: st, source: source, interval: interval}
}

// Start 开始共享（等同于 SetCode）
func (s *Sharer) Start(c string) error {
	return s.SetCode(c)
}

// SetCode 以新的共享码重新开始监听
func (s *Sharer) SetCode(c string) error {
	if err := code.Validate(c); err != nil {
		return fmt.Errorf("start sharing: %w", err)
	}

	s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sessionID := uuid.New()

	s.mu.Lock()
	s.code = c
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()
	s.watchErr.Store(nil)

	log.Printf("[LocationSharer] Sharing %s (session %s, every %v)", c, sessionID, s.interval)

	go func() {
		defer close(done)
		err := s.source.Watch(ctx, s.interval, func(p Position) {
			s.share(ctx, c, p)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.watchErr.Store(&err)
			log.Printf("[LocationSharer] Position watch for %s ended: %v", c, err)
		}
	}()
	return nil
}

// share 写入一次位置
func (s *Sharer) share(ctx context.Context, c string, p Position) {
	if ctx.Err() != nil {
		return
	}
	putCtx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	rec := store.LocationRecord{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timestamp: p.Timestamp.UnixMilli(),
	}
	if err := s.store.Put(putCtx, c, rec); err != nil {
		s.failures.Add(1)
		log.Printf("[LocationSharer] Failed to share location for %s: %v", c, err)
		return
	}
	s.shared.Add(1)
}

// Stop 停止监听并等待其退出
func (s *Sharer) Stop() {
	s.mu.Lock()
	cancel, done, c := s.cancel, s.done, s.code
	s.cancel, s.done, s.code = nil, nil, ""
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Printf("[LocationSharer] Stopped sharing %s", c)
}

// Code 当前共享码，未共享时为空
func (s *Sharer) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// Active 是否正在共享
func (s *Sharer) Active() bool {
	return s.Code() != ""
}

// SharedCount 成功写入次数
func (s *Sharer) SharedCount() int64 { return s.shared.Load() }

// FailureCount 写入失败次数
func (s *Sharer) FailureCount() int64 { return s.failures.Load() }

// WatchErr 位置监听异常结束时的错误，正常运行或被 Stop 时为 nil
func (s *Sharer) WatchErr() error {
	if err := s.watchErr.Load(); err != nil {
		return *err
	}
	return nil
}
