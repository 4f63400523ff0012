package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/google/uuid"
)

// entry 单个共享码的数据，只由 Put 创建
type entry struct {
	record  LocationRecord
	version uint64
	changed chan struct{} // 每次 Put 关闭并替换，用于长轮询
}

// waiter 等待尚未写入过的共享码的长轮询
// 最后一个等待者离开或首次 Put 时删除
type waiter struct {
	changed chan struct{}
	count   int
}

// memorySubscription 内存订阅
type memorySubscription struct {
	id     uuid.UUID
	code   string
	fn     func(*LocationRecord)
	active atomic.Bool
	store  *MemoryStore

	// 投递按版本号单调，较旧的快照不会覆盖已投递的新值
	mu        sync.Mutex
	version   uint64
	delivered bool
}

func (s *memorySubscription) Unsubscribe() {
	if s.active.CompareAndSwap(true, false) {
		s.store.removeSubscription(s.code, s.id)
	}
}

func (s *memorySubscription) deliver(rec *LocationRecord, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active.Load() {
		return
	}
	if s.delivered && version <= s.version {
		return
	}
	s.delivered = true
	s.version = version
	s.fn(rec)
}

// MemoryStore 进程内位置存储（并发安全）
// 同时是 locationd 服务端的后端
type MemoryStore struct {
	mu            sync.Mutex
	entries       map[string]*entry
	waiters       map[string]*waiter
	subscriptions map[string]map[uuid.UUID]*memorySubscription
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:       make(map[string]*entry),
		waiters:       make(map[string]*waiter),
		subscriptions: make(map[string]map[uuid.UUID]*memorySubscription),
	}
}

// entryLocked 获取或创建条目（调用方持有锁）
// 新条目会唤醒并移除该共享码的等待者
func (m *MemoryStore) entryLocked(c string) *entry {
	e, ok := m.entries[c]
	if !ok {
		e = &entry{changed: make(chan struct{})}
		m.entries[c] = e
		if w, ok := m.waiters[c]; ok {
			close(w.changed)
			delete(m.waiters, c)
		}
	}
	return e
}

// Put 写入位置并通知订阅方
func (m *MemoryStore) Put(ctx context.Context, c string, rec LocationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := code.Validate(c); err != nil {
		return fmt.Errorf("put location: %w", err)
	}

	m.mu.Lock()
	e := m.entryLocked(c)
	e.record = rec
	e.version++
	version := e.version
	close(e.changed)
	e.changed = make(chan struct{})

	subs := make([]*memorySubscription, 0, len(m.subscriptions[c]))
	for _, s := range m.subscriptions[c] {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		r := rec
		s.deliver(&r, version)
	}
	return nil
}

// Get 读取最新位置
func (m *MemoryStore) Get(ctx context.Context, c string) (LocationRecord, error) {
	rec, _, err := m.GetVersion(ctx, c)
	return rec, err
}

// GetVersion 读取最新位置及其版本号
func (m *MemoryStore) GetVersion(ctx context.Context, c string) (LocationRecord, uint64, error) {
	if err := ctx.Err(); err != nil {
		return LocationRecord{}, 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[c]
	if !ok {
		return LocationRecord{}, 0, ErrNotFound
	}
	return e.record, e.version, nil
}

// Watch 等待版本号大于 since 的位置
// ctx 超时或取消时返回 ctx.Err()
func (m *MemoryStore) Watch(ctx context.Context, c string, since uint64) (LocationRecord, uint64, error) {
	for {
		m.mu.Lock()
		var changed chan struct{}
		var w *waiter
		if e, ok := m.entries[c]; ok {
			if e.version > since {
				rec, version := e.record, e.version
				m.mu.Unlock()
				return rec, version, nil
			}
			changed = e.changed
		} else {
			// 未写入过的共享码不建条目，避免任意轮询让 entries 无限增长
			w = m.waiters[c]
			if w == nil {
				w = &waiter{changed: make(chan struct{})}
				m.waiters[c] = w
			}
			w.count++
			changed = w.changed
		}
		m.mu.Unlock()

		var err error
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-changed:
		}
		if w != nil {
			m.leaveWaiter(c, w)
		}
		if err != nil {
			return LocationRecord{}, 0, err
		}
	}
}

// leaveWaiter 等待者离开，最后一个离开时删除
func (m *MemoryStore) leaveWaiter(c string, w *waiter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.count--
	if w.count == 0 && m.waiters[c] == w {
		delete(m.waiters, c)
	}
}

// Subscribe 订阅某个共享码的位置变化
func (m *MemoryStore) Subscribe(ctx context.Context, c string, fn func(*LocationRecord)) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := code.Validate(c); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &memorySubscription{
		id:    uuid.New(),
		code:  c,
		fn:    fn,
		store: m,
	}
	sub.active.Store(true)

	m.mu.Lock()
	if m.subscriptions[c] == nil {
		m.subscriptions[c] = make(map[uuid.UUID]*memorySubscription)
	}
	m.subscriptions[c][sub.id] = sub
	var current *LocationRecord
	var version uint64
	if e, ok := m.entries[c]; ok {
		r := e.record
		current = &r
		version = e.version
	}
	m.mu.Unlock()

	log.Printf("[MemoryStore] Subscribed %s to %s", sub.id, c)
	sub.deliver(current, version)
	return sub, nil
}

// SubscriberCount 返回某个共享码的活跃订阅数
func (m *MemoryStore) SubscriberCount(c string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscriptions[c])
}

func (m *MemoryStore) removeSubscription(c string, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions[c], id)
	if len(m.subscriptions[c]) == 0 {
		delete(m.subscriptions, c)
	}
	log.Printf("[MemoryStore] Unsubscribed %s from %s", id, c)
}
