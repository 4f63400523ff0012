// Package session 管理一次引导会话的挂载生命周期
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/store"
	"github.com/decker502/arpathfinder/pkg/systems"
	"github.com/google/uuid"
)

// State 会话状态
type State int

const (
	// StateLoading 权限请求尚未全部返回
	StateLoading State = iota
	// StateDenied 任一权限被拒绝（终止态，只能退出）
	StateDenied
	// StateReady 权限齐全，引擎开始运行
	StateReady
)

// String 返回 State 的字符串表示
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateDenied:
		return "Denied"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Options 会话依赖
type Options struct {
	// Provider 权限提供者（必填）
	Provider capability.Provider
	// Store 位置存储，可为 nil（不订阅）
	Store store.Store
	// Code 追踪的共享码，为空时不订阅
	Code string
}

// Session 一次引导会话
//
// 权限请求和存储订阅在后台 goroutine 中进行，结果经 EventQueue
// 在 Update 开头回到主循环。Unmount 之后会话不再修改任何状态。
type Session struct {
	ID     uuid.UUID
	Engine *systems.GuidanceEngine

	provider capability.Provider
	store    store.Store
	code     string

	events *game.EventQueue
	cancel context.CancelFunc

	state    State
	camera   *capability.Status
	location *capability.Status
	friend   *store.LocationRecord
	mounted  bool
	finished bool

	subMu        sync.Mutex
	subscription store.Subscription
	released     bool
}

// New 创建会话（尚未挂载）
func New(em *ecs.EntityManager, cfg *config.GuidanceConfig, opts Options) (*Session, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("session: capability provider is required")
	}
	engine, err := systems.NewGuidanceEngine(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return &Session{
		ID:       uuid.New(),
		Engine:   engine,
		provider: opts.Provider,
		store:    opts.Store,
		code:     opts.Code,
		events:   game.NewEventQueue(),
		state:    StateLoading,
	}, nil
}

// Mount 挂载会话：并发请求相机和定位权限，并订阅好友位置
func (s *Session) Mount(ctx context.Context) {
	if s.mounted || s.finished {
		return
	}
	s.mounted = true
	ctx, s.cancel = context.WithCancel(ctx)

	log.Printf("[Session] %s mounted (code=%q)", s.ID, s.code)

	go s.requestCapability(ctx, "camera", s.provider.RequestCameraAccess, func(st capability.Status) {
		s.camera = &st
	})
	go s.requestCapability(ctx, "location", s.provider.RequestLocationAccess, func(st capability.Status) {
		s.location = &st
	})

	if s.store != nil && s.code != "" {
		go s.subscribe(ctx)
	}
}

// requestCapability 在后台请求权限，把结果投递回主循环
func (s *Session) requestCapability(ctx context.Context, kind string, request func(context.Context) (capability.Status, error), apply func(capability.Status)) {
	st, err := request(ctx)
	if err != nil {
		log.Printf("[Session] %s request failed: %v (treated as denied)", kind, err)
		st = capability.Denied
	}
	s.events.Post(func() {
		apply(st)
		s.resolve()
	})
}

// resolve 两个权限都返回后确定最终状态
func (s *Session) resolve() {
	if s.state != StateLoading || s.camera == nil || s.location == nil {
		return
	}
	if *s.camera == capability.Granted && *s.location == capability.Granted {
		s.state = StateReady
	} else {
		s.state = StateDenied
	}
	log.Printf("[Session] %s capabilities resolved: camera=%v location=%v -> %v", s.ID, *s.camera, *s.location, s.state)
}

// subscribe 订阅好友位置，回调投递回主循环
func (s *Session) subscribe(ctx context.Context) {
	sub, err := s.store.Subscribe(ctx, s.code, func(rec *store.LocationRecord) {
		s.events.Post(func() {
			s.friend = rec
		})
	})
	if err != nil {
		log.Printf("[Session] subscribe %s failed: %v", s.code, err)
		return
	}

	s.subMu.Lock()
	if s.released {
		s.subMu.Unlock()
		sub.Unsubscribe()
		return
	}
	s.subscription = sub
	s.subMu.Unlock()
}

// Update 处理后台事件并推进引擎
func (s *Session) Update(deltaTime float64) {
	if !s.mounted {
		return
	}
	s.events.Drain()
	if s.state == StateReady {
		s.Engine.Update(deltaTime)
	}
}

// Tap 主画面点击，只有 Ready 状态下才交给引擎
func (s *Session) Tap() bool {
	if !s.mounted || s.state != StateReady {
		return false
	}
	return s.Engine.Tap()
}

// Confirm 引导提示确认
func (s *Session) Confirm() {
	if s.mounted && s.state == StateReady {
		s.Engine.Confirm()
	}
}

// Decline 引导提示拒绝
func (s *Session) Decline() {
	if s.mounted && s.state == StateReady {
		s.Engine.Decline()
	}
}

// Unmount 卸载会话：取消所有计时器和后台请求，释放订阅
// 可重复调用
func (s *Session) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.finished = true

	if s.cancel != nil {
		s.cancel()
	}
	cancelled := s.Engine.Stop()
	s.events.Close()

	s.subMu.Lock()
	s.released = true
	sub := s.subscription
	s.subscription = nil
	s.subMu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}

	log.Printf("[Session] %s unmounted (%d timers cancelled)", s.ID, cancelled)
}

// State 当前会话状态
func (s *Session) State() State {
	return s.state
}

// Mounted 是否处于挂载状态
func (s *Session) Mounted() bool {
	return s.mounted
}

// Code 追踪的共享码
func (s *Session) Code() string {
	return s.code
}

// FriendLocation 最近一次收到的好友位置
func (s *Session) FriendLocation() (store.LocationRecord, bool) {
	if s.friend == nil {
		return store.LocationRecord{}, false
	}
	return *s.friend, true
}

// HasSubscription 是否持有存储订阅
func (s *Session) HasSubscription() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return s.subscription != nil
}
