package systems

import (
	"fmt"
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// GuidanceEngine 引导模拟器
// 把点击去抖、序列引擎、发光动画、消息、距离倒计时和计时器组装到同一个会话时钟上
//
// 所有方法只能在游戏循环所在的 goroutine 上调用。
type GuidanceEngine struct {
	entityManager *ecs.EntityManager
	clock         float64
	stopped       bool

	Timers   *TimerSystem
	Cue      *CueAnimationSystem
	Messages *MessageSystem
	Distance *DistanceSystem
	Taps     *TapGestureSystem
	Sequence *SequenceSystem
}

// GuidanceSnapshot 引擎全部派生状态的值拷贝（渲染和测试使用）
type GuidanceSnapshot struct {
	Now float64

	CurrentIndex           int
	StepCount              int
	Started                bool
	OnboardingAcknowledged bool
	NotificationVisible    bool

	CueActive    bool
	CueDirection components.Direction
	CueIntensity float64
	CuePhase     components.CuePhase

	Message        string
	MessageVisible bool

	MetersRemaining float64
	DistanceActive  bool

	PendingTimers int
}

// NewGuidanceEngine 根据配置创建引擎
func NewGuidanceEngine(em *ecs.EntityManager, cfg *config.GuidanceConfig) (*GuidanceEngine, error) {
	steps, err := cfg.Script()
	if err != nil {
		return nil, fmt.Errorf("failed to build guidance script: %w", err)
	}

	e := &GuidanceEngine{entityManager: em}
	e.Timers = NewTimerSystem(em)
	e.Cue = NewCueAnimationSystem(em, e.Timers, cfg)
	e.Messages = NewMessageSystem(em, e.Timers, cfg.Message.DisplayDuration, e.Now)
	e.Distance = NewDistanceSystem(em, e.Timers, cfg.Distance)
	e.Sequence = NewSequenceSystem(em, steps, cfg.ApproachDirection(), e.Cue, e.Messages, e.Distance)
	e.Taps = NewTapGestureSystem(em, cfg.Tap.Cooldown, e.Sequence.Advance)

	log.Printf("[GuidanceEngine] Initialized with %d steps", len(steps))
	return e, nil
}

// Now 返回会话时钟（累计帧时间，秒）
func (e *GuidanceEngine) Now() float64 {
	return e.clock
}

// Update 推进会话时钟、计时器和动画
func (e *GuidanceEngine) Update(deltaTime float64) {
	if e.stopped {
		return
	}
	e.clock += deltaTime
	e.Timers.Update(deltaTime)
	e.Cue.Update(deltaTime)
	e.entityManager.RemoveMarkedEntities()
}

// Tap 主画面上的一次点击（经过去抖）
// 返回: 点击是否被接受
func (e *GuidanceEngine) Tap() bool {
	if e.stopped {
		return false
	}
	return e.Taps.OnTap(e.clock)
}

// Confirm 引导提示的确认按钮
func (e *GuidanceEngine) Confirm() {
	if e.stopped {
		return
	}
	e.Sequence.Confirm()
}

// Decline 引导提示的拒绝按钮
func (e *GuidanceEngine) Decline() {
	if e.stopped {
		return
	}
	e.Sequence.Decline()
}

// Stop 取消所有计时器，之后引擎不再接受任何输入或时间推进
// 返回被取消的计时器数量
func (e *GuidanceEngine) Stop() int {
	if e.stopped {
		return 0
	}
	e.stopped = true
	cancelled := e.Timers.CancelAll()
	e.entityManager.RemoveMarkedEntities()
	log.Printf("[GuidanceEngine] Stopped, %d timers cancelled", cancelled)
	return cancelled
}

// Stopped 引擎是否已停止
func (e *GuidanceEngine) Stopped() bool {
	return e.stopped
}

// Snapshot 返回当前状态的值拷贝
func (e *GuidanceEngine) Snapshot() GuidanceSnapshot {
	seq := e.Sequence.State()
	cue := e.Cue.State()
	msg := e.Messages.State()
	dist := e.Distance.State()

	return GuidanceSnapshot{
		Now:                    e.clock,
		CurrentIndex:           seq.CurrentIndex,
		StepCount:              len(seq.Steps),
		Started:                seq.Started,
		OnboardingAcknowledged: seq.OnboardingAcknowledged,
		NotificationVisible:    seq.NotificationVisible,
		CueActive:              cue.HasDirection,
		CueDirection:           cue.Direction,
		CueIntensity:           cue.Intensity,
		CuePhase:               cue.Phase,
		Message:                msg.Text,
		MessageVisible:         msg.Visible,
		MetersRemaining:        dist.MetersRemaining,
		DistanceActive:         dist.Active,
		PendingTimers:          e.Timers.Pending(),
	}
}
