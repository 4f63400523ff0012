package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// SequenceSystem 引导序列引擎
//
// 持有当前步骤索引，把被接受的点击路由到：
//   - 引导提示（序列尚未开始）
//   - 步骤执行（消息 → MessageSystem，方向 → CueAnimationSystem，"靠近"方向额外启动 DistanceSystem）
//   - 完整重置（所有步骤已执行完毕）
//
// 状态机:
//
//	Idle --tap--> Prompt --confirm--> Running --tap × N--> Finished --tap--> Idle
//	                 \--decline--> Idle
type SequenceSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	approach      components.Direction

	cue      *CueAnimationSystem
	messages *MessageSystem
	distance *DistanceSystem

	onStepDispatched func(index int, step components.Step)
}

// NewSequenceSystem 创建序列引擎
// 参数:
//   - steps: 有序脚本（只读）
//   - approach: 触发距离倒计时的方向
func NewSequenceSystem(
	em *ecs.EntityManager,
	steps []components.Step,
	approach components.Direction,
	cue *CueAnimationSystem,
	messages *MessageSystem,
	distance *DistanceSystem,
) *SequenceSystem {
	s := &SequenceSystem{
		entityManager: em,
		approach:      approach,
		cue:           cue,
		messages:      messages,
		distance:      distance,
	}
	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.SequenceComponent{Steps: steps})
	return s
}

// Entity 返回持有 SequenceComponent 的实体
func (s *SequenceSystem) Entity() ecs.EntityID {
	return s.entity
}

// SetOnStepDispatched 设置步骤执行回调（日志、提示音）
func (s *SequenceSystem) SetOnStepDispatched(fn func(index int, step components.Step)) {
	s.onStepDispatched = fn
}

// SetPromptEntity 绑定引导提示对话框实体
// 绑定后 NotificationVisible 的变化同步到 DialogComponent.IsVisible
func (s *SequenceSystem) SetPromptEntity(id ecs.EntityID) {
	seq := s.sequence()
	seq.PromptEntity = id
	s.syncPrompt(seq)
}

func (s *SequenceSystem) sequence() *components.SequenceComponent {
	seq, ok := ecs.GetComponent[*components.SequenceComponent](s.entityManager, s.entity)
	if !ok {
		seq = &components.SequenceComponent{}
		ecs.AddComponent(s.entityManager, s.entity, seq)
	}
	return seq
}

// Advance 处理一次被接受的点击
func (s *SequenceSystem) Advance() {
	seq := s.sequence()

	// 提示可见时必须先在提示中做出选择
	if seq.NotificationVisible {
		log.Printf("[SequenceSystem] 引导提示可见，忽略点击")
		return
	}

	// 尚未开始：点击只唤出提示，不推进
	if !seq.Started {
		seq.OnboardingAcknowledged = true
		s.setPromptVisible(seq, true)
		log.Printf("[SequenceSystem] 显示引导提示")
		return
	}

	// 脚本执行完毕：完整重置
	if seq.CurrentIndex >= len(seq.Steps) {
		log.Printf("[SequenceSystem] 序列结束，重置")
		s.Reset()
		return
	}

	index := seq.CurrentIndex
	step := seq.Steps[index]
	switch step.Kind {
	case components.StepMessage:
		s.messages.Show(step.Text)
	case components.StepDirection:
		s.cue.Trigger(step.Direction)
	}
	seq.CurrentIndex++

	if step.Kind == components.StepDirection && step.Direction == s.approach {
		s.distance.Start()
	}

	log.Printf("[SequenceSystem] 步骤 %d/%d: %s", index+1, len(seq.Steps), step.Kind)

	if s.onStepDispatched != nil {
		s.onStepDispatched(index, step)
	}
}

// Confirm 用户在引导提示中选择开始
func (s *SequenceSystem) Confirm() {
	seq := s.sequence()
	if !seq.NotificationVisible {
		return
	}
	seq.Started = true
	seq.CurrentIndex = 0
	s.setPromptVisible(seq, false)
	log.Printf("[SequenceSystem] 用户确认，开始引导")
}

// Decline 用户在引导提示中拒绝
// 下一次被接受的点击会重新唤出提示
func (s *SequenceSystem) Decline() {
	seq := s.sequence()
	if !seq.NotificationVisible {
		return
	}
	seq.Started = false
	seq.OnboardingAcknowledged = false
	s.setPromptVisible(seq, false)
	log.Printf("[SequenceSystem] 用户拒绝")
}

// Reset 恢复初始状态，同时清除提示、消息和距离倒计时
func (s *SequenceSystem) Reset() {
	seq := s.sequence()
	seq.CurrentIndex = 0
	seq.Started = false
	seq.OnboardingAcknowledged = false
	s.setPromptVisible(seq, false)

	s.distance.Reset()
	s.cue.Reset()
	s.messages.Clear()
}

func (s *SequenceSystem) setPromptVisible(seq *components.SequenceComponent, visible bool) {
	seq.NotificationVisible = visible
	s.syncPrompt(seq)
}

func (s *SequenceSystem) syncPrompt(seq *components.SequenceComponent) {
	if seq.PromptEntity == 0 {
		return
	}
	if dialog, ok := ecs.GetComponent[*components.DialogComponent](s.entityManager, seq.PromptEntity); ok {
		dialog.IsVisible = seq.NotificationVisible
	}
}

// State 返回序列状态的副本
func (s *SequenceSystem) State() components.SequenceComponent {
	return *s.sequence()
}
