package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

const messageClearTimerName = "message.clear"

// MessageSystem 对话消息显示系统
// 一条消息最多对应一个自动清除计时器，显示新消息时旧计时器被取消并替换
type MessageSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	entity        ecs.EntityID
	duration      float64
	clock         func() float64
}

// NewMessageSystem 创建消息系统
// 参数:
//   - duration: 自动清除时间（秒）
//   - clock: 会话时钟，用于计算 ExpiresAt
func NewMessageSystem(em *ecs.EntityManager, timers *TimerSystem, duration float64, clock func() float64) *MessageSystem {
	s := &MessageSystem{
		entityManager: em,
		timers:        timers,
		duration:      duration,
		clock:         clock,
	}
	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.MessageComponent{})
	return s
}

// Entity 返回持有 MessageComponent 的实体
func (s *MessageSystem) Entity() ecs.EntityID {
	return s.entity
}

func (s *MessageSystem) message() *components.MessageComponent {
	msg, ok := ecs.GetComponent[*components.MessageComponent](s.entityManager, s.entity)
	if !ok {
		msg = &components.MessageComponent{}
		ecs.AddComponent(s.entityManager, s.entity, msg)
	}
	return msg
}

// Show 显示消息并（重新）安排自动清除
func (s *MessageSystem) Show(text string) {
	msg := s.message()
	s.timers.Cancel(msg.ClearTimer)

	msg.Text = text
	msg.Visible = true
	msg.ExpiresAt = s.clock() + s.duration
	msg.ClearTimer = s.timers.Schedule(messageClearTimerName, s.duration, func() {
		msg := s.message()
		msg.ClearTimer = 0
		msg.Text = ""
		msg.Visible = false
	})

	log.Printf("[MessageSystem] Show %q (expires at %.2fs)", text, msg.ExpiresAt)
}

// Clear 立即清除消息并取消自动清除计时器
func (s *MessageSystem) Clear() {
	msg := s.message()
	s.timers.Cancel(msg.ClearTimer)
	msg.ClearTimer = 0
	msg.Text = ""
	msg.Visible = false
	msg.ExpiresAt = 0
}

// State 返回消息状态的副本
func (s *MessageSystem) State() components.MessageComponent {
	return *s.message()
}
