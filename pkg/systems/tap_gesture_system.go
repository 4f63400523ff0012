package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// TapGestureSystem 点击去抖系统
// 距离上一次被接受的点击不足冷却时间的点击被静默丢弃，
// 被接受的点击转发给 onAccepted（序列引擎的点击路由）
type TapGestureSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	onAccepted    func()
}

// NewTapGestureSystem 创建点击去抖系统
func NewTapGestureSystem(em *ecs.EntityManager, cooldown float64, onAccepted func()) *TapGestureSystem {
	s := &TapGestureSystem{
		entityManager: em,
		onAccepted:    onAccepted,
	}
	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.TapGestureComponent{Cooldown: cooldown})
	return s
}

func (s *TapGestureSystem) gesture() *components.TapGestureComponent {
	g, ok := ecs.GetComponent[*components.TapGestureComponent](s.entityManager, s.entity)
	if !ok {
		g = &components.TapGestureComponent{}
		ecs.AddComponent(s.entityManager, s.entity, g)
	}
	return g
}

// OnTap 处理一次点击
// 参数: now - 会话时钟（秒）
// 返回: 点击是否被接受
func (s *TapGestureSystem) OnTap(now float64) bool {
	g := s.gesture()

	if g.HasAcceptedTap && now-g.LastAcceptedTap+timerEpsilon < g.Cooldown {
		g.RejectedCount++
		log.Printf("[TapGestureSystem] 冷却中，忽略点击 (%.2fs since last)", now-g.LastAcceptedTap)
		return false
	}

	// 状态在转发之前同步更新，两次点击不可能交错
	g.HasAcceptedTap = true
	g.LastAcceptedTap = now
	g.AcceptedCount++

	if s.onAccepted != nil {
		s.onAccepted()
	}
	return true
}

// State 返回去抖状态的副本
func (s *TapGestureSystem) State() components.TapGestureComponent {
	return *s.gesture()
}
