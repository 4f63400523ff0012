package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// timerEpsilon 浮点累加误差容忍（90 帧 × 1/60 秒应视为正好 1.5 秒）
const timerEpsilon = 1e-9

// TimerSystem 帧驱动计时器系统
//
// 所有延迟回调（消息自动清除、提示动画结束、距离倒计时）都以实体 + TimerComponent 的形式存在。
// 回调在 Update 中同步执行，因此与点击处理严格串行。
//
// 取消语义：Cancel 立即移除 TimerComponent，被取消的计时器在本帧剩余时间和之后都不会触发。
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{
		entityManager: em,
	}
}

// Schedule 创建一次性计时器
// 参数:
//   - name: 计时器名称（用于 CancelNamed 和日志）
//   - delay: 延迟（秒）
//   - fn: 触发回调
//
// 返回: 计时器实体 ID（取消句柄）
func (s *TimerSystem) Schedule(name string, delay float64, fn func()) ecs.EntityID {
	return s.ScheduleRepeating(name, delay, 1, fn)
}

// ScheduleRepeating 创建固定次数的重复计时器
// 参数:
//   - interval: 每次触发的间隔（秒）
//   - count: 总触发次数（<1 视为 1）
func (s *TimerSystem) ScheduleRepeating(name string, interval float64, count int, fn func()) ecs.EntityID {
	if count < 1 {
		count = 1
	}
	if interval < 0 {
		interval = 0
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:        name,
		TargetTime:  interval,
		RepeatCount: count,
		OnFire:      fn,
	})
	return id
}

// Cancel 取消计时器
// 返回: 计时器是否仍处于挂起状态（false 表示已触发完毕或已取消）
func (s *TimerSystem) Cancel(id ecs.EntityID) bool {
	if id == 0 {
		return false
	}
	if !ecs.HasComponent[*components.TimerComponent](s.entityManager, id) {
		return false
	}
	ecs.RemoveComponent[*components.TimerComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
	return true
}

// CancelNamed 取消所有指定名称的计时器，返回取消数量
func (s *TimerSystem) CancelNamed(name string) int {
	cancelled := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok || timer.Name != name {
			continue
		}
		if s.Cancel(id) {
			cancelled++
		}
	}
	return cancelled
}

// CancelAll 取消所有计时器，返回取消数量
func (s *TimerSystem) CancelAll() int {
	cancelled := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		if s.Cancel(id) {
			cancelled++
		}
	}
	if cancelled > 0 {
		log.Printf("[TimerSystem] 取消了 %d 个挂起的计时器", cancelled)
	}
	return cancelled
}

// IsPending 检查计时器是否仍挂起
func (s *TimerSystem) IsPending(id ecs.EntityID) bool {
	return id != 0 && ecs.HasComponent[*components.TimerComponent](s.entityManager, id)
}

// Pending 返回挂起的计时器数量
func (s *TimerSystem) Pending() int {
	return len(ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager))
}

// Update 推进所有计时器
// 本帧回调中新创建的计时器从下一帧开始计时
func (s *TimerSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if !ok {
			// 被本帧更早的回调取消
			continue
		}

		timer.CurrentTime += deltaTime

		// 一帧内可能跨过多个间隔（大 dt 或很短的间隔）
		for timer.FiredCount < timer.RepeatCount && timer.CurrentTime+timerEpsilon >= timer.TargetTime {
			timer.CurrentTime -= timer.TargetTime
			timer.FiredCount++

			last := timer.FiredCount >= timer.RepeatCount
			if last {
				// 先移除再回调，回调中可以安全地重新调度同名计时器
				timer.IsReady = true
				ecs.RemoveComponent[*components.TimerComponent](s.entityManager, id)
				s.entityManager.DestroyEntity(id)
			}

			if timer.OnFire != nil {
				timer.OnFire()
			}

			if last {
				break
			}
			// 回调可能取消了自己
			if !ecs.HasComponent[*components.TimerComponent](s.entityManager, id) {
				break
			}
			if timer.TargetTime <= 0 {
				// 零间隔的重复计时器每帧只触发一次，避免死循环
				break
			}
		}
	}
}
