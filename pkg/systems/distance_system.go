package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/utils"
)

const (
	distanceLeadTimerName = "distance.lead"
	distanceTickTimerName = "distance.tick"
)

// DistanceSystem 模拟距离倒计时系统
//
// Start 之后先等待引导延迟，再以固定间隔递减固定次数，然后自动停止。
// 第 k 次递减后的显示值 = round1(起始值 - k × 总递减量 / 次数)，
// 因此完整跑完一轮正好减少配置的总量（25.0 → 17.0）。
type DistanceSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	entity        ecs.EntityID
	cfg           config.DistanceConfig
}

// NewDistanceSystem 创建距离倒计时系统
func NewDistanceSystem(em *ecs.EntityManager, timers *TimerSystem, cfg config.DistanceConfig) *DistanceSystem {
	s := &DistanceSystem{
		entityManager: em,
		timers:        timers,
		cfg:           cfg,
	}
	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.DistanceComponent{
		MetersRemaining: cfg.Initial,
		InitialMeters:   cfg.Initial,
	})
	return s
}

// Entity 返回持有 DistanceComponent 的实体
func (s *DistanceSystem) Entity() ecs.EntityID {
	return s.entity
}

func (s *DistanceSystem) distance() *components.DistanceComponent {
	d, ok := ecs.GetComponent[*components.DistanceComponent](s.entityManager, s.entity)
	if !ok {
		d = &components.DistanceComponent{MetersRemaining: s.cfg.Initial, InitialMeters: s.cfg.Initial}
		ecs.AddComponent(s.entityManager, s.entity, d)
	}
	return d
}

// Start 开始一轮倒计时
// 进行中的倒计时被取代，新一轮从当前显示值开始
func (s *DistanceSystem) Start() {
	d := s.distance()
	s.cancelLoop(d)

	d.Active = true
	d.TicksDone = 0
	d.LeadTimer = s.timers.Schedule(distanceLeadTimerName, s.cfg.LeadDelay, s.beginRun)

	log.Printf("[DistanceSystem] Start: %.1fm, countdown in %.2fs", d.MetersRemaining, s.cfg.LeadDelay)
}

// beginRun 引导延迟结束，开始递减
func (s *DistanceSystem) beginRun() {
	d := s.distance()
	d.LeadTimer = 0
	d.RunStartMeters = d.MetersRemaining
	d.TicksDone = 0
	d.TickTimer = s.timers.ScheduleRepeating(distanceTickTimerName, s.cfg.TickInterval, s.cfg.Ticks, s.tick)
}

func (s *DistanceSystem) tick() {
	d := s.distance()
	d.TicksDone++

	step := s.cfg.Total / float64(s.cfg.Ticks)
	value := utils.Round1(d.RunStartMeters - float64(d.TicksDone)*step)
	if value < s.cfg.Floor {
		value = s.cfg.Floor
	}
	d.MetersRemaining = value

	if d.TicksDone >= s.cfg.Ticks {
		d.Active = false
		d.TickTimer = 0
		log.Printf("[DistanceSystem] Countdown finished at %.1fm", d.MetersRemaining)
	}
}

// Reset 恢复初始距离并取消进行中的倒计时
func (s *DistanceSystem) Reset() {
	d := s.distance()
	s.cancelLoop(d)
	d.MetersRemaining = d.InitialMeters
	d.RunStartMeters = d.InitialMeters
	d.TicksDone = 0
	d.Active = false
}

func (s *DistanceSystem) cancelLoop(d *components.DistanceComponent) {
	s.timers.Cancel(d.LeadTimer)
	s.timers.Cancel(d.TickTimer)
	d.LeadTimer = 0
	d.TickTimer = 0
}

// State 返回距离状态的副本
func (s *DistanceSystem) State() components.DistanceComponent {
	return *s.distance()
}
