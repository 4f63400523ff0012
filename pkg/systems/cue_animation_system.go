package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/utils"
)

const cueClearTimerName = "cue.clear"

// CueAnimationSystem 方向提示发光动画系统
//
// 每次 Trigger 驱动强度走完固定的三段曲线：
//
//	0 → 1 渐入 (FadeIn) → 保持 (Hold) → 1 → 0 渐出 (FadeOut) → 清除方向
//
// 同一时间只有一个活动动画，新的 Trigger 立即覆盖旧的视觉状态。
// 旧动画的清除计时器不取消，但只有 Generation 匹配时才会生效。
type CueAnimationSystem struct {
	entityManager *ecs.EntityManager
	timers        *TimerSystem
	entity        ecs.EntityID

	fadeIn  float64
	hold    float64
	fadeOut float64
	easing  utils.EasingFunc
	instant map[components.Direction]bool
}

// NewCueAnimationSystem 创建发光动画系统
func NewCueAnimationSystem(em *ecs.EntityManager, timers *TimerSystem, cfg *config.GuidanceConfig) *CueAnimationSystem {
	s := &CueAnimationSystem{
		entityManager: em,
		timers:        timers,
		fadeIn:        cfg.Cue.FadeIn,
		hold:          cfg.Cue.Hold,
		fadeOut:       cfg.Cue.FadeOut,
		easing:        utils.EaseByName(cfg.Cue.Easing),
		instant:       cfg.InstantDirections(),
	}

	s.entity = em.CreateEntity()
	ecs.AddComponent(em, s.entity, &components.CueComponent{})
	return s
}

// Entity 返回持有 CueComponent 的实体
func (s *CueAnimationSystem) Entity() ecs.EntityID {
	return s.entity
}

func (s *CueAnimationSystem) total() float64 {
	return s.fadeIn + s.hold + s.fadeOut
}

func (s *CueAnimationSystem) cue() *components.CueComponent {
	cue, ok := ecs.GetComponent[*components.CueComponent](s.entityManager, s.entity)
	if !ok {
		// 组件只会在 Reset 时被改写，不会被移除
		cue = &components.CueComponent{}
		ecs.AddComponent(s.entityManager, s.entity, cue)
	}
	return cue
}

// Trigger 开始一个方向提示动画，覆盖正在进行的动画
func (s *CueAnimationSystem) Trigger(dir components.Direction) {
	cue := s.cue()
	cue.Generation++
	gen := cue.Generation

	cue.HasDirection = true
	cue.Direction = dir
	cue.Elapsed = 0
	cue.Instant = s.instant[dir]
	if cue.Instant {
		cue.Intensity = 1
		cue.Phase = components.CuePhaseHold
	} else {
		cue.Intensity = 0
		cue.Phase = components.CuePhaseFadeIn
	}

	s.timers.Schedule(cueClearTimerName, s.total(), func() {
		s.clear(gen)
	})

	log.Printf("[CueAnimationSystem] Trigger %s (generation %d, instant=%v)", dir, gen, cue.Instant)
}

// clear 清除方向，只对仍然是 gen 这一代的动画生效
func (s *CueAnimationSystem) clear(gen uint64) {
	cue := s.cue()
	if cue.Generation != gen {
		log.Printf("[CueAnimationSystem] 忽略过期的清除回调 (generation %d, current %d)", gen, cue.Generation)
		return
	}
	s.resetComponent(cue)
}

func (s *CueAnimationSystem) resetComponent(cue *components.CueComponent) {
	cue.HasDirection = false
	cue.Intensity = 0
	cue.Phase = components.CuePhaseIdle
	cue.Elapsed = 0
	cue.Instant = false
}

// Reset 立即清除提示并取消所有挂起的清除计时器
func (s *CueAnimationSystem) Reset() {
	s.timers.CancelNamed(cueClearTimerName)
	cue := s.cue()
	// 递增代数，保证任何残留回调都失效
	cue.Generation++
	s.resetComponent(cue)
}

// Update 推进动画曲线
func (s *CueAnimationSystem) Update(deltaTime float64) {
	cue := s.cue()
	if !cue.HasDirection {
		return
	}

	cue.Elapsed += deltaTime
	cue.Phase, cue.Intensity = s.curve(cue.Elapsed, cue.Instant)
}

// curve 计算动画播放 elapsed 秒后的阶段和强度
// 超过总时长后强度为 0，方向等待清除回调
func (s *CueAnimationSystem) curve(elapsed float64, instant bool) (components.CuePhase, float64) {
	total := s.total()

	if instant {
		if elapsed+timerEpsilon < total {
			return components.CuePhaseHold, 1
		}
		return components.CuePhaseIdle, 0
	}

	switch {
	case elapsed < s.fadeIn:
		return components.CuePhaseFadeIn, s.easing(utils.Clamp01(elapsed / s.fadeIn))
	case elapsed < s.fadeIn+s.hold:
		return components.CuePhaseHold, 1
	case elapsed+timerEpsilon < total:
		progress := utils.Clamp01((elapsed - s.fadeIn - s.hold) / s.fadeOut)
		return components.CuePhaseFadeOut, 1 - s.easing(progress)
	default:
		return components.CuePhaseIdle, 0
	}
}

// State 返回提示状态的副本
func (s *CueAnimationSystem) State() components.CueComponent {
	return *s.cue()
}
