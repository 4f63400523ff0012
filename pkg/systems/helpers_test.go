package systems

import (
	"math"

	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// frameDelta 测试使用的固定帧时间（与 App.Update 一致）
const frameDelta = 1.0 / 60.0

// updater 任何带 Update(dt) 的系统
type updater interface {
	Update(deltaTime float64)
}

// runFor 以 60 FPS 的帧时间推进 seconds 秒
func runFor(u updater, seconds float64) {
	frames := int(math.Round(seconds / frameDelta))
	for i := 0; i < frames; i++ {
		u.Update(frameDelta)
	}
}

// timerOnly 只推进计时器并清理实体（不经过 GuidanceEngine）
type timerOnly struct {
	em     *ecs.EntityManager
	timers *TimerSystem
	extra  []updater
}

func (t *timerOnly) Update(deltaTime float64) {
	t.timers.Update(deltaTime)
	for _, u := range t.extra {
		u.Update(deltaTime)
	}
	t.em.RemoveMarkedEntities()
}

// newTestEngine 使用默认配置创建引擎
func newTestEngine() (*GuidanceEngine, *ecs.EntityManager) {
	em := ecs.NewEntityManager()
	engine, err := NewGuidanceEngine(em, config.DefaultGuidanceConfig())
	if err != nil {
		panic(err)
	}
	return engine, em
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
