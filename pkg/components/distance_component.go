package components

import "github.com/decker502/arpathfinder/pkg/ecs"

// DistanceComponent 模拟距离倒计时组件
//
// "靠近"提示触发后，经过一段引导延迟开始按固定节奏递减 MetersRemaining，
// 到达固定次数后自动停止。序列重置时恢复为 InitialMeters。
type DistanceComponent struct {
	// MetersRemaining 当前显示的剩余距离（米，保留一位小数）
	MetersRemaining float64

	// InitialMeters 初始距离（默认 25.0）
	InitialMeters float64

	// Active 是否有进行中的倒计时（包括引导延迟阶段）
	Active bool

	// RunStartMeters 本轮倒计时开始时的距离
	RunStartMeters float64

	// TicksDone 本轮已执行的递减次数
	TicksDone int

	// LeadTimer 引导延迟计时器，TickTimer 递减计时器（0 表示无）
	LeadTimer ecs.EntityID
	TickTimer ecs.EntityID
}
