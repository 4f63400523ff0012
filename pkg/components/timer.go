package components

// TimerComponent 通用计时器组件
// 用于处理需要时间延迟的行为（消息自动清除、提示动画结束、距离倒计时）
//
// 计时器以实体形式存在，由 TimerSystem 推进；取消计时器即立即移除此组件，
// 被取消的计时器永远不会触发 OnFire。
type TimerComponent struct {
	Name        string  // 计时器名称，如 "message.clear"
	TargetTime  float64 // 目标时间（秒），重复计时器为每次间隔
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成（最后一次触发后置为 true）

	// RepeatCount 总触发次数，1 表示一次性计时器
	RepeatCount int
	// FiredCount 已触发次数
	FiredCount int

	// OnFire 触发回调，在游戏循环中同步执行
	OnFire func()
}
