package components

// TapGestureComponent 点击手势去抖状态
//
// 手势层可能对一次物理点击触发多次事件，冷却时间内的点击一律丢弃。
type TapGestureComponent struct {
	// Cooldown 两次被接受的点击之间的最小间隔（秒）
	Cooldown float64

	// LastAcceptedTap 上一次被接受点击的会话时间（秒）
	LastAcceptedTap float64

	// HasAcceptedTap 是否已经接受过点击（首次点击总是被接受）
	HasAcceptedTap bool

	// 统计（调试用）
	AcceptedCount int
	RejectedCount int
}
