package components

import "github.com/decker502/arpathfinder/pkg/ecs"

// MessageComponent 屏幕中央的对话消息
// 每条消息最多对应一个自动清除计时器，显示新消息时旧计时器被取消
type MessageComponent struct {
	Text    string
	Visible bool

	// ExpiresAt 自动清除的会话时间（秒），Visible 为 false 时无意义
	ExpiresAt float64

	// ClearTimer 自动清除计时器实体（0 表示没有挂起的计时器）
	ClearTimer ecs.EntityID
}
