package components

// TextInputComponent 文本输入框组件
// 用于输入好友的追踪码
type TextInputComponent struct {
	// 输入框文本
	Text string // 当前输入的文本（已转为大写）

	// 输入框样式
	Width  float64 // 输入框宽度（像素）
	Height float64 // 输入框高度（像素）

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// UpperCase 输入时自动转为大写
	UpperCase bool

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）

	// OnSubmit 按下回车 / 虚拟键盘 DONE 时调用
	OnSubmit func(text string)
}
