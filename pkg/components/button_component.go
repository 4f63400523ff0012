package components

// ButtonStyle 按钮配色风格
type ButtonStyle int

const (
	// ButtonStylePrimary 主要操作（蓝色）
	ButtonStylePrimary ButtonStyle = iota
	// ButtonStyleSuccess 确认类操作（绿色）
	ButtonStyleSuccess
	// ButtonStyleSecondary 次要操作（灰色）
	ButtonStyleSecondary
	// ButtonStyleGlass 半透明玻璃风格（叠加在相机画面上）
	ButtonStyleGlass
)

// ButtonComponent 按钮组件（ECS 架构）
// 包含按钮的所有数据：文字、尺寸、状态、回调
//
// 设计原则：
//   - 纯数据组件，不包含任何方法
//   - 按钮使用矢量绘制，不依赖图片资源
type ButtonComponent struct {
	// Text 按钮上显示的文字
	Text string

	// Style 配色风格
	Style ButtonStyle

	// Width / Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// State 当前交互状态（Normal/Hover/Clicked/Disabled）
	State UIState
	// Enabled 是否启用（禁用时不响应点击）
	Enabled bool

	// OnClick 点击回调函数
	OnClick func()
}
