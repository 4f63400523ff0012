package components

import "github.com/decker502/arpathfinder/pkg/ecs"

// VirtualKeyboardComponent 虚拟键盘组件
// 用于移动端输入追踪码（只包含大写字母和数字）
type VirtualKeyboardComponent struct {
	// 显示状态
	IsVisible bool // 键盘是否可见

	// 模式状态
	NumericMode bool // 是否数字模式

	// 按键状态
	PressedKey   string  // 当前被按下的按键（用于视觉反馈）
	PressedTimer float64 // 按下状态计时器（用于短暂高亮）

	// 输入消费状态（用于阻止事件穿透）
	InputConsumedThisFrame bool // 本帧是否消费了输入事件

	// 目标输入实体
	TargetInputEntity ecs.EntityID // 目标文本输入框实体

	// 布局配置（由工厂在创建时计算）
	KeyWidth     float64 // 按键宽度（像素）
	KeyHeight    float64 // 按键高度（像素）
	KeySpacing   float64 // 按键间距（像素）
	KeyboardY    float64 // 键盘Y坐标（屏幕底部）
	KeyboardX    float64 // 键盘X坐标（左边缘）
	ScreenWidth  float64 // 屏幕宽度（用于居中计算）
	ScreenHeight float64 // 屏幕高度
}

// KeyInfo 按键信息（用于布局计算和点击检测）
type KeyInfo struct {
	Label       string  // 显示的文字
	Action      string  // 按键动作（BACKSPACE, DONE, 123, ABC, 或字符本身）
	X           float64 // 按键左上角 X
	Y           float64 // 按键左上角 Y
	Width       float64 // 按键宽度
	Height      float64 // 按键高度
	WidthFactor float64 // 宽度倍数（相对于标准按键）
}

// 键盘布局定义（追踪码只允许大写字母和数字，因此没有 Shift 和空格）

// KeyboardLayoutLetters 字母布局
var KeyboardLayoutLetters = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"123", "Z", "X", "C", "V", "B", "N", "M", "BACKSPACE"},
	{"DONE"},
}

// KeyboardLayoutNumeric 数字布局
var KeyboardLayoutNumeric = [][]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"ABC", "BACKSPACE"},
	{"DONE"},
}

// 特殊按键宽度倍数
const (
	KeyWidthNormal    = 1.0 // 普通按键
	KeyWidthBackspace = 1.5 // 退格键
	KeyWidth123       = 1.5 // 123/ABC 键
	KeyWidthDone      = 4.0 // 确定键
)

// 特殊按键显示标签
const (
	LabelBackspace = "Del"
	LabelDone      = "Done"
	Label123       = "123"
	LabelABC       = "ABC"
)

// GetKeyWidthFactor 获取按键的宽度倍数
func GetKeyWidthFactor(action string) float64 {
	switch action {
	case "BACKSPACE":
		return KeyWidthBackspace
	case "123", "ABC":
		return KeyWidth123
	case "DONE":
		return KeyWidthDone
	default:
		return KeyWidthNormal
	}
}

// GetKeyLabel 获取按键的显示标签
func GetKeyLabel(action string) string {
	switch action {
	case "BACKSPACE":
		return LabelBackspace
	case "DONE":
		return LabelDone
	case "123":
		return Label123
	case "ABC":
		return LabelABC
	default:
		return action // 字母/数字直接返回
	}
}

// IsSpecialKey 判断是否为特殊按键（非字符输入）
func IsSpecialKey(action string) bool {
	switch action {
	case "BACKSPACE", "DONE", "123", "ABC":
		return true
	default:
		return false
	}
}
