package components

// PositionComponent 屏幕坐标组件（像素，左上角为原点）
// 按钮、对话框、输入框等 UI 实体都通过它定位
type PositionComponent struct {
	X float64
	Y float64
}
