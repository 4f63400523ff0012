package components

// DialogComponent 对话框组件
// 用于显示模态提示（如开始追踪前的引导提示）
type DialogComponent struct {
	Title     string         // 对话框标题（可为空）
	Message   string         // 对话框正文
	Buttons   []DialogButton // 按钮列表（如 ["Yes, start tracking", "No"]）
	IsVisible bool           // 是否可见
	Width     float64        // 对话框宽度
	Height    float64        // 对话框高度
}

// DialogButton 对话框按钮
type DialogButton struct {
	Label    string  // 按钮文字
	OnClick  func()  // 点击回调
	X        float64 // 按钮相对对话框的 X 坐标
	Y        float64 // 按钮相对对话框的 Y 坐标
	Width    float64 // 按钮宽度
	Height   float64 // 按钮高度
	IsCancel bool    // 是否为取消按钮（ESC 键触发）
	State    UIState // 悬停/按下状态
}
