package config

// 布局配置常量
// 本文件定义了各场景中的布局参数（竖屏手机，逻辑分辨率 390×844）

// Screen Configuration (屏幕配置)
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 390
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 844
)

// Typography (字号)
const (
	// FontSizeTitle 标题字号
	FontSizeTitle = 28.0
	// FontSizeBody 正文字号
	FontSizeBody = 18.0
	// FontSizeSmall 辅助文字字号
	FontSizeSmall = 14.0
	// FontSizeCode 追踪码字号
	FontSizeCode = 44.0
	// FontSizeDistance 距离读数字号
	FontSizeDistance = 36.0
)

// Form Layout (表单布局)
const (
	// FormMarginX 表单左右边距
	FormMarginX = 32.0
	// FormButtonHeight 表单按钮高度
	FormButtonHeight = 52.0
	// FormButtonSpacing 表单按钮间距
	FormButtonSpacing = 16.0
	// FormInputHeight 输入框高度
	FormInputHeight = 56.0
)

// Guidance Overlay Layout (引导画面布局)
const (
	// CueArrowSize 方向箭头边长
	CueArrowSize = 120.0
	// CueEdgeMargin 箭头距离屏幕边缘
	CueEdgeMargin = 48.0
	// CueGlowRadius 发光半径（强度为 1 时）
	CueGlowRadius = 90.0

	// MessageBubbleY 消息气泡的垂直中心
	MessageBubbleY = ScreenHeight * 0.42
	// MessageBubblePadding 消息气泡内边距
	MessageBubblePadding = 16.0

	// DistanceLabelY 距离读数的基线位置
	DistanceLabelY = ScreenHeight - 140.0

	// ExitButtonSize 左上角退出按钮尺寸
	ExitButtonSize = 44.0
)

// Dialog Layout (对话框布局)
const (
	// DialogWidth 对话框宽度
	DialogWidth = ScreenWidth - 2*24.0
	// DialogPadding 对话框内边距
	DialogPadding = 20.0
	// DialogLineHeight 对话框正文行高
	DialogLineHeight = FontSizeBody * 1.4
	// DialogButtonHeight 对话框按钮高度
	DialogButtonHeight = 48.0
	// DialogButtonSpacing 对话框按钮间距
	DialogButtonSpacing = 12.0
)

// FormButtonWidth 表单按钮宽度（占满边距内宽度）
func FormButtonWidth() float64 {
	return ScreenWidth - 2*FormMarginX
}

// CueArrowCenter 返回方向箭头的中心坐标
// direction: 0=上 1=右 2=下 3=左（与 components.Direction 一致）
func CueArrowCenter(direction int) (float64, float64) {
	cx, cy := ScreenWidth/2.0, ScreenHeight/2.0
	switch direction {
	case 0:
		return cx, CueEdgeMargin + CueArrowSize/2
	case 1:
		return ScreenWidth - CueEdgeMargin - CueArrowSize/2, cy
	case 2:
		return cx, ScreenHeight - CueEdgeMargin - CueArrowSize/2 - 120
	case 3:
		return CueEdgeMargin + CueArrowSize/2, cy
	default:
		return cx, cy
	}
}
