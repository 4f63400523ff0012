package components

import "github.com/decker502/arpathfinder/pkg/ecs"

// StepKind 脚本步骤类型
type StepKind int

const (
	// StepMessage 显示一条对话消息
	StepMessage StepKind = iota
	// StepDirection 显示一个方向提示（发光箭头）
	StepDirection
)

// String 返回 StepKind 的字符串表示（与 YAML 中的 type 字段一致）
func (k StepKind) String() string {
	switch k {
	case StepMessage:
		return "message"
	case StepDirection:
		return "direction"
	default:
		return "unknown"
	}
}

// Step 引导脚本中的一个步骤
//
// Kind == StepMessage 时只使用 Text；
// Kind == StepDirection 时只使用 Direction。
// 步骤在配置加载时构造，之后不再修改。
type Step struct {
	Kind      StepKind
	Text      string
	Direction Direction
}

// MessageStep 构造消息步骤
func MessageStep(text string) Step {
	return Step{Kind: StepMessage, Text: text}
}

// DirectionStep 构造方向步骤
func DirectionStep(dir Direction) Step {
	return Step{Kind: StepDirection, Direction: dir}
}

// SequenceComponent 引导序列状态组件（纯数据）
//
// 由 SequenceSystem 独占修改，只在点击事件或序列结束时变化。
//
// 状态说明:
//   - Started: 用户在引导提示中选择了"开始"
//   - OnboardingAcknowledged: 引导提示已经被点击唤出过（首次点击只唤出提示，不推进）
//   - NotificationVisible: 引导提示当前可见，此时所有屏幕点击都被吞掉
type SequenceComponent struct {
	// Steps 有序脚本（只读）
	Steps []Step

	// CurrentIndex 下一个要执行的步骤索引，范围 [0, len(Steps)]
	// 等于 len(Steps) 时，下一次点击执行完整重置
	CurrentIndex int

	Started                bool
	OnboardingAcknowledged bool
	NotificationVisible    bool

	// PromptEntity 引导提示对话框实体（0 表示未绑定）
	PromptEntity ecs.EntityID
}
