package components

import "fmt"

// Direction 方向提示枚举
type Direction int

const (
	DirectionTop Direction = iota
	DirectionRight
	DirectionBottom
	DirectionLeft
)

// String 返回方向名称（与 YAML 中的取值一致）
func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "top"
	case DirectionRight:
		return "right"
	case DirectionBottom:
		return "bottom"
	case DirectionLeft:
		return "left"
	default:
		return "unknown"
	}
}

// RotationDegrees 箭头贴图的旋转角度（箭头默认朝上）
func (d Direction) RotationDegrees() float64 {
	return float64(d) * 90
}

// ParseDirection 将 "top"/"right"/"bottom"/"left" 解析为 Direction
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "top":
		return DirectionTop, nil
	case "right":
		return DirectionRight, nil
	case "bottom":
		return DirectionBottom, nil
	case "left":
		return DirectionLeft, nil
	default:
		return DirectionTop, fmt.Errorf("unknown direction %q", s)
	}
}

// CuePhase 发光动画阶段
type CuePhase int

const (
	// CuePhaseIdle 无动画（或动画已播完，等待清理回调）
	CuePhaseIdle CuePhase = iota
	// CuePhaseFadeIn 0 → 1 渐入
	CuePhaseFadeIn
	// CuePhaseHold 保持全亮
	CuePhaseHold
	// CuePhaseFadeOut 1 → 0 渐出
	CuePhaseFadeOut
)

// String 返回 CuePhase 的字符串表示
func (p CuePhase) String() string {
	switch p {
	case CuePhaseIdle:
		return "Idle"
	case CuePhaseFadeIn:
		return "FadeIn"
	case CuePhaseHold:
		return "Hold"
	case CuePhaseFadeOut:
		return "FadeOut"
	default:
		return "Unknown"
	}
}

// CueComponent 方向提示（发光箭头）组件
//
// 同一时间只有一个活动的提示动画：新的 Trigger 直接覆盖旧的视觉状态。
// 旧动画的清理回调仍会触发，但会比较 Generation，只清理自己那一代。
type CueComponent struct {
	// HasDirection 是否有活动方向（false 表示 ActiveDirection 为"无"）
	HasDirection bool
	// Direction 当前方向（HasDirection 为 false 时无意义）
	Direction Direction

	// Intensity 当前发光强度（0.0 - 1.0），瞬态动画值
	Intensity float64

	// Phase 当前所处阶段
	Phase CuePhase

	// Elapsed 本次动画已播放时间（秒）
	Elapsed float64

	// Instant 本次动画是否为"无渐变"模式（立即全亮，到时直接消失）
	Instant bool

	// Generation 触发次数计数，用于保护清理回调
	Generation uint64
}
