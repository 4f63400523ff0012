package utils

import "math"

// Easing Functions (缓动函数)
//
// 用于发光提示的渐入/渐出曲线。
// 所有函数接受进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseByName 按配置名称返回缓动函数
// 未知名称（包括空字符串）返回线性缓动
func EaseByName(name string) EasingFunc {
	switch name {
	case "easeOutCubic":
		return EaseOutCubic
	case "easeInOutCubic":
		return EaseInOutCubic
	default:
		return EaseLinear
	}
}

// Clamp01 将 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Round1 四舍五入到一位小数（距离显示使用）
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
