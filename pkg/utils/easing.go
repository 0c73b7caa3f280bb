package utils

import "github.com/go-gl/mathgl/mgl64"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（小球吸附到终点时使用）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec2 二维向量线性插值
func LerpVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return mgl64.Vec2{Lerp(a[0], b[0], t), Lerp(a[1], b[1], t)}
}

// Progress 计算动画进度并裁剪到 [0, 1]
// duration <= 0 视为瞬间完成
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	p := elapsed / duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
