package utils

import (
	"math"

	"github.com/decker502/avalanche/pkg/types"
)

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 覆盖层的淡入和提示文字的呼吸效果使用这里的曲线。

// EaseOutCubic 三次方缓出
// 开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = types.Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutSine 正弦缓入缓出
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	t = types.Clamp(t, 0, 1)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// PingPong 把任意时间映射为在 [0, 1] 之间往返的进度
// period 为完整往返一次的时长，<= 0 时恒为 0
func PingPong(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(elapsed, period) / period
	if phase < 0 {
		phase += 1
	}
	if phase < 0.5 {
		return phase * 2
	}
	return 2 - phase*2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
