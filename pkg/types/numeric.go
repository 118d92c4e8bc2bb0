package types

import "math"

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach 让 v 向 target 前进最多 step，不越过 target
// 剩余距离不超过 step 时直接返回 target
func Approach(v, target, step float64) float64 {
	if math.Abs(target-v) <= step {
		return target
	}
	if v < target {
		return v + step
	}
	return v - step
}
