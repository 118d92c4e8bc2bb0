// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，模拟核心和各个前端都可以直接使用
package types

import "math/rand/v2"

// Hitbox 屏幕像素坐标下的轴对齐矩形
// 值类型，按需计算，不做持久化
type Hitbox struct {
	X, Y          float64
	Width, Height float64
}

// offscreenOrigin 失效碰撞盒所在的位置（远离屏幕）
const offscreenOrigin = -1000

// OffscreenHitbox 返回一个退化的屏幕外矩形
// 宽高为 0，与任何矩形都不相交，用于禁用已经触发过的碰撞区域
func OffscreenHitbox() Hitbox {
	return Hitbox{X: offscreenOrigin, Y: offscreenOrigin}
}

// ScaledHitbox 以原矩形中心为中心缩放矩形
//
// 返回尺寸为 (w*scale, h*scale) 的矩形，中心点与 (x, y, w, h) 相同。
// scale < 1 得到比精灵更紧的碰撞盒，scale > 1 得到更宽的范围。
func ScaledHitbox(x, y, w, h, scale float64) Hitbox {
	sw := w * scale
	sh := h * scale
	return Hitbox{
		X:      x + (w-sw)/2,
		Y:      y + (h-sh)/2,
		Width:  sw,
		Height: sh,
	}
}

// Scaled 返回以自身中心缩放后的矩形
func (h Hitbox) Scaled(scale float64) Hitbox {
	return ScaledHitbox(h.X, h.Y, h.Width, h.Height, scale)
}

// Intersects 判断两个矩形是否重叠
// 四条边都使用严格不等式，仅边缘相接不算碰撞
func (h Hitbox) Intersects(o Hitbox) bool {
	return h.X < o.X+o.Width &&
		h.X+h.Width > o.X &&
		h.Y < o.Y+o.Height &&
		h.Y+h.Height > o.Y
}

// CenterX 水平中心
func (h Hitbox) CenterX() float64 { return h.X + h.Width/2 }

// CenterY 垂直中心
func (h Hitbox) CenterY() float64 { return h.Y + h.Height/2 }

// Right 右边缘
func (h Hitbox) Right() float64 { return h.X + h.Width }

// Bottom 下边缘
func (h Hitbox) Bottom() float64 { return h.Y + h.Height }

// RandomInt 返回 [min, max] 闭区间内的随机整数
// min > max 时两者交换
func RandomInt(rng *rand.Rand, min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + rng.IntN(max-min+1)
}

// NewRand 创建确定性的随机数生成器（相同 seed 产生相同序列）
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
