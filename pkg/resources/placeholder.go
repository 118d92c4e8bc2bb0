package resources

import (
	"image/color"
	"math"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 占位图配色
var (
	placeholderSnow    = color.RGBA{R: 0xf4, G: 0xf8, B: 0xff, A: 0xff}
	placeholderShade   = color.RGBA{R: 0x9a, G: 0xb4, B: 0xcc, A: 0xff}
	placeholderLeaves  = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	placeholderTrunk   = color.RGBA{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}
	placeholderHeart   = color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	placeholderOutline = color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff}
)

// GeneratePlaceholder 生成与精灵表尺寸相同的替代图片
// 每一帧画一个可辨认的简单图形，帧之间有变化，便于看出动画在播放
func GeneratePlaceholder(sheet config.SpriteSheet) *ebiten.Image {
	w, h := max(sheet.Width, 1), max(sheet.Height, 1)
	img := ebiten.NewImage(w, h)

	frames := sheet.FrameCount()
	fw := float32(sheet.FrameWidth)
	fh := float32(h)
	for i := 0; i < frames; i++ {
		x := fw * float32(i)
		t := float64(i) / float64(max(frames-1, 1))
		drawPlaceholderFrame(img, sheet.ID, x, fw, fh, i, t)
	}
	return img
}

// drawPlaceholderFrame 在 (x, 0, fw, fh) 中画第 i 帧，t 为帧序号归一化到 [0, 1]
func drawPlaceholderFrame(dst *ebiten.Image, id string, x, fw, fh float32, i int, t float64) {
	cx, cy := x+fw/2, fh/2
	r := min(fw, fh) / 2

	switch id {
	case config.SpriteSnowball:
		// 滚动帧：旋转的标记点；死亡帧（8 以后）：逐渐碎裂变小
		radius := r * 0.9
		if i >= 8 {
			radius *= float32(1 - 0.15*float64(i-7))
		}
		vector.DrawFilledCircle(dst, cx, cy, radius, placeholderSnow, true)
		vector.StrokeCircle(dst, cx, cy, radius, 2, placeholderShade, true)
		angle := 2 * math.Pi * float64(i%8) / 8
		mx := cx + float32(math.Cos(angle))*radius*0.6
		my := cy + float32(math.Sin(angle))*radius*0.6
		vector.DrawFilledCircle(dst, mx, my, radius*0.15, placeholderShade, true)

	case config.SpriteTree:
		sway := float32(0)
		if i > 0 {
			sway = float32(math.Sin(float64(i))) * fw * 0.05
		}
		vector.DrawFilledRect(dst, cx-fw*0.08, fh*0.6, fw*0.16, fh*0.35, placeholderTrunk, false)
		vector.DrawFilledCircle(dst, cx+sway, fh*0.4, r*0.75, placeholderLeaves, true)
		vector.DrawFilledCircle(dst, cx+sway, fh*0.3, r*0.35, placeholderSnow, true)

	case config.SpriteImpact:
		// 扩散的圆环
		radius := r * float32(0.3+0.6*t)
		vector.StrokeCircle(dst, cx, cy, radius, max(2, r*0.12*float32(1-t)), placeholderSnow, true)

	case config.SpriteAvalanche:
		vector.DrawFilledRect(dst, x, 0, fw, fh*0.6, placeholderSnow, false)
		for k := 0; k < 3; k++ {
			bx := x + fw*(float32(k)+0.5)/3
			vector.DrawFilledCircle(dst, bx, fh*0.6, fw/6, placeholderSnow, true)
		}

	case config.SpriteHeart:
		// 第 0 帧为空心，第 4 帧为实心，中间按比例填充
		vector.StrokeCircle(dst, cx, cy, r*0.8, 3, placeholderOutline, true)
		fill := r * 0.8 * float32(t)
		if fill > 0 {
			vector.DrawFilledCircle(dst, cx, cy, fill, placeholderHeart, true)
		}

	default:
		vector.StrokeRect(dst, x+1, 1, fw-2, fh-2, 2, placeholderOutline, false)
	}
}
