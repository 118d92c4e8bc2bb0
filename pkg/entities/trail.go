package entities

import (
	"image/color"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// TrailPiece 雪痕的一段（水平线段）
type TrailPiece struct {
	X, Y          float64
	Width, Height float64 // Height 为线宽
}

// Trail 雪球身后的雪痕
//
// 每帧在头部追加一段，然后所有段向上滚动，滚出屏幕顶部（Y < 0）的段被移除。
// 没有固定容量，长度随帧率和速度变化。
type Trail struct {
	cfg    config.TrailConfig
	Pieces []TrailPiece
}

// NewTrail 创建空雪痕
func NewTrail(cfg config.TrailConfig) *Trail {
	return &Trail{cfg: cfg}
}

// Update 追加一段、绘制并滚动所有段，再移除屏幕外的段
//
// 参数:
//   - r: 绘制目标（可为 nil，仅更新状态）
//   - gameSpeed: 全局速度 gSpeed
//   - anchor: 雪球当前的碰撞盒
//   - clr: 当前连击档位颜色
func (t *Trail) Update(r Renderer, gameSpeed float64, anchor types.Hitbox, clr color.Color) {
	t.Pieces = append(t.Pieces, TrailPiece{
		X:      anchor.X,
		Y:      anchor.CenterY(),
		Width:  anchor.Width - t.cfg.WidthInset,
		Height: gameSpeed*t.cfg.ThicknessPerSpeed + t.cfg.BaseThickness,
	})

	for i := range t.Pieces {
		p := &t.Pieces[i]
		if r != nil {
			r.DrawLine(p.X, p.Y, p.X+p.Width, p.Y, p.Height, clr)
		}
		p.Y -= t.cfg.ScrollRate * gameSpeed
	}

	t.prune()
}

// prune 移除 Y < 0 的段，保持剩余段的顺序
func (t *Trail) prune() {
	kept := t.Pieces[:0]
	for _, p := range t.Pieces {
		if p.Y >= 0 {
			kept = append(kept, p)
		}
	}
	t.Pieces = kept
}

// Len 段数
func (t *Trail) Len() int {
	return len(t.Pieces)
}
