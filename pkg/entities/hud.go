package entities

import (
	"image/color"
	"math"
	"strconv"

	"github.com/decker502/avalanche/pkg/components"
	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// HUD 布局常量（逻辑像素）
const (
	hudScoreRightMargin = 100
	hudScoreBaseline    = 50
	hudComboRightMargin = 50
	hudComboBaseline    = 74
	hudHeartLeft        = 60
	hudHeartSpacing     = 70
	hudHeartTop         = 5
)

// HUD 分数、连击和生命显示
// 除了心形精灵外不持有可变状态
type HUD struct {
	cfg    config.HUDConfig
	screen config.ScreenConfig
	div    int

	Heart  *components.SpriteAnimator
	colors []color.RGBA
}

// NewHUD 创建 HUD
func NewHUD(cfg *config.GameConfig, sheets config.SpriteSheets) *HUD {
	h := &HUD{
		cfg:    cfg.HUD,
		screen: cfg.Screen,
		div:    cfg.Session.ScoreDivisor,
		Heart:  components.NewSpriteAnimator(sheets.Get(config.SpriteHeart), false),
	}
	for _, hex := range cfg.HUD.ComboColors {
		h.colors = append(h.colors, config.MustParseHexColor(hex))
	}
	return h
}

// ComboTier 连击档位：1 → 0，2-3 → 1，4-6 → 2，7-9 → 3，>=10 → 4
func ComboTier(combo int) int {
	switch {
	case combo <= 1:
		return 0
	case combo < 4:
		return 1
	case combo < 7:
		return 2
	case combo < 10:
		return 3
	default:
		return 4
	}
}

// ComboColor 连击档位对应的颜色（雪痕和连击文字共用）
func (h *HUD) ComboColor(combo int) color.RGBA {
	tier := ComboTier(combo)
	if tier >= len(h.colors) {
		return ColorBlack
	}
	return h.colors[tier]
}

// HeartFrame 把一颗心的填充量离散为 5 个帧
// fill > 1 → 4，> 0.75 → 3，> 0.5 → 2，> 0.25 → 1，其余 → 0
func HeartFrame(fill float64) int {
	switch {
	case fill > 1:
		return 4
	case fill > 0.75:
		return 3
	case fill > 0.5:
		return 2
	case fill > 0.25:
		return 1
	default:
		return 0
	}
}

// DisplayScore 显示用分数
func (h *HUD) DisplayScore(score int) int {
	return score / h.div
}

// Draw 绘制分数、连击倍数和心形生命条
func (h *HUD) Draw(r Renderer, timestamp float64, score, combo int, sizeRatio float64) {
	if r == nil {
		return
	}

	scoreText := strconv.Itoa(h.DisplayScore(score))
	w := r.MeasureText(scoreText, h.cfg.ScoreFontSize)
	r.DrawText(scoreText, h.screen.Width-w-hudScoreRightMargin, hudScoreBaseline, h.cfg.ScoreFontSize, ColorBlack)

	comboText := "x" + strconv.Itoa(combo)
	w = r.MeasureText(comboText, h.cfg.ComboFontSize)
	r.DrawText(comboText, h.screen.Width-w-hudComboRightMargin, hudComboBaseline, h.cfg.ComboFontSize, h.ComboColor(combo))

	for i := 1; i <= h.cfg.Hearts; i++ {
		h.Heart.Pause(HeartFrame(sizeRatio - float64(i)))
		frame, _ := h.Heart.Advance(timestamp)
		x := float64(hudHeartLeft + hudHeartSpacing*(i-1))
		r.DrawSprite(h.Heart.Sheet, h.Heart.FrameRect(frame),
			types.Hitbox{X: x, Y: hudHeartTop, Width: h.cfg.HeartWidth, Height: h.cfg.HeartHeight})
	}
}

// BarrierWidths 左右边界指示线的粗细
// 雪球越靠近边缘越粗：min(MaxWidth, Falloff / |距离|)
func BarrierWidths(cfg config.BarrierConfig, screenWidth float64, hb types.Hitbox, size float64) (left, right float64) {
	left = math.Min(cfg.MaxWidth, cfg.Falloff/math.Abs(hb.X))
	right = math.Min(cfg.MaxWidth, cfg.Falloff/math.Abs(screenWidth-(hb.X+size)))
	return left, right
}

// DrawBarriers 在屏幕左右边缘绘制指示线
func DrawBarriers(r Renderer, screen config.ScreenConfig, left, right float64) {
	if r == nil {
		return
	}
	r.DrawLine(0, 0, 0, screen.Height, left, ColorBarrier)
	r.DrawLine(screen.Width, 0, screen.Width, screen.Height, right, ColorBarrier)
}
