package entities

import (
	"fmt"
	"math"

	"github.com/decker502/avalanche/pkg/components"
	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// Avalanche 追赶雪球的雪崩
//
// 速度从 Session.MinSpeed*StartSpeedRatio 逐帧增长到 Session.MaxSpeed*MaxSpeedRatio。
// PosY 由雪球与雪崩的行进距离之差推导：差距越小，雪崩越靠近雪球。
// 差距超过 屏幕高度/VisibilityDivisor 时不绘制（距离仍然累积）。
type Avalanche struct {
	cfg    config.AvalancheConfig
	screen config.ScreenConfig

	Sprite *components.SpriteAnimator

	Speed            float64
	MaxSpeed         float64
	DistanceTraveled float64
	PosY             float64

	visible  bool
	gameOver bool
	finished bool
}

// NewAvalanche 创建落后 StartDistance 的雪崩
func NewAvalanche(cfg *config.GameConfig, sheets config.SpriteSheets) *Avalanche {
	a := &Avalanche{
		cfg:              cfg.Avalanche,
		screen:           cfg.Screen,
		Sprite:           components.NewSpriteAnimator(sheets.Get(config.SpriteAvalanche), false),
		Speed:            cfg.Session.MinSpeed * cfg.Avalanche.StartSpeedRatio,
		MaxSpeed:         cfg.Session.MaxSpeed * cfg.Avalanche.MaxSpeedRatio,
		DistanceTraveled: cfg.Avalanche.StartDistance,
	}
	a.PosY = a.threshold() - (0 - a.DistanceTraveled)
	return a
}

// threshold 可见阈值（也是差距为 0 时的 PosY）
func (a *Avalanche) threshold() float64 {
	return a.screen.Height / a.cfg.VisibilityDivisor
}

// Update 前进一帧并绘制
//
// 参数:
//   - playerDistance: 雪球累计行进距离
//
// 返回 true 表示结束动画在本帧完成（只会返回一次）。
func (a *Avalanche) Update(r Renderer, timestamp, playerDistance float64) (gameOverDone bool) {
	a.DistanceTraveled += a.Speed
	a.Speed = types.Approach(a.Speed, a.MaxSpeed, a.cfg.Acceleration)

	gap := playerDistance - a.DistanceTraveled
	a.visible = gap < a.threshold()

	spriteH := float64(a.Sprite.Sheet.Height)
	if a.gameOver {
		a.PosY += a.cfg.GameOverStep
		if !a.finished && a.PosY > a.screen.Height+spriteH {
			a.finished = true
			gameOverDone = true
		}
	} else {
		a.PosY = a.threshold() - gap
	}

	if r != nil && (a.visible || a.gameOver) {
		a.draw(r, timestamp)
	}
	return gameOverDone
}

// draw 白色雪体 + 沿底边平铺的雪崩精灵
func (a *Avalanche) draw(r Renderer, timestamp float64) {
	spriteW := float64(a.Sprite.Sheet.FrameWidth)
	spriteH := float64(a.Sprite.Sheet.Height)
	top := a.PosY - spriteH

	if top > 0 {
		r.FillRect(types.Hitbox{Width: a.screen.Width, Height: top}, ColorWhite)
	}

	frame, _ := a.Sprite.Advance(timestamp)
	src := a.Sprite.FrameRect(frame)
	tiles := int(math.Ceil(a.screen.Width / spriteW))
	for i := 0; i < tiles; i++ {
		r.DrawSprite(a.Sprite.Sheet, src, types.Hitbox{X: spriteW * float64(i), Y: top, Width: spriteW, Height: spriteH})
	}
}

// GameOver 进入结束模式：之后每帧 PosY 下移 GameOverStep，
// 越过屏幕底部时 Update 返回 true。重复调用无效。
func (a *Avalanche) GameOver() {
	a.gameOver = true
}

// IsGameOverAnimation 是否处于结束模式
func (a *Avalanche) IsGameOverAnimation() bool {
	return a.gameOver
}

// Visible 本帧是否可见（决定是否播放雪崩音效）
func (a *Avalanche) Visible() bool {
	return a.visible
}

// ReachedY 雪崩前沿是否已经到达或越过 y
func (a *Avalanche) ReachedY(y float64) bool {
	return a.PosY > y
}

// DebugLines 调试信息
func (a *Avalanche) DebugLines() []string {
	return []string{
		"-- AVALANCHE",
		fmt.Sprintf("speed: %.2f (max: %.2f) accel: %.3f", a.Speed, a.MaxSpeed, a.cfg.Acceleration),
		fmt.Sprintf("distance: %.2f", a.DistanceTraveled),
	}
}
