package entities

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/avalanche/pkg/components"
	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// 雪球精灵表中的动画区间
const (
	snowballRollStart = 0
	snowballRollEnd   = 7
	snowballDeathFrom = 8
	snowballDeathTo   = 12
	impactStart       = 0
	impactEnd         = 4
)

// Player 玩家控制的雪球
//
// 不变量：
//   - InitialSize <= Size <= MaxSize
//   - MinSpeed <= Speed <= TargetSpeed
//
// 生命数由大小推导：floor(Size / InitialSize)，不单独存储。
type Player struct {
	cfg config.PlayerConfig

	Sprite *components.SpriteAnimator
	Impact *components.SpriteAnimator
	Trail  *Trail

	X, Y      float64
	Size      float64
	Speed     float64
	Direction types.Direction

	lastDirectionChangeTime float64
	currentTime             float64

	drawImpact bool
	dying      bool
}

// NewPlayer 创建位于屏幕水平中央的雪球，开始播放滚动动画
func NewPlayer(cfg *config.GameConfig, sheets config.SpriteSheets) *Player {
	p := &Player{
		cfg:       cfg.Player,
		Sprite:    components.NewSpriteAnimator(sheets.Get(config.SpriteSnowball), true),
		Impact:    components.NewSpriteAnimator(sheets.Get(config.SpriteImpact), false),
		Trail:     NewTrail(cfg.Trail),
		Size:      cfg.Player.InitialSize,
		Speed:     cfg.Player.MinSpeed,
		Direction: types.DirectionRight,
	}
	p.X = cfg.Screen.Width/2 - p.Size/2
	p.Y = cfg.Screen.Height * cfg.Player.StartYRatio

	p.Sprite.Play(snowballRollStart, snowballRollEnd, false)
	return p
}

// ChangeDirection 反转方向并把速度减半（不低于 MinSpeed）
// 撞墙弹回时直接调用，不受转向间隔限制
func (p *Player) ChangeDirection() {
	p.Speed = math.Max(p.cfg.MinSpeed, p.Speed/2)
	p.Direction = p.Direction.Opposite()
	p.lastDirectionChangeTime = p.currentTime
}

// RequestDirectionChange 处理玩家的转向输入
// 距上次转向不足 DirectionChangeDelay 毫秒时忽略，返回是否转向
func (p *Player) RequestDirectionChange() bool {
	if p.currentTime-p.lastDirectionChangeTime < p.cfg.DirectionChangeDelay {
		return false
	}
	p.ChangeDirection()
	return true
}

// Update 移动、加速、变大，然后更新雪痕并绘制
//
// 返回 true 表示结束动画在本帧播放完毕（只会返回一次）。
func (p *Player) Update(r Renderer, timestamp, gameSpeed float64, trailColor color.Color) (gameOverDone bool) {
	p.X += p.Direction.Sign() * p.Speed * gameSpeed

	p.Speed = types.Clamp(types.Approach(p.Speed, p.cfg.TargetSpeed, p.cfg.Acceleration), p.cfg.MinSpeed, p.cfg.TargetSpeed)

	if p.Size < p.cfg.MaxSize {
		growth := math.Min(p.cfg.Growth*gameSpeed, (p.cfg.MaxSize-p.Size)*gameSpeed)
		if growth >= p.cfg.MaxSize-p.Size {
			p.Size = p.cfg.MaxSize
		} else {
			p.SetSize(p.Size + growth)
		}
	}

	p.currentTime = timestamp

	p.Trail.Update(r, gameSpeed, p.Hitbox(), trailColor)

	frame, finished := p.Sprite.Advance(timestamp)
	if r != nil {
		r.DrawSprite(p.Sprite.Sheet, p.Sprite.FrameRect(frame), types.Hitbox{X: p.X, Y: p.Y, Width: p.Size, Height: p.Size})
	}
	if finished && p.dying {
		p.Sprite.Pause(snowballDeathTo)
		gameOverDone = true
	}

	if p.drawImpact {
		impactSize := p.Size * p.cfg.ImpactScale
		frame, done := p.Impact.Advance(timestamp)
		if r != nil {
			offset := (impactSize - p.Size) / 2
			r.DrawSprite(p.Impact.Sheet, p.Impact.FrameRect(frame),
				types.Hitbox{X: p.X - offset, Y: p.Y - offset, Width: impactSize, Height: impactSize})
		}
		if done {
			p.drawImpact = false
		}
	}

	return gameOverDone
}

// OnHit 播放一次受击特效
func (p *Player) OnHit() {
	p.drawImpact = true
	p.Impact.Play(impactStart, impactEnd, true)
}

// OnGameOver 开始播放结束动画
// 动画结束时 Update 返回 true，之后雪球停在最后一帧。
// 已经在播放结束动画时返回 false。
func (p *Player) OnGameOver() bool {
	if p.dying {
		return false
	}
	p.dying = true
	p.Sprite.Play(snowballDeathFrom, snowballDeathTo, true)
	return true
}

// Dying 是否正在播放结束动画
func (p *Player) Dying() bool {
	return p.dying
}

// ImpactVisible 受击特效是否正在显示
func (p *Player) ImpactVisible() bool {
	return p.drawImpact
}

// SetSize 设置大小，钳制在 [InitialSize, MaxSize]
func (p *Player) SetSize(size float64) {
	p.Size = types.Clamp(size, p.cfg.InitialSize, p.cfg.MaxSize)
}

// LoseLife 失去一条命（大小减少一个 InitialSize）
func (p *Player) LoseLife() {
	p.SetSize(p.Size - p.cfg.InitialSize)
}

// SizeRatio 当前大小与初始大小之比
func (p *Player) SizeRatio() float64 {
	return p.Size / p.cfg.InitialSize
}

// Lives 剩余生命数
func (p *Player) Lives() int {
	return int(math.Floor(p.SizeRatio()))
}

// Hitbox 碰撞盒：精灵包围盒按 HitboxScale 居中缩放
func (p *Player) Hitbox() types.Hitbox {
	return types.ScaledHitbox(p.X, p.Y, p.Size, p.Size, p.cfg.HitboxScale)
}

// DirectionChangeCooldown 距离下一次允许转向还剩多少毫秒
func (p *Player) DirectionChangeCooldown() float64 {
	return math.Max(0, p.cfg.DirectionChangeDelay-(p.currentTime-p.lastDirectionChangeTime))
}

// DebugLines 调试信息
func (p *Player) DebugLines() []string {
	return []string{
		"-- PLAYER",
		fmt.Sprintf("pos: %.2f, %.2f", p.X, p.Y),
		fmt.Sprintf("size: %.2f (max: %.0f) growth: %.2f", p.Size, p.cfg.MaxSize, p.cfg.Growth),
		fmt.Sprintf("speed: %.2f (min: %.0f, max: %.0f) accel: %.2f", p.Speed, p.cfg.MinSpeed, p.cfg.TargetSpeed, p.cfg.Acceleration),
		fmt.Sprintf("direction: %s cooldown: %.2f", p.Direction, p.DirectionChangeCooldown()),
	}
}
