package entities

import (
	"math/rand/v2"

	"github.com/decker502/avalanche/pkg/components"
	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// 树精灵表中的反应动画
const (
	treeBonusStart = 0
	treeBonusEnd   = 4
	treeHitStart   = 5
	treeHitEnd     = 9
)

// Obstacle 障碍物（树）
//
// 有两个同心的碰撞区域：
//   - 奖励环：精灵包围盒放大 BonusScale 倍，第一次接触后失效
//   - 伤害核心：缩小 DamageScale 倍并偏移，第一次接触后失效
//
// IsHit / IsBonus 只能从 false 变为 true。
type Obstacle struct {
	cfg config.ObstacleConfig

	Sprite *components.SpriteAnimator

	X, Y    float64
	Size    float64
	IsHit   bool
	IsBonus bool
}

// NewObstacle 在 x 处创建大小为 size 的障碍物，起点在屏幕底边以下
func NewObstacle(cfg *config.GameConfig, sheets config.SpriteSheets, x, size float64) *Obstacle {
	return &Obstacle{
		cfg:    cfg.Obstacle,
		Sprite: components.NewSpriteAnimator(sheets.Get(config.SpriteTree), false),
		X:      x,
		Y:      cfg.Screen.Height + size/2,
		Size:   size,
	}
}

// SpawnObstacle 随机大小、随机水平位置生成障碍物
// 大小取 [MinSize, MaxSize]，X 取 [0, 屏幕宽度 - 大小]，两端都包含
func SpawnObstacle(rng *rand.Rand, cfg *config.GameConfig, sheets config.SpriteSheets) *Obstacle {
	size := types.RandomInt(rng, int(cfg.Obstacle.MinSize), int(cfg.Obstacle.MaxSize))
	x := types.RandomInt(rng, 0, int(cfg.Screen.Width)-size)
	return NewObstacle(cfg, sheets, float64(x), float64(size))
}

// Update 向上滚动并绘制
func (o *Obstacle) Update(r Renderer, timestamp, gameSpeed float64) {
	o.Y -= o.cfg.ScrollRate * gameSpeed

	frame, _ := o.Sprite.Advance(timestamp)
	if r != nil {
		r.DrawSprite(o.Sprite.Sheet, o.Sprite.FrameRect(frame), types.Hitbox{X: o.X, Y: o.Y, Width: o.Size, Height: o.Size})
	}
}

// OutOfScreen 是否已完全滚出屏幕顶部
func (o *Obstacle) OutOfScreen() bool {
	return o.Y+o.Size < 0
}

// Hitbox 伤害核心；被撞过后返回屏幕外的退化矩形
func (o *Obstacle) Hitbox() types.Hitbox {
	if o.IsHit {
		return types.OffscreenHitbox()
	}
	return types.ScaledHitbox(o.X+o.Size/o.cfg.DamageShiftX, o.Y+o.Size/o.cfg.DamageShiftY, o.Size, o.Size, o.cfg.DamageScale)
}

// BonusHitbox 奖励环；获得过奖励后返回屏幕外的退化矩形
func (o *Obstacle) BonusHitbox() types.Hitbox {
	if o.IsBonus {
		return types.OffscreenHitbox()
	}
	return types.ScaledHitbox(o.X, o.Y, o.Size, o.Size, o.cfg.BonusScale)
}

// OnBonus 奖励环被触碰
func (o *Obstacle) OnBonus() {
	o.IsBonus = true
	o.Sprite.Play(treeBonusStart, treeBonusEnd, false)
}

// OnHit 伤害核心被撞
func (o *Obstacle) OnHit() {
	o.IsHit = true
	o.Sprite.Play(treeHitStart, treeHitEnd, false)
}
