package entities

import (
	"testing"

	"github.com/decker502/avalanche/pkg/types"
)

func TestSpawnObstacleBounds(t *testing.T) {
	cfg, sheets := testConfig()
	rng := types.NewRand(1)

	for i := 0; i < 500; i++ {
		o := SpawnObstacle(rng, cfg, sheets)
		if o.Size < cfg.Obstacle.MinSize || o.Size > cfg.Obstacle.MaxSize {
			t.Fatalf("size %v out of range", o.Size)
		}
		if o.X < 0 || o.X+o.Size > cfg.Screen.Width {
			t.Fatalf("obstacle x=%v size=%v exceeds screen", o.X, o.Size)
		}
		if o.Y <= cfg.Screen.Height {
			t.Fatalf("obstacle should spawn below the bottom edge, y=%v", o.Y)
		}
	}
}

func TestObstacleLifecycle(t *testing.T) {
	cfg, sheets := testConfig()
	o := NewObstacle(cfg, sheets, 100, 100)

	if o.OutOfScreen() {
		t.Fatal("fresh obstacle must not be out of screen")
	}

	ts := 0.0
	for !o.OutOfScreen() {
		ts += 16
		o.Update(nil, ts, 1)
		if o.Y+o.Size >= 0 && o.OutOfScreen() {
			t.Fatalf("OutOfScreen true while y+size=%v >= 0", o.Y+o.Size)
		}
		if ts > 1e6 {
			t.Fatal("obstacle never left the screen")
		}
	}
	if o.Y+o.Size >= 0 {
		t.Errorf("OutOfScreen reported with y+size=%v", o.Y+o.Size)
	}
}

func TestObstacleHitboxes(t *testing.T) {
	cfg, sheets := testConfig()
	o := NewObstacle(cfg, sheets, 100, 120)

	bonus := o.BonusHitbox()
	if bonus.Width != 180 || bonus.CenterX() != 160 {
		t.Errorf("unexpected bonus ring %+v", bonus)
	}

	core := o.Hitbox()
	if core.Width != 60 {
		t.Errorf("damage core should be half size, got %+v", core)
	}
	// 核心偏移 size/15, size/5
	if core.CenterX() != 100+120.0/15+60 || core.CenterY() != o.Y+120.0/5+60 {
		t.Errorf("damage core offset wrong: %+v", core)
	}
}

func TestObstacleHitDisablesCorePermanently(t *testing.T) {
	cfg, sheets := testConfig()
	o := NewObstacle(cfg, sheets, 100, 100)

	o.OnHit()
	for i := 0; i < 3; i++ {
		if o.Hitbox() != types.OffscreenHitbox() {
			t.Fatalf("Hitbox() after OnHit = %+v, want offscreen", o.Hitbox())
		}
		o.Update(nil, float64(i*200), 1)
	}
	if o.Sprite.StartFrame != 5 || o.Sprite.EndFrame != 9 || o.Sprite.Loop {
		t.Errorf("hit reaction should play 5..9 once, got %d..%d loop=%v", o.Sprite.StartFrame, o.Sprite.EndFrame, o.Sprite.Loop)
	}

	// 奖励环独立
	if o.BonusHitbox() == types.OffscreenHitbox() {
		t.Error("bonus ring should stay active after a damage hit")
	}
	o.OnBonus()
	if o.BonusHitbox() != types.OffscreenHitbox() {
		t.Error("bonus ring should be disabled after OnBonus")
	}
}
