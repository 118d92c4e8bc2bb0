package entities

import (
	"math"
	"testing"

	"github.com/decker502/avalanche/pkg/types"
)

func TestNewPlayerPosition(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	if p.X != cfg.Screen.Width/2-cfg.Player.InitialSize/2 {
		t.Errorf("expected centered X, got %v", p.X)
	}
	if p.Y != cfg.Screen.Height/5 {
		t.Errorf("expected Y = H/5, got %v", p.Y)
	}
	if p.Direction != types.DirectionRight {
		t.Errorf("expected initial direction RIGHT, got %v", p.Direction)
	}
	if p.Lives() != 1 {
		t.Errorf("expected 1 life at initial size, got %d", p.Lives())
	}
	if p.Sprite.Paused || p.Sprite.EndFrame != 7 {
		t.Errorf("expected rolling animation 0..7, got paused=%v end=%d", p.Sprite.Paused, p.Sprite.EndFrame)
	}
}

func TestChangeDirectionHalvesSpeed(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)
	p.Speed = 4

	p.ChangeDirection()
	if p.Speed != 2 || p.Direction != types.DirectionLeft {
		t.Fatalf("after one change: speed=%v dir=%v", p.Speed, p.Direction)
	}

	p.Speed = 3.9
	p.ChangeDirection()
	p.ChangeDirection()
	want := math.Max(cfg.Player.MinSpeed, 3.9/4)
	if p.Speed != want {
		t.Errorf("two changes: expected max(min, speed/4) = %v, got %v", want, p.Speed)
	}
	if p.Direction != types.DirectionLeft {
		t.Errorf("three changes from RIGHT should end LEFT, got %v", p.Direction)
	}
}

func TestRequestDirectionChangeRateLimited(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	// currentTime 与 lastDirectionChangeTime 都是 0
	if p.RequestDirectionChange() {
		t.Error("request inside the initial delay window should be ignored")
	}

	p.Update(nil, 150, 1, ColorBlack)
	if !p.RequestDirectionChange() {
		t.Fatal("request after the delay should be accepted")
	}

	p.Update(nil, 200, 1, ColorBlack)
	if p.RequestDirectionChange() {
		t.Error("second request 50ms later should be ignored")
	}

	// 撞墙弹回不受限制
	dir := p.Direction
	p.ChangeDirection()
	if p.Direction == dir {
		t.Error("wall bounce must bypass the rate limit")
	}

	p.Update(nil, 300, 1, ColorBlack)
	if !p.RequestDirectionChange() {
		t.Error("request 100ms after the bounce should be accepted")
	}
}

func TestPlayerUpdateKeepsInvariants(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	ts := 0.0
	for i := 0; i < 5000; i++ {
		ts += 16.7
		gSpeed := 1 + float64(i%3)
		if i%37 == 0 {
			p.ChangeDirection()
		}
		p.Update(nil, ts, gSpeed, ColorBlack)

		if p.Speed < cfg.Player.MinSpeed || p.Speed > cfg.Player.TargetSpeed {
			t.Fatalf("frame %d: speed %v out of [%v, %v]", i, p.Speed, cfg.Player.MinSpeed, cfg.Player.TargetSpeed)
		}
		if p.Size < cfg.Player.InitialSize || p.Size > cfg.Player.MaxSize {
			t.Fatalf("frame %d: size %v out of [%v, %v]", i, p.Size, cfg.Player.InitialSize, cfg.Player.MaxSize)
		}
	}

	if p.Size != cfg.Player.MaxSize {
		t.Errorf("size should saturate at max, got %v", p.Size)
	}
}

// 配置绕过 Validate 给出负加速度时，速度仍然停在下限
func TestPlayerSpeedSaturatesWithNegativeAcceleration(t *testing.T) {
	cfg, sheets := testConfig()
	cfg.Player.Acceleration = -0.5
	p := NewPlayer(cfg, sheets)

	ts := 0.0
	for i := 0; i < 10; i++ {
		ts += 16
		p.Update(nil, ts, 1, ColorBlack)
	}
	if p.Speed != cfg.Player.MinSpeed {
		t.Errorf("speed = %v, want it clamped at min %v", p.Speed, cfg.Player.MinSpeed)
	}
}

func TestPlayerMovesBySpeedTimesGameSpeed(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)
	x0 := p.X

	p.Update(nil, 16, 2, ColorBlack)
	if got := p.X - x0; got != cfg.Player.MinSpeed*2 {
		t.Errorf("expected move of %v, got %v", cfg.Player.MinSpeed*2, got)
	}
	if p.Speed != cfg.Player.MinSpeed+cfg.Player.Acceleration {
		t.Errorf("expected speed ramp by acceleration, got %v", p.Speed)
	}
}

func TestSetSizeClampsAndLives(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	p.SetSize(1000)
	if p.Size != cfg.Player.MaxSize || p.Lives() != 3 {
		t.Errorf("expected max size and 3 lives, got size=%v lives=%d", p.Size, p.Lives())
	}

	p.LoseLife()
	if p.Lives() != 2 {
		t.Errorf("expected 2 lives after losing one, got %d", p.Lives())
	}

	p.SetSize(-5)
	if p.Size != cfg.Player.InitialSize {
		t.Errorf("size must not drop below initial, got %v", p.Size)
	}
}

func TestPlayerHitbox(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	hb := p.Hitbox()
	want := types.ScaledHitbox(p.X, p.Y, p.Size, p.Size, 0.8)
	if hb != want {
		t.Errorf("Hitbox() = %+v, want %+v", hb, want)
	}
}

func TestOnGameOverCompletesOnce(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)

	if !p.OnGameOver() {
		t.Fatal("first OnGameOver should start the animation")
	}
	if p.OnGameOver() {
		t.Error("second OnGameOver should be ignored")
	}

	done := 0
	ts := 0.0
	for i := 0; i < 100; i++ {
		ts += 100
		if p.Update(nil, ts, 1, ColorBlack) {
			done++
		}
	}

	if done != 1 {
		t.Errorf("expected game over completion exactly once, got %d", done)
	}
	if !p.Sprite.Paused || p.Sprite.CurrentFrame != 12 {
		t.Errorf("sprite should freeze on frame 12, got paused=%v frame=%d", p.Sprite.Paused, p.Sprite.CurrentFrame)
	}
}

func TestOnHitShowsImpactUntilFinished(t *testing.T) {
	cfg, sheets := testConfig()
	p := NewPlayer(cfg, sheets)
	r := &recordingRenderer{}

	p.OnHit()
	if !p.ImpactVisible() {
		t.Fatal("impact should be visible after hit")
	}

	ts := 0.0
	for i := 0; i < 20 && p.ImpactVisible(); i++ {
		ts += 100
		p.Update(r, ts, 1, ColorBlack)
	}
	if p.ImpactVisible() {
		t.Fatal("impact overlay should clear after its animation finishes")
	}

	impacts := r.spritesOf("impact")
	if len(impacts) == 0 {
		t.Fatal("impact sprite was never drawn")
	}
	first := impacts[0]
	if first.dst.Width != first.dst.Height || math.Abs(first.dst.CenterX()-(p.X+p.Size/2)) > p.Size {
		t.Errorf("impact should be a square centered on the snowball, got %+v", first.dst)
	}
}
