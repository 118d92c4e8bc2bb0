package entities

import (
	"testing"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

func TestTrailAppendsAnchoredPiece(t *testing.T) {
	cfg := config.DefaultGameConfig().Trail
	tr := NewTrail(cfg)
	anchor := types.Hitbox{X: 100, Y: 200, Width: 28, Height: 28}

	tr.Update(nil, 1, anchor, ColorBlack)

	if tr.Len() != 1 {
		t.Fatalf("expected 1 piece, got %d", tr.Len())
	}
	p := tr.Pieces[0]
	if p.X != 100 || p.Width != 18 {
		t.Errorf("unexpected piece geometry %+v", p)
	}
	// 追加后立即上移一次
	if p.Y != 214-cfg.ScrollRate {
		t.Errorf("expected Y %v, got %v", 214-cfg.ScrollRate, p.Y)
	}
	if p.Height != 1*cfg.ThicknessPerSpeed+cfg.BaseThickness {
		t.Errorf("unexpected thickness %v", p.Height)
	}
}

func TestTrailThicknessGrowsWithSpeed(t *testing.T) {
	tr := NewTrail(config.DefaultGameConfig().Trail)
	anchor := types.Hitbox{X: 0, Y: 500, Width: 30, Height: 30}

	tr.Update(nil, 1, anchor, ColorBlack)
	tr.Update(nil, 3, anchor, ColorBlack)

	if tr.Pieces[1].Height <= tr.Pieces[0].Height {
		t.Errorf("faster play should give thicker trail: %v vs %v", tr.Pieces[0].Height, tr.Pieces[1].Height)
	}
}

func TestTrailRemovesAllOffscreenPiecesInOrder(t *testing.T) {
	tr := NewTrail(config.DefaultGameConfig().Trail)
	tr.Pieces = []TrailPiece{
		{X: 1, Y: 2},
		{X: 2, Y: 3},
		{X: 3, Y: 50},
		{X: 4, Y: 1},
		{X: 5, Y: 80},
	}

	// 滚动 4 个单位：连续两个出界的段也都要移除
	tr.Update(nil, 1, types.Hitbox{X: 6, Y: 300, Width: 30, Height: 30}, ColorBlack)

	var xs []float64
	for _, p := range tr.Pieces {
		if p.Y < 0 {
			t.Errorf("offscreen piece kept: %+v", p)
		}
		xs = append(xs, p.X)
	}
	want := []float64{3, 5, 6}
	if len(xs) != len(want) {
		t.Fatalf("remaining pieces %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("remaining pieces %v, want %v (order must be preserved)", xs, want)
		}
	}
}

func TestTrailDrawsEveryPiece(t *testing.T) {
	tr := NewTrail(config.DefaultGameConfig().Trail)
	r := &recordingRenderer{}
	anchor := types.Hitbox{X: 0, Y: 300, Width: 30, Height: 30}

	for i := 0; i < 5; i++ {
		tr.Update(r, 1, anchor, ColorBlack)
	}
	// 1 + 2 + 3 + 4 + 5
	if r.lines != 15 {
		t.Errorf("expected 15 line draws, got %d", r.lines)
	}
}
