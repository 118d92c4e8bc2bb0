package game

import (
	"fmt"

	"github.com/decker502/avalanche/pkg/entities"
)

// 调试信息布局
const (
	debugFontSize   = 12
	debugLineHeight = 15
	debugPlayerX    = 10
	debugSessionX   = 360
	debugAvalancheX = 700
	debugTop        = 10
)

// DebugLines 会话层的调试信息
func (s *Session) DebugLines() []string {
	state := s.state.String()
	if s.over {
		state += " (game over)"
	}
	return []string{
		"-- GAME",
		fmt.Sprintf("speed: %.2f (min: %.2f, max: %.2f) accel: %.3f",
			s.GSpeed, s.cfg.Session.MinSpeed, s.cfg.Session.MaxSpeed, s.cfg.Session.Acceleration),
		"state: " + state,
		fmt.Sprintf("obstacles: %d interval: %.2f", len(s.Obstacles), s.cfg.Session.SpawnInterval/s.GSpeed),
		fmt.Sprintf("combo: x%d (max: %d) expires in: %.2f", s.Combo, s.cfg.Session.MaxCombo, s.ComboExpiresIn()),
		fmt.Sprintf("score: %d", s.HUD.DisplayScore(s.Score)),
		fmt.Sprintf("lives: %d", s.Player.Lives()),
		fmt.Sprintf("distance: %.2f", s.DistanceTraveled),
		fmt.Sprintf("avalanche gap: %.2f", s.DistanceTraveled-s.Avalanche.DistanceTraveled),
	}
}

// drawDebug 绘制碰撞盒（红色伤害区、绿色奖励区）、雪崩前沿和三列调试信息
func (s *Session) drawDebug(r entities.Renderer) {
	if r == nil {
		return
	}

	r.StrokeRect(s.Player.Hitbox(), 1, entities.ColorDebug)
	for _, o := range s.Obstacles {
		r.StrokeRect(o.Hitbox(), 1, entities.ColorDebug)
		r.StrokeRect(o.BonusHitbox(), 1, entities.ColorGreen)
	}
	if s.Avalanche.Visible() {
		r.DrawLine(0, s.Avalanche.PosY, s.cfg.Screen.Width, s.Avalanche.PosY, 5, entities.ColorDebug)
	}

	drawDebugLines(r, debugPlayerX, s.Player.DebugLines())
	drawDebugLines(r, debugSessionX, s.DebugLines())
	drawDebugLines(r, debugAvalancheX, s.Avalanche.DebugLines())
}

func drawDebugLines(r entities.Renderer, x float64, lines []string) {
	for i, line := range lines {
		r.DrawText(line, x, debugTop+float64(debugLineHeight*(i+1)), debugFontSize, entities.ColorDebug)
	}
}
