package entities

import (
	"image/color"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// recordingRenderer 记录绘制调用，测试用
type recordingRenderer struct {
	sprites []spriteCall
	lines   int
	rects   int
	texts   []string
}

type spriteCall struct {
	sheet string
	src   types.Hitbox
	dst   types.Hitbox
}

func (r *recordingRenderer) Clear() {}

func (r *recordingRenderer) DrawSprite(sheet config.SpriteSheet, src, dst types.Hitbox) {
	r.sprites = append(r.sprites, spriteCall{sheet: sheet.ID, src: src, dst: dst})
}

func (r *recordingRenderer) DrawLine(x0, y0, x1, y1, width float64, clr color.Color) { r.lines++ }

func (r *recordingRenderer) FillRect(rect types.Hitbox, clr color.Color) { r.rects++ }

func (r *recordingRenderer) StrokeRect(rect types.Hitbox, width float64, clr color.Color) { r.rects++ }

func (r *recordingRenderer) DrawText(s string, x, y, size float64, clr color.Color) {
	r.texts = append(r.texts, s)
}

func (r *recordingRenderer) MeasureText(s string, size float64) float64 {
	return float64(len(s)) * size / 2
}

func (r *recordingRenderer) spritesOf(id string) []spriteCall {
	var out []spriteCall
	for _, c := range r.sprites {
		if c.sheet == id {
			out = append(out, c)
		}
	}
	return out
}

func testConfig() (*config.GameConfig, config.SpriteSheets) {
	return config.DefaultGameConfig(), config.DefaultSpriteSheets()
}
