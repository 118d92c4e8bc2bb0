// Package systems 提供把游戏核心接到 Ebitengine 上的系统
package systems

import (
	"image"
	"image/color"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/entities"
	"github.com/decker502/avalanche/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FaceProvider 按字号提供字体
type FaceProvider interface {
	Face(size float64) *text.GoTextFace
}

// commandKind 绘制命令类型
type commandKind int

const (
	cmdSprite commandKind = iota
	cmdLine
	cmdFillRect
	cmdStrokeRect
	cmdText
)

// drawCommand 一条绘制命令
type drawCommand struct {
	kind   commandKind
	sheet  string
	src    types.Hitbox
	dst    types.Hitbox
	x0, y0 float64
	x1, y1 float64
	width  float64
	size   float64
	text   string
	clr    color.Color
}

// RenderSystem 记录一帧的绘制命令，在 Draw 中回放到屏幕上
//
// 游戏逻辑在 Ebitengine 的 Update 中推进，而绘制只能在 Draw 中进行，
// 所以 AdvanceFrame 期间的绘制调用先记录下来。
// 暂停时不会调用 Clear，Flush 会一直回放最后一帧的画面。
type RenderSystem struct {
	images   map[string]*ebiten.Image // 精灵表 ID -> 图片
	faces    FaceProvider
	commands []drawCommand
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - images: 精灵表 ID 到图片的映射（ResourceManager.LoadSpriteSheets 的结果）
//   - faces: 字体提供者
func NewRenderSystem(images map[string]*ebiten.Image, faces FaceProvider) *RenderSystem {
	return &RenderSystem{
		images: images,
		faces:  faces,
	}
}

// Clear 开始新的一帧
func (rs *RenderSystem) Clear() {
	rs.commands = rs.commands[:0]
}

// DrawSprite 记录精灵绘制
func (rs *RenderSystem) DrawSprite(sheet config.SpriteSheet, src, dst types.Hitbox) {
	rs.commands = append(rs.commands, drawCommand{kind: cmdSprite, sheet: sheet.ID, src: src, dst: dst})
}

// DrawLine 记录圆头线段
func (rs *RenderSystem) DrawLine(x0, y0, x1, y1, width float64, clr color.Color) {
	rs.commands = append(rs.commands, drawCommand{kind: cmdLine, x0: x0, y0: y0, x1: x1, y1: y1, width: width, clr: clr})
}

// FillRect 记录实心矩形
func (rs *RenderSystem) FillRect(r types.Hitbox, clr color.Color) {
	rs.commands = append(rs.commands, drawCommand{kind: cmdFillRect, dst: r, clr: clr})
}

// StrokeRect 记录矩形边框
func (rs *RenderSystem) StrokeRect(r types.Hitbox, width float64, clr color.Color) {
	rs.commands = append(rs.commands, drawCommand{kind: cmdStrokeRect, dst: r, width: width, clr: clr})
}

// DrawText 记录文字，y 为基线
func (rs *RenderSystem) DrawText(s string, x, y, size float64, clr color.Color) {
	rs.commands = append(rs.commands, drawCommand{kind: cmdText, text: s, x0: x, y0: y, size: size, clr: clr})
}

// MeasureText 文字宽度
func (rs *RenderSystem) MeasureText(s string, size float64) float64 {
	if rs.faces == nil {
		return 0
	}
	return text.Advance(s, rs.faces.Face(size))
}

// CommandCount 当前帧记录的命令数
func (rs *RenderSystem) CommandCount() int {
	return len(rs.commands)
}

// Flush 把记录的命令画到 screen 上（不清空，可重复回放）
func (rs *RenderSystem) Flush(screen *ebiten.Image) {
	screen.Fill(entities.ColorWhite)

	for i := range rs.commands {
		c := &rs.commands[i]
		switch c.kind {
		case cmdSprite:
			rs.drawSprite(screen, c)
		case cmdLine:
			w := float32(c.width)
			vector.StrokeLine(screen, float32(c.x0), float32(c.y0), float32(c.x1), float32(c.y1), w, c.clr, true)
			// 圆头
			vector.DrawFilledCircle(screen, float32(c.x0), float32(c.y0), w/2, c.clr, true)
			vector.DrawFilledCircle(screen, float32(c.x1), float32(c.y1), w/2, c.clr, true)
		case cmdFillRect:
			vector.DrawFilledRect(screen, float32(c.dst.X), float32(c.dst.Y), float32(c.dst.Width), float32(c.dst.Height), c.clr, false)
		case cmdStrokeRect:
			vector.StrokeRect(screen, float32(c.dst.X), float32(c.dst.Y), float32(c.dst.Width), float32(c.dst.Height), float32(c.width), c.clr, false)
		case cmdText:
			rs.drawText(screen, c)
		}
	}
}

func (rs *RenderSystem) drawSprite(screen *ebiten.Image, c *drawCommand) {
	img := rs.images[c.sheet]
	if img == nil || c.src.Width <= 0 || c.src.Height <= 0 {
		return
	}

	rect := image.Rect(int(c.src.X), int(c.src.Y), int(c.src.Right()), int(c.src.Bottom()))
	sub, ok := img.SubImage(rect).(*ebiten.Image)
	if !ok {
		return
	}

	screen.DrawImage(sub, spriteDrawOptions(c.src, c.dst))
}

// spriteDrawOptions 把 src 帧缩放平移到 dst
// 精灵是像素画，用最近邻采样保持边缘清晰
func spriteDrawOptions(src, dst types.Hitbox) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/src.Width, dst.Height/src.Height)
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterNearest
	return op
}

func (rs *RenderSystem) drawText(screen *ebiten.Image, c *drawCommand) {
	if rs.faces == nil {
		return
	}
	face := rs.faces.Face(c.size)

	op := &text.DrawOptions{}
	op.GeoM.Translate(c.x0, c.y0-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c.clr)
	text.Draw(screen, c.text, face, op)
}

var _ entities.Renderer = (*RenderSystem)(nil)
