// Package tui 终端前端：用 tcell 绘制字符画面，用 beep 播放合成音效
//
// 游戏核心与图形前端共用，这里只提供 Renderer / AudioSink / Presenter 的终端实现
// 以及驱动 Session 的事件循环。
package tui

import (
	"image/color"
	"math"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/entities"
	"github.com/decker502/avalanche/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// Canvas 字符画布，tcell.Screen 满足这个接口
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// 画面配色
var (
	colorSnow      = tcell.NewRGBColor(0xff, 0xff, 0xff)
	colorSnowShade = tcell.NewRGBColor(0xb0, 0xb8, 0xc8)
	colorSnowball  = tcell.NewRGBColor(0x5a, 0x78, 0x9a)
	colorTree      = tcell.NewRGBColor(0x1e, 0x6b, 0x2e)
	colorImpact    = tcell.NewRGBColor(0xe0, 0x80, 0x20)
	colorAvalanche = tcell.NewRGBColor(0x80, 0x88, 0x98)
	colorHeartFull = tcell.NewRGBColor(0xd0, 0x20, 0x30)
	colorHeartEdge = tcell.NewRGBColor(0x90, 0x90, 0x90)
)

// CellRenderer 把逻辑屏幕坐标缩放到字符格上绘制
//
// 精灵按精灵表 ID 映射成固定字符，缺失的精灵表画成 '?'。
// 每次 Clear 时重新读取画布尺寸，窗口缩放后下一帧自动适配。
type CellRenderer struct {
	canvas Canvas
	screen config.ScreenConfig

	cols, rows int
	sx, sy     float64 // 逻辑像素 -> 字符格
	background tcell.Style
}

// NewCellRenderer 创建终端渲染器
func NewCellRenderer(canvas Canvas, screen config.ScreenConfig) *CellRenderer {
	r := &CellRenderer{
		canvas:     canvas,
		screen:     screen,
		background: tcell.StyleDefault.Background(colorSnow).Foreground(tcell.ColorBlack),
	}
	r.resize()
	return r
}

func (r *CellRenderer) resize() {
	r.cols, r.rows = r.canvas.Size()
	if r.screen.Width > 0 {
		r.sx = float64(r.cols) / r.screen.Width
	}
	if r.screen.Height > 0 {
		r.sy = float64(r.rows) / r.screen.Height
	}
}

// Background 画布底色
func (r *CellRenderer) Background() tcell.Style {
	return r.background
}

// Clear 用雪地底色填满画布
func (r *CellRenderer) Clear() {
	r.resize()
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			r.canvas.SetContent(x, y, ' ', nil, r.background)
		}
	}
}

// cellRect 返回逻辑矩形覆盖的字符格范围 [x0,x1) × [y0,y1)，至少一格
func (r *CellRenderer) cellRect(h types.Hitbox) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(h.X * r.sx))
	y0 = int(math.Floor(h.Y * r.sy))
	x1 = int(math.Ceil(h.Right() * r.sx))
	y1 = int(math.Ceil(h.Bottom() * r.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (r *CellRenderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return
	}
	r.canvas.SetContent(x, y, ch, nil, style)
}

// fg 在雪地底色上使用指定前景色
func (r *CellRenderer) fg(c tcell.Color) tcell.Style {
	return r.background.Foreground(c)
}

// SpriteGlyph 返回精灵表某一帧对应的字符和前景色
func SpriteGlyph(sheetID string, frame int) (rune, tcell.Color) {
	switch sheetID {
	case config.SpriteSnowball:
		return '●', colorSnowball
	case config.SpriteTree:
		return '▲', colorTree
	case config.SpriteImpact:
		return '*', colorImpact
	case config.SpriteAvalanche:
		return '▓', colorAvalanche
	case config.SpriteHeart:
		// 4 满，0 空
		switch {
		case frame >= 4:
			return '♥', colorHeartFull
		case frame >= 2:
			return '♥', colorHeartEdge
		default:
			return '♡', colorHeartEdge
		}
	default:
		return '?', tcell.ColorBlack
	}
}

// DrawSprite 用精灵对应的字符填满目标区域
func (r *CellRenderer) DrawSprite(sheet config.SpriteSheet, src, dst types.Hitbox) {
	frame := 0
	if sheet.FrameWidth > 0 {
		frame = int(src.X) / sheet.FrameWidth
	}
	ch, c := SpriteGlyph(sheet.ID, frame)
	style := r.fg(c)

	x0, y0, x1, y1 := r.cellRect(dst)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.set(x, y, ch, style)
		}
	}
}

// DrawLine 按字符格逐点绘制线段
func (r *CellRenderer) DrawLine(x0, y0, x1, y1, width float64, clr color.Color) {
	cx0, cy0 := r.toCell(x0, y0)
	cx1, cy1 := r.toCell(x1, y1)

	ch := '·'
	switch {
	case cy0 == cy1:
		ch = '─'
		if width >= 3 {
			ch = '━'
		}
	case cx0 == cx1:
		ch = '│'
		if width >= 2 {
			ch = '┃'
		}
	}
	style := r.fg(tcell.FromImageColor(clr))

	dx, dy := abs(cx1-cx0), -abs(cy1-cy0)
	stepX, stepY := sign(cx1-cx0), sign(cy1-cy0)
	e := dx + dy
	x, y := cx0, cy0
	for {
		r.set(x, y, ch, style)
		if x == cx1 && y == cy1 {
			return
		}
		if e2 := 2 * e; e2 >= dy {
			e += dy
			x += stepX
		} else {
			e += dx
			y += stepY
		}
	}
}

// toCell 把逻辑坐标换算成字符格坐标（右边界和下边界归到最后一格）
func (r *CellRenderer) toCell(x, y float64) (int, int) {
	cx := int(math.Floor(x * r.sx))
	cy := int(math.Floor(y * r.sy))
	if cx >= r.cols {
		cx = r.cols - 1
	}
	if cy >= r.rows {
		cy = r.rows - 1
	}
	return cx, cy
}

// FillRect 填充矩形
// 与底色相同的白色用浅灰阴影字符表示，否则看不出区域
func (r *CellRenderer) FillRect(h types.Hitbox, clr color.Color) {
	c := tcell.FromImageColor(clr)
	ch, style := ' ', r.background.Background(c)
	if c == colorSnow {
		ch, style = '░', r.fg(colorSnowShade)
	}

	x0, y0, x1, y1 := r.cellRect(h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.set(x, y, ch, style)
		}
	}
}

// StrokeRect 用制表符画矩形边框
func (r *CellRenderer) StrokeRect(h types.Hitbox, width float64, clr color.Color) {
	style := r.fg(tcell.FromImageColor(clr))
	x0, y0, x1, y1 := r.cellRect(h)
	x1--
	y1--

	for x := x0 + 1; x < x1; x++ {
		r.set(x, y0, '─', style)
		r.set(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.set(x0, y, '│', style)
		r.set(x1, y, '│', style)
	}
	r.set(x0, y0, '┌', style)
	r.set(x1, y0, '┐', style)
	r.set(x0, y1, '└', style)
	r.set(x1, y1, '┘', style)
}

// DrawText 一个字符占一格，行号取字形中线所在的行
func (r *CellRenderer) DrawText(s string, x, y, size float64, clr color.Color) {
	style := r.fg(tcell.FromImageColor(clr))
	row := int(math.Floor((y - size/2) * r.sy))
	col := int(math.Floor(x * r.sx))
	for i, ch := range []rune(s) {
		r.set(col+i, row, ch, style)
	}
}

// MeasureText 文字在逻辑坐标下的宽度
func (r *CellRenderer) MeasureText(s string, size float64) float64 {
	if r.sx <= 0 {
		return 0
	}
	return float64(len([]rune(s))) / r.sx
}

// Cells 当前画布的字符格尺寸
func (r *CellRenderer) Cells() (cols, rows int) {
	return r.cols, r.rows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

var _ entities.Renderer = (*CellRenderer)(nil)
