package scenes

import (
	"image/color"
	"strings"

	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/systems"
	"github.com/decker502/avalanche/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 覆盖层布局（相对屏幕高度）
const (
	overlayTitleSize  = 48.0
	overlayLineSize   = 20.0
	overlayFooterSize = 16.0
	overlayTitleY     = 0.18
	overlayLinesY     = 0.36
	overlayFooterY    = 0.85
	overlayLineHeight = 28.0

	// 面板淡入时长和提示文字的呼吸周期（毫秒）
	overlayFadeIn      = 200.0
	overlayBlinkPeriod = 1600.0
)

var (
	overlayBackground = color.NRGBA{R: 0x10, G: 0x18, B: 0x28, A: 0xc0}
	overlayHighlight  = color.RGBA{R: 0xff, G: 0xd7, B: 0x40, A: 0xff}
)

// Overlay 开始、暂停和结束界面
//
// 实现 game.Presenter。结束界面上榜时，键盘输入实时修改排行榜中的名字。
type Overlay struct {
	faces      systems.FaceProvider // 可为 nil（不绘制文字）
	hallOfFame *game.HallOfFame     // 可为 nil（不显示排行榜）

	visible bool
	kind    game.ScreenKind
	result  game.Result
	// elapsed 界面显示了多久（毫秒）
	elapsed float64
}

var _ game.Presenter = (*Overlay)(nil)

// NewOverlay 创建覆盖层
func NewOverlay(faces systems.FaceProvider, hallOfFame *game.HallOfFame) *Overlay {
	return &Overlay{
		faces:      faces,
		hallOfFame: hallOfFame,
		result:     game.Result{Rank: -1},
	}
}

// ShowScreen 显示界面
func (o *Overlay) ShowScreen(kind game.ScreenKind, result game.Result) {
	o.visible = true
	o.kind = kind
	o.result = result
	o.elapsed = 0
}

// Update 推进淡入和呼吸动画
func (o *Overlay) Update(dtMillis float64) {
	if o.visible {
		o.elapsed += dtMillis
	}
}

// HideScreen 隐藏界面并结束名字编辑
func (o *Overlay) HideScreen() {
	o.visible = false
	if o.hallOfFame != nil {
		o.hallOfFame.StopEditing()
	}
}

// Visible 是否正在显示
func (o *Overlay) Visible() bool {
	return o.visible
}

// Kind 当前界面类型
func (o *Overlay) Kind() game.ScreenKind {
	return o.kind
}

// Editing 是否正在编辑排行榜名字
func (o *Overlay) Editing() bool {
	return o.visible && o.kind == game.ScreenGameOver &&
		o.hallOfFame != nil && o.hallOfFame.EditingIndex() >= 0
}

// HandleTyping 把键盘输入交给正在编辑的名字
// 返回 true 表示输入已被名字编辑消费
func (o *Overlay) HandleTyping(chars []rune, backspace bool) bool {
	if !o.Editing() {
		return false
	}
	o.hallOfFame.Type(chars, backspace)
	return len(chars) > 0 || backspace
}

// Content 当前界面的文字内容
func (o *Overlay) Content() game.ScreenContent {
	var board []game.HallOfFameEntry
	editing := -1
	if o.hallOfFame != nil {
		board = o.hallOfFame.Entries()
		editing = o.hallOfFame.EditingIndex()
	}
	c := game.BuildScreen(o.kind, o.result, board, editing)
	if utils.IsMobile() {
		c.Footer = strings.Replace(c.Footer, "click", "tap", 1)
	}
	return c
}

// Draw 在游戏画面上绘制半透明面板和文字
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	fade := utils.EaseOutCubic(o.elapsed / overlayFadeIn)
	bg := overlayBackground
	bg.A = uint8(float64(bg.A) * fade)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), bg, false)

	if o.faces == nil {
		return
	}

	c := o.Content()
	drawCentered(screen, o.faces.Face(overlayTitleSize), c.Title, w/2, h*overlayTitleY, color.White)

	face := o.faces.Face(overlayLineSize)
	for i, line := range c.Lines {
		var clr color.Color = color.White
		if i == c.Highlight {
			clr = overlayHighlight
		}
		drawCentered(screen, face, line, w/2, h*overlayLinesY+float64(i)*overlayLineHeight, clr)
	}

	// 提示文字在半透明和不透明之间呼吸
	alpha := utils.Lerp(0.35, 1, utils.EaseInOutSine(utils.PingPong(o.elapsed, overlayBlinkPeriod)))
	footer := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	footer.A = uint8(alpha * 0xff)
	drawCentered(screen, o.faces.Face(overlayFooterSize), c.Footer, w/2, h*overlayFooterY, footer)
}
