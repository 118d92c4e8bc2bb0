package tui

import (
	"github.com/decker502/avalanche/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// 面板配色
var (
	panelStyle     = tcell.StyleDefault.Background(tcell.NewRGBColor(0x10, 0x18, 0x28)).Foreground(tcell.ColorWhite)
	panelTitle     = panelStyle.Bold(true)
	panelHighlight = panelStyle.Foreground(tcell.NewRGBColor(0xff, 0xd7, 0x40)).Bold(true)
	panelFooter    = panelStyle.Foreground(tcell.NewRGBColor(0xa0, 0xa8, 0xb8))
)

// keyHint 终端里没有鼠标时用回车代替点击
const keyHint = "Enter = click   Esc = quit"

// Panel 终端版的开始、暂停和结束界面，实现 game.Presenter
type Panel struct {
	hallOfFame *game.HallOfFame // 可为 nil

	visible bool
	kind    game.ScreenKind
	result  game.Result
	// dirty 内容变化后需要重画
	dirty bool
}

var _ game.Presenter = (*Panel)(nil)

// NewPanel 创建界面面板
func NewPanel(hallOfFame *game.HallOfFame) *Panel {
	return &Panel{hallOfFame: hallOfFame, result: game.Result{Rank: -1}}
}

// ShowScreen 显示界面
func (p *Panel) ShowScreen(kind game.ScreenKind, result game.Result) {
	p.visible = true
	p.kind = kind
	p.result = result
	p.dirty = true
}

// HideScreen 隐藏界面并结束名字编辑
func (p *Panel) HideScreen() {
	p.visible = false
	p.dirty = true
	if p.hallOfFame != nil {
		p.hallOfFame.StopEditing()
	}
}

// Visible 是否正在显示
func (p *Panel) Visible() bool {
	return p.visible
}

// Kind 当前界面类型
func (p *Panel) Kind() game.ScreenKind {
	return p.kind
}

// Editing 是否正在编辑排行榜名字
func (p *Panel) Editing() bool {
	return p.visible && p.kind == game.ScreenGameOver &&
		p.hallOfFame != nil && p.hallOfFame.EditingIndex() >= 0
}

// HandleTyping 编辑名字时消费输入，返回是否消费
func (p *Panel) HandleTyping(chars []rune, backspace bool) bool {
	if !p.Editing() || (len(chars) == 0 && !backspace) {
		return false
	}
	if p.hallOfFame.Type(chars, backspace) {
		p.dirty = true
	}
	return true
}

// Content 当前界面的文字内容
func (p *Panel) Content() game.ScreenContent {
	var board []game.HallOfFameEntry
	editing := -1
	if p.hallOfFame != nil {
		board = p.hallOfFame.Entries()
		editing = p.hallOfFame.EditingIndex()
	}
	return game.BuildScreen(p.kind, p.result, board, editing)
}

// Draw 在画布中央画出面板
func (p *Panel) Draw(canvas Canvas) {
	p.dirty = false
	if !p.visible {
		return
	}

	c := p.Content()
	lines := make([]string, 0, len(c.Lines)+6)
	styles := make([]tcell.Style, 0, cap(lines))
	add := func(s string, style tcell.Style) {
		lines = append(lines, s)
		styles = append(styles, style)
	}

	add(c.Title, panelTitle)
	add("", panelStyle)
	for i, line := range c.Lines {
		if i == c.Highlight {
			add(line, panelHighlight)
		} else {
			add(line, panelStyle)
		}
	}
	add("", panelStyle)
	add(c.Footer, panelFooter)
	add(keyHint, panelFooter)

	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	width += 4
	height := len(lines) + 2

	cols, rows := canvas.Size()
	left := (cols - width) / 2
	top := (rows - height) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			putCell(canvas, left+x, top+y, ' ', panelStyle)
		}
	}
	for i, line := range lines {
		runes := []rune(line)
		x := left + (width-len(runes))/2
		for j, ch := range runes {
			putCell(canvas, x+j, top+1+i, ch, styles[i])
		}
	}
}

// Dirty 内容是否在上次 Draw 之后变化过
func (p *Panel) Dirty() bool {
	return p.dirty
}

func putCell(canvas Canvas, x, y int, ch rune, style tcell.Style) {
	cols, rows := canvas.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	canvas.SetContent(x, y, ch, nil, style)
}
