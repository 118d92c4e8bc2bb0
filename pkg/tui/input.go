package tui

import "github.com/gdamore/tcell/v2"

// Action 一个终端事件对应的操作
type Action int

const (
	ActionNone Action = iota
	// ActionQuit Esc / Ctrl-C 退出
	ActionQuit
	// ActionPrimary 回车或鼠标左键，相当于图形版的点击
	ActionPrimary
	// ActionKey 其他按键：转向，编辑名字时作为输入
	ActionKey
	// ActionToggleDebug F3
	ActionToggleDebug
	// ActionResize 终端尺寸变化
	ActionResize
)

// Input 解析后的终端事件
type Input struct {
	Action    Action
	Char      rune // ActionKey 的可打印字符，0 表示没有
	Backspace bool
}

// MapEvent 把 tcell 事件翻译成游戏操作
func MapEvent(ev tcell.Event) Input {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Input{Action: ActionResize}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			return Input{Action: ActionPrimary}
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Input{Action: ActionQuit}
		case tcell.KeyEnter:
			return Input{Action: ActionPrimary}
		case tcell.KeyF3:
			return Input{Action: ActionToggleDebug}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return Input{Action: ActionKey, Backspace: true}
		case tcell.KeyRune:
			return Input{Action: ActionKey, Char: ev.Rune()}
		default:
			return Input{Action: ActionKey}
		}
	}
	return Input{Action: ActionNone}
}
