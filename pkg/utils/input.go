// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 保留按键：不会被当作转向请求
var reservedKeys = map[ebiten.Key]bool{
	ebiten.KeyF3:  true, // 调试信息
	ebiten.KeyF11: true, // 全屏（由 App 处理）
}

// InputState 存储当前帧的输入状态
// 鼠标点击和触摸统一视为"主操作"
type InputState struct {
	// 是否有点击/触摸事件刚刚发生（开始/暂停/继续）
	PrimaryAction bool
	// 点击/触摸位置
	X, Y int
	// 是否有非保留按键刚刚按下（转向请求）
	DirectionRequested bool
	// 本帧输入的字符（用于名字编辑）
	Chars []rune
	// 退格键
	Backspace bool
	// F3 切换调试信息
	ToggleDebug bool
}

// PollInput 读取当前帧的输入状态
// 必须在 ebiten.Game.Update 中调用
func PollInput() InputState {
	state := InputState{}

	state.PrimaryAction, state.X, state.Y = IsJustTouchedOrClicked()

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		switch {
		case key == ebiten.KeyF3:
			state.ToggleDebug = true
		case key == ebiten.KeyBackspace:
			state.Backspace = true
			state.DirectionRequested = true
		case !reservedKeys[key]:
			state.DirectionRequested = true
		}
	}

	state.Chars = ebiten.AppendInputChars(nil)
	return state
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
