// Package components 定义实体持有的可复用部件
package components

import (
	"fmt"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// AnimationState 动画序列的状态
type AnimationState int

const (
	// AnimationPlaying 序列正在播放（或循环中）
	AnimationPlaying AnimationState = iota
	// AnimationFinished 序列已经发出完成事件，停在结束帧
	AnimationFinished
)

// String 返回状态名
func (s AnimationState) String() string {
	if s == AnimationFinished {
		return "Finished"
	}
	return "Playing"
}

// SpriteAnimator 基于时间戳的单行精灵表帧动画
//
// 由持有者在每个渲染帧调用一次 Advance：
//   - 先报告当前帧（无论是否推进）
//   - 未暂停且 timestamp - LastFrameTimestamp > FrameDelay 时推进一步：
//     CurrentFrame < EndFrame 则前进一帧；
//     到达 EndFrame 且请求了完成通知，则返回 finished=true 一次并进入 AnimationFinished；
//     否则如果循环，回到 StartFrame。
//     无论走哪个分支都更新 LastFrameTimestamp。
//
// 完成通知优先于循环：发出完成事件后停在 EndFrame，直到下一次 Play。
type SpriteAnimator struct {
	Sheet config.SpriteSheet
	Loop  bool

	CurrentFrame       int
	StartFrame         int
	EndFrame           int
	Paused             bool
	LastFrameTimestamp float64
	State              AnimationState

	// notifyFinish 是否在到达 EndFrame 时发出一次完成事件
	notifyFinish bool
}

// NewSpriteAnimator 创建动画器
// 初始状态为暂停在第 0 帧，播放范围为整张精灵表
func NewSpriteAnimator(sheet config.SpriteSheet, loop bool) *SpriteAnimator {
	return &SpriteAnimator{
		Sheet:    sheet,
		Loop:     loop,
		EndFrame: sheet.FrameCount() - 1,
		Paused:   true,
	}
}

// FrameCount 帧数
func (a *SpriteAnimator) FrameCount() int {
	return a.Sheet.FrameCount()
}

// Play 从 start 播放到 end 并取消暂停
// notifyFinish 为 true 时，到达 end 后的下一次推进会从 Advance 返回 finished=true（仅一次）。
// 越界的帧号被钳制到 [0, FrameCount-1]。
func (a *SpriteAnimator) Play(start, end int, notifyFinish bool) {
	start = a.clampFrame(start)
	end = a.clampFrame(end)
	if end < start {
		end = start
	}

	a.Paused = false
	a.StartFrame = start
	a.CurrentFrame = start
	a.EndFrame = end
	a.notifyFinish = notifyFinish
	a.State = AnimationPlaying
}

// Pause 冻结在指定帧
func (a *SpriteAnimator) Pause(frame int) {
	a.Paused = true
	a.CurrentFrame = a.clampFrame(frame)
}

// Advance 报告本帧要绘制的帧号，并按时间门限推进动画
//
// 返回：
//   - frame: 本次应绘制的帧（推进之前的 CurrentFrame）
//   - finished: 本次推进是否触发了完成事件
func (a *SpriteAnimator) Advance(timestamp float64) (frame int, finished bool) {
	frame = a.CurrentFrame

	if a.Paused || timestamp-a.LastFrameTimestamp <= a.Sheet.FrameDelay {
		return frame, false
	}

	switch {
	case a.CurrentFrame < a.EndFrame:
		a.CurrentFrame++
	case a.State == AnimationFinished:
		// 已完成：停在结束帧，不再循环
	case a.notifyFinish:
		a.notifyFinish = false
		a.State = AnimationFinished
		finished = true
	case a.Loop:
		a.CurrentFrame = a.StartFrame
	}

	a.LastFrameTimestamp = timestamp
	return frame, finished
}

// SourceRect 返回当前帧在精灵表中的源矩形
func (a *SpriteAnimator) SourceRect() types.Hitbox {
	return a.FrameRect(a.CurrentFrame)
}

// FrameRect 返回指定帧在精灵表中的源矩形
func (a *SpriteAnimator) FrameRect(frame int) types.Hitbox {
	fw := float64(a.Sheet.FrameWidth)
	return types.Hitbox{
		X:      float64(a.clampFrame(frame)) * fw,
		Y:      0,
		Width:  fw,
		Height: float64(a.Sheet.Height),
	}
}

// DebugInfo 调试信息：精灵表、帧号、延迟和状态
func (a *SpriteAnimator) DebugInfo() string {
	s := fmt.Sprintf("%s (%d/%d) delay: %.2f", a.Sheet.ID, a.CurrentFrame+1, a.FrameCount(), a.Sheet.FrameDelay)
	if a.Loop {
		s += " (loop)"
	}
	if a.Paused {
		s += " (paused)"
	}
	return s
}

func (a *SpriteAnimator) clampFrame(frame int) int {
	if frame < 0 {
		return 0
	}
	if last := a.FrameCount() - 1; frame > last {
		return last
	}
	return frame
}
