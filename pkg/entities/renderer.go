// Package entities 实现游戏中的各个实体：雪球、雪痕、树、雪崩和 HUD
//
// 实体是由 Session 独占持有的普通结构体，每帧按固定顺序更新。
// 绘制通过 Renderer 接口完成，具体实现由前端提供（Ebitengine、终端或空实现）。
package entities

import (
	"image/color"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/types"
)

// Renderer 绘制接口
//
// 所有坐标都是逻辑屏幕像素（见 config.ScreenConfig）。
// 精灵图片缺失时实现应当静默跳过（或画占位图），不能返回错误。
type Renderer interface {
	// Clear 清空帧缓冲
	Clear()
	// DrawSprite 把精灵表中的 src 区域绘制到 dst
	DrawSprite(sheet config.SpriteSheet, src, dst types.Hitbox)
	// DrawLine 绘制圆头线段
	DrawLine(x0, y0, x1, y1, width float64, clr color.Color)
	// FillRect 填充矩形
	FillRect(r types.Hitbox, clr color.Color)
	// StrokeRect 描边矩形
	StrokeRect(r types.Hitbox, width float64, clr color.Color)
	// DrawText 绘制文字，y 为基线位置
	DrawText(s string, x, y, size float64, clr color.Color)
	// MeasureText 返回文字宽度
	MeasureText(s string, size float64) float64
}

// 常用颜色
var (
	ColorBlack   = color.RGBA{A: 0xff}
	ColorWhite   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorRed     = color.RGBA{R: 0xff, A: 0xff}
	ColorGreen   = color.RGBA{G: 0x80, A: 0xff}
	ColorDebug   = color.RGBA{R: 0xff, A: 0xff}
	ColorBarrier = color.RGBA{R: 0xff, A: 0xff}
)
