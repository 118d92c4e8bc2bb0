package types

// Direction 雪球的水平移动方向
type Direction int

const (
	// DirectionRight 向右（初始方向）
	DirectionRight Direction = iota
	// DirectionLeft 向左
	DirectionLeft
)

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	if d == DirectionRight {
		return DirectionLeft
	}
	return DirectionRight
}

// Sign 返回方向对应的 X 轴符号（右 +1，左 -1）
func (d Direction) Sign() float64 {
	if d == DirectionLeft {
		return -1
	}
	return 1
}

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "LEFT"
	default:
		return "RIGHT"
	}
}
