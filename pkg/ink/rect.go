package ink

import "math"

// Rect 轴对齐矩形
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width 宽度
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height 高度
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// MidX 中心 X
func (r Rect) MidX() float64 { return (r.MinX + r.MaxX) / 2 }

// MidY 中心 Y
func (r Rect) MidY() float64 { return (r.MinY + r.MaxY) / 2 }

// IsEmpty 宽或高不为正时视为空
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Inset 四边向内收缩 d（d 为负时向外扩展）
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX + d, MinY: r.MinY + d, MaxX: r.MaxX - d, MaxY: r.MaxY - d}
}

// Union 两个矩形的并集
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Intersects 判断两个矩形是否重叠（边界接触也算）
func (r Rect) Intersects(o Rect) bool {
	return r.MaxX >= o.MinX && r.MinX <= o.MaxX &&
		r.MaxY >= o.MinY && r.MinY <= o.MaxY
}

// Contains 判断点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}
