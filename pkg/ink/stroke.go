// Package ink 描述笔迹数据：笔画、控制点和墨水样式。
//
// 坐标使用绘图空间（Y 轴向下），与场景空间（Y 轴向上）的换算由 game 包负责。
// 本包只读取笔画并派生几何数据，不持有任何可变的全局状态。
package ink

import (
	"image/color"
	"math"

	"github.com/decker502/penball/pkg/types"
)

// StrokeID 笔画的稳定标识（创建时间戳，单位秒）
// 笔画与其派生碰撞体之间通过该值关联
type StrokeID float64

// Point 笔画控制点
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	T float64 `yaml:"t,omitempty"` // 相对笔画创建时间的偏移（秒）
}

// Color RGB 颜色，分量范围 0.0 ~ 1.0
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

// RGBA 转换为不透明的 color.RGBA
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: 255,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ink 墨水样式
type Ink struct {
	Color Color   `yaml:"color"`
	Width float64 `yaml:"width"`
}

// Stroke 一次连续的笔输入
type Stroke struct {
	ID     StrokeID `yaml:"id"`
	Ink    Ink      `yaml:"ink"`
	Points []Point  `yaml:"points"`

	// Category 笔画对应的物体类别，空集合表示纯装饰笔画。
	// 运行时字段：关卡文件通过 strokeTypes 映射单独保存类别。
	Category types.ObjectType `yaml:"-"`
}

// Bounds 返回笔画的包围盒（包含墨水宽度的一半）
func (s Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}

	r := Rect{
		MinX: s.Points[0].X, MaxX: s.Points[0].X,
		MinY: s.Points[0].Y, MaxY: s.Points[0].Y,
	}
	for _, p := range s.Points[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r.Inset(-s.Ink.Width / 2)
}

// Drawing 有序的笔画列表
type Drawing struct {
	Strokes []Stroke `yaml:"strokes"`
}

// ByID 按笔画标识分组
// 同一标识可能对应多条笔画（例如被位图橡皮擦切开的笔画）
func (d Drawing) ByID() map[StrokeID][]Stroke {
	grouped := make(map[StrokeID][]Stroke, len(d.Strokes))
	for _, s := range d.Strokes {
		grouped[s.ID] = append(grouped[s.ID], s)
	}
	return grouped
}

// Without 返回去掉指定笔画后的新绘图，原绘图不变
func (d Drawing) Without(id StrokeID) Drawing {
	out := Drawing{Strokes: make([]Stroke, 0, len(d.Strokes))}
	for _, s := range d.Strokes {
		if s.ID != id {
			out.Strokes = append(out.Strokes, s)
		}
	}
	return out
}

// Bounds 所有笔画包围盒的并集
func (d Drawing) Bounds() Rect {
	var r Rect
	for i, s := range d.Strokes {
		if i == 0 {
			r = s.Bounds()
			continue
		}
		r = r.Union(s.Bounds())
	}
	return r
}
