package app

import (
	"math"

	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
)

// 笔迹采样参数
const (
	minPointDistance = 2.0 // 与上一个控制点距离小于该值的采样被忽略
	eraserRadius     = 12.0
)

// Pen 把指针输入整理成绘图
//
// 坐标为绘图空间（与屏幕一致，Y 轴向下）。笔画ID是按下时的时间戳（秒），
// 同一时刻的多次按下会被错开，保证ID唯一。
type Pen struct {
	ink     ink.Ink
	strokes []ink.Stroke
	active  *ink.Stroke
	started float64
	lastID  ink.StrokeID
}

// NewPen 创建画笔
func NewPen(in ink.Ink) *Pen {
	return &Pen{ink: in}
}

// Drawing 返回已完成的笔画
func (p *Pen) Drawing() ink.Drawing {
	return ink.Drawing{Strokes: append([]ink.Stroke(nil), p.strokes...)}
}

// Active 正在绘制的笔画，未按下时为 nil
func (p *Pen) Active() *ink.Stroke {
	return p.active
}

// Begin 按下画笔
func (p *Pen) Begin(x, y, now float64) {
	id := ink.StrokeID(now)
	if id <= p.lastID {
		id = p.lastID + 1e-6
	}
	p.lastID = id
	p.started = now
	p.active = &ink.Stroke{
		ID:       id,
		Ink:      p.ink,
		Points:   []ink.Point{{X: x, Y: y}},
		Category: types.ObjectUserDrawn,
	}
}

// Move 移动画笔，未按下时忽略
func (p *Pen) Move(x, y, now float64) {
	if p.active == nil {
		return
	}
	last := p.active.Points[len(p.active.Points)-1]
	if math.Hypot(x-last.X, y-last.Y) < minPointDistance {
		return
	}
	p.active.Points = append(p.active.Points, ink.Point{X: x, Y: y, T: now - p.started})
}

// End 抬起画笔
// 返回：是否产生了新笔画
func (p *Pen) End() bool {
	if p.active == nil {
		return false
	}
	p.strokes = append(p.strokes, *p.active)
	p.active = nil
	return true
}

// EraseAt 擦除经过该点附近的笔画
// 返回：是否有笔画被擦除
func (p *Pen) EraseAt(x, y float64) bool {
	kept := p.strokes[:0]
	erased := false
	for _, s := range p.strokes {
		if strokeNear(s, x, y, eraserRadius+s.Ink.Width/2) {
			erased = true
			continue
		}
		kept = append(kept, s)
	}
	p.strokes = kept
	return erased
}

// Clear 清除所有笔画
func (p *Pen) Clear() bool {
	had := len(p.strokes) > 0 || p.active != nil
	p.strokes = nil
	p.active = nil
	return had
}

// Len 已完成的笔画数
func (p *Pen) Len() int {
	return len(p.strokes)
}

func strokeNear(s ink.Stroke, x, y, r float64) bool {
	if len(s.Points) == 1 {
		return math.Hypot(x-s.Points[0].X, y-s.Points[0].Y) <= r
	}
	for i := 1; i < len(s.Points); i++ {
		if distToSegment(x, y, s.Points[i-1], s.Points[i]) <= r {
			return true
		}
	}
	return false
}

func distToSegment(x, y float64, a, b ink.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
