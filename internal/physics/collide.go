package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// manifold 碰撞信息，Normal 从 b 指向 a
type manifold struct {
	Normal mgl64.Vec2
	Depth  float64
}

var up = mgl64.Vec2{0, 1}

// collide 检测圆形 a 与 b 的重叠
func collide(a, b *Body) (manifold, bool) {
	ca, ok := a.circle()
	if !ok {
		return manifold{}, false
	}
	if !a.Bounds().Overlaps(b.Bounds()) {
		return manifold{}, false
	}

	switch shape := b.Shape.(type) {
	case *CircleShape:
		return circleCircle(a.Position, ca.Radius, b.Position, shape.Radius)
	case *MaskShape:
		return circleMask(a.Position, ca.Radius, b.Position, shape)
	default:
		return manifold{}, false
	}
}

func circleCircle(pa mgl64.Vec2, ra float64, pb mgl64.Vec2, rb float64) (manifold, bool) {
	d := pa.Sub(pb)
	dist := d.Len()
	r := ra + rb
	if dist >= r {
		return manifold{}, false
	}
	if dist < 1e-9 {
		return manifold{Normal: up, Depth: r}, true
	}
	return manifold{Normal: d.Mul(1 / dist), Depth: r - dist}, true
}

// circleMask 圆与遮罩形状的重叠检测
// 法线取各重叠格子法线按穿透深度加权的平均值，深度取最大穿透深度
func circleMask(center mgl64.Vec2, radius float64, pos mgl64.Vec2, m *MaskShape) (manifold, bool) {
	if m.count == 0 {
		return manifold{}, false
	}
	w, h := m.Size()
	halfW, halfH := w/2, h/2
	lx := center[0] - pos[0]
	ly := center[1] - pos[1]

	c0 := clampInt(int(math.Floor((lx-radius+halfW)/m.cell)), 0, m.cols-1)
	c1 := clampInt(int(math.Floor((lx+radius+halfW)/m.cell)), 0, m.cols-1)
	r0 := clampInt(int(math.Floor((halfH-(ly+radius))/m.cell)), 0, m.rows-1)
	r1 := clampInt(int(math.Floor((halfH-(ly-radius))/m.cell)), 0, m.rows-1)

	var acc mgl64.Vec2
	maxDepth := 0.0
	hit := false
	r2 := radius * radius

	for row := r0; row <= r1; row++ {
		y1 := halfH - float64(row)*m.cell
		y0 := y1 - m.cell
		for col := c0; col <= c1; col++ {
			if !m.IsSolid(col, row) {
				continue
			}
			x0 := -halfW + float64(col)*m.cell
			x1 := x0 + m.cell

			dx := lx - clamp(lx, x0, x1)
			dy := ly - clamp(ly, y0, y1)
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}

			var n mgl64.Vec2
			var depth float64
			if d2 > 1e-18 {
				dist := math.Sqrt(d2)
				n = mgl64.Vec2{dx / dist, dy / dist}
				depth = radius - dist
			} else {
				// 圆心落在格子内部
				n = mgl64.Vec2{lx - (x0+x1)/2, ly - (y0+y1)/2}
				if n.Len() < 1e-9 {
					n = up
				} else {
					n = n.Normalize()
				}
				depth = radius
			}

			acc = acc.Add(n.Mul(depth))
			if depth > maxDepth {
				maxDepth = depth
			}
			hit = true
		}
	}

	if !hit {
		return manifold{}, false
	}
	if acc.Len() < 1e-9 {
		return manifold{Normal: up, Depth: maxDepth}, true
	}
	return manifold{Normal: acc.Normalize(), Depth: maxDepth}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
