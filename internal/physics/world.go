// Package physics 是关卡专用的二维物理模拟。
//
// 只支持游戏需要的两种形状：动态圆形（小球）和静态遮罩形状（笔画、终点、危险物等）。
// 接触事件在 Step 返回前统一派发，监听者可以在回调中安全地修改世界。
package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// restingSpeed 低于该法向速度时不再反弹，避免静止物体抖动
const restingSpeed = 30.0

// Contact 接触事件，A 的编号总是小于 B
type Contact struct {
	A, B *Body
}

// ContactListener 接收开始接触事件
type ContactListener interface {
	BeginContact(c Contact)
}

type pairKey struct {
	lo, hi uint64
}

func keyOf(a, b *Body) pairKey {
	if a.id < b.id {
		return pairKey{a.id, b.id}
	}
	return pairKey{b.id, a.id}
}

// World 物理世界
// 只能在模拟线程中使用，不做并发保护
type World struct {
	Gravity  mgl64.Vec2
	SubSteps int

	bodies   []*Body
	nextID   uint64
	touching map[pairKey]struct{}
	listener ContactListener
}

// NewWorld 创建物理世界
//
// 参数：
//   - gravity: 重力加速度（场景空间，Y 轴向上）
//   - subSteps: 每次 Step 的子步数，小于 1 时按 1 处理
func NewWorld(gravity mgl64.Vec2, subSteps int) *World {
	return &World{
		Gravity:  gravity,
		SubSteps: subSteps,
		nextID:   1,
		touching: make(map[pairKey]struct{}),
	}
}

// SetContactListener 设置接触监听者，传 nil 取消
func (w *World) SetContactListener(l ContactListener) {
	w.listener = l
}

// AddBody 把物体加入世界并分配编号
func (w *World) AddBody(b *Body) *Body {
	if b.world == w {
		return b
	}
	b.id = w.nextID
	w.nextID++
	b.world = w
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody 从世界中移除物体，之后不再参与碰撞检测
func (w *World) RemoveBody(b *Body) {
	if b == nil || b.world != w {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.lo == b.id || k.hi == b.id {
			delete(w.touching, k)
		}
	}
	b.world = nil
}

// Bodies 返回当前所有物体的副本
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len 物体数量
func (w *World) Len() int {
	return len(w.bodies)
}

// Step 推进模拟 dt 秒
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	n := w.SubSteps
	if n < 1 {
		n = 1
	}
	h := dt / float64(n)

	overlapping := make(map[pairKey]Contact)
	for i := 0; i < n; i++ {
		w.integrate(h)
		w.solve(overlapping)
	}

	began := make([]pairKey, 0)
	for k := range overlapping {
		if _, ok := w.touching[k]; !ok {
			began = append(began, k)
		}
	}
	w.touching = make(map[pairKey]struct{}, len(overlapping))
	for k := range overlapping {
		w.touching[k] = struct{}{}
	}

	if w.listener == nil {
		return
	}
	sort.Slice(began, func(i, j int) bool {
		if began[i].lo != began[j].lo {
			return began[i].lo < began[j].lo
		}
		return began[i].hi < began[j].hi
	})
	for _, k := range began {
		c := overlapping[k]
		// 前面的回调可能已经移除了其中一个物体
		if c.A.world != w || c.B.world != w {
			continue
		}
		w.listener.BeginContact(c)
	}
}

func (w *World) integrate(h float64) {
	for _, b := range w.bodies {
		if !b.Dynamic {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(h))
		b.Position = b.Position.Add(b.Velocity.Mul(h))
	}
}

func (w *World) solve(overlapping map[pairKey]Contact) {
	for _, a := range w.bodies {
		if !a.Dynamic {
			continue
		}
		if _, ok := a.circle(); !ok {
			continue
		}
		for _, b := range w.bodies {
			if a == b {
				continue
			}
			// 两个动态圆只处理一次
			if _, isCircle := b.circle(); isCircle && b.Dynamic && b.id < a.id {
				continue
			}

			m, ok := collide(a, b)
			if !ok {
				continue
			}
			if contactTested(a, b) {
				k := keyOf(a, b)
				if a.id < b.id {
					overlapping[k] = Contact{A: a, B: b}
				} else {
					overlapping[k] = Contact{A: b, B: a}
				}
			}
			resolve(a, b, m)
		}
	}
}

// resolve 位置修正加速度冲量，法线从 b 指向 a
func resolve(a, b *Body, m manifold) {
	aResponds := a.collides(b)
	bResponds := b.collides(a)

	switch {
	case aResponds && bResponds:
		half := m.Normal.Mul(m.Depth / 2)
		a.Position = a.Position.Add(half)
		b.Position = b.Position.Sub(half)

		vn := a.Velocity.Sub(b.Velocity).Dot(m.Normal)
		if vn < 0 {
			e := math.Min(a.Restitution, b.Restitution)
			j := -(1 + e) * vn / 2
			a.Velocity = a.Velocity.Add(m.Normal.Mul(j))
			b.Velocity = b.Velocity.Sub(m.Normal.Mul(j))
		}
	case aResponds:
		bounce(a, m.Normal, m.Depth, b.Friction)
	case bResponds:
		bounce(b, m.Normal.Mul(-1), m.Depth, a.Friction)
	}
}

func bounce(body *Body, n mgl64.Vec2, depth, surfaceFriction float64) {
	body.Position = body.Position.Add(n.Mul(depth))

	vn := body.Velocity.Dot(n)
	if vn >= 0 {
		return
	}
	normal := n.Mul(vn)
	tangent := body.Velocity.Sub(normal)

	mu := math.Sqrt(math.Max(body.Friction, 0) * math.Max(surfaceFriction, 0))
	tangent = tangent.Mul(math.Max(0, 1-mu))

	e := body.Restitution
	if -vn < restingSpeed {
		e = 0
	}
	body.Velocity = tangent.Sub(normal.Mul(e))
}
