package physics

import (
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// Body 刚体
//
// 类别语义与 SpriteKit 保持一致：
//   - Category: 本物体所属的类别
//   - CollisionMask: 哪些类别的物体会对本物体产生碰撞响应
//   - ContactTestMask: 与哪些类别的物体接触时产生接触事件
type Body struct {
	id    uint64
	world *World

	Shape    Shape
	Position mgl64.Vec2
	Velocity mgl64.Vec2

	// Dynamic 为 false 时不受重力影响，也不会被推开
	Dynamic bool

	Category        types.ObjectType
	CollisionMask   types.ObjectType
	ContactTestMask types.ObjectType

	Restitution float64
	Friction    float64

	// UserData 由使用方附加的数据（如实体ID）
	UserData any
}

// ID 返回物体在所属世界中的唯一编号，未加入世界时为 0
func (b *Body) ID() uint64 {
	return b.id
}

// InWorld 判断物体当前是否在某个世界中
func (b *Body) InWorld() bool {
	return b.world != nil
}

// Bounds 当前位置的包围盒
func (b *Body) Bounds() AABB {
	return b.Shape.Bounds(b.Position)
}

func (b *Body) circle() (*CircleShape, bool) {
	c, ok := b.Shape.(*CircleShape)
	return c, ok
}

// collides 判断 other 是否会对 b 产生碰撞响应
func (b *Body) collides(other *Body) bool {
	return b.Dynamic && b.CollisionMask.Intersects(other.Category)
}

func contactTested(a, b *Body) bool {
	return a.ContactTestMask.Intersects(b.Category) || b.ContactTestMask.Intersects(a.Category)
}
