package components

import "github.com/go-gl/mathgl/mgl64"

// PositionComponent 实体在场景空间中的位置（Y 轴向上）
type PositionComponent struct {
	Pos mgl64.Vec2
}
