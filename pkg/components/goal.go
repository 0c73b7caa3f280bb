package components

import (
	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/ink"
	"github.com/go-gl/mathgl/mgl64"
)

// GoalComponent 终点，只接收 BallID 对应的小球
type GoalComponent struct {
	BallID   int
	Position mgl64.Vec2
	Color    ink.Color
	Radius   float64
	Body     *physics.Body
}
