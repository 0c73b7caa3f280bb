package components

import (
	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/ink"
	"github.com/go-gl/mathgl/mgl64"
)

// BallComponent 小球
//
// 小球在关卡加载时创建，重置时回到 Start 并恢复外观。
// Completed 标记一旦置位，本轮尝试中不会再清除。
type BallComponent struct {
	ID        int        // 小球ID，从1开始
	Color     ink.Color  // 起始颜色，特效沿用该颜色
	Start     mgl64.Vec2 // 场景空间起点
	Radius    float64
	LineWidth float64
	Alpha     float64

	Body *physics.Body

	Completed bool // 已到达终点
	Dead      bool // 已被危险物销毁（淡出中或已淡出）
}

// Active 小球是否还在参与模拟
func (b *BallComponent) Active() bool {
	return !b.Completed && !b.Dead
}
