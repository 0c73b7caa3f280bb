package components

import (
	"github.com/decker502/penball/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// TweenComponent 位置补间动画
// 动画期间实体的物理体被冻结，由 TweenSystem 直接驱动位置
type TweenComponent struct {
	From, To mgl64.Vec2
	Duration float64
	Elapsed  float64
	Easing   utils.EasingFunc // nil 时按线性处理
	Done     bool
}
