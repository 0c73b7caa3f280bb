package components

import (
	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
)

// StrokeBodyComponent 由笔画分段生成的静态碰撞体
// 一条笔画可以对应多个实体（每个分段一个）
type StrokeBodyComponent struct {
	StrokeID  ink.StrokeID
	Category  types.ObjectType
	Bounds    ink.Rect // 绘图空间包围盒
	Body      *physics.Body
	Preloaded bool // 来自关卡定义，不参与绘图差异计算
}
