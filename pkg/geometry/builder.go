// Package geometry 把笔画分段转换为碰撞形状。
//
// 这里是唯一生成像素级几何数据的地方。Build 是纯函数，不访问任何共享状态，
// 可以在后台 goroutine 中调用。
package geometry

import (
	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/ink"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultAlphaThreshold 透明度阈值，不小于该值的像素视为实心
const DefaultAlphaThreshold = 0.5

// Options 光栅化参数
type Options struct {
	Scale          float64 // 每单位长度对应的像素数，<= 0 时按 1 处理
	AlphaThreshold float64 // 透明度阈值，<= 0 时使用 DefaultAlphaThreshold
}

func (o Options) normalized() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.AlphaThreshold <= 0 {
		o.AlphaThreshold = DefaultAlphaThreshold
	}
	return o
}

// BodyRecord 一段笔画对应的碰撞体记录
type BodyRecord struct {
	StrokeID ink.StrokeID
	Bounds   ink.Rect // 绘图空间中的包围盒
	Shape    *physics.MaskShape
}

// Build 为每个分段生成碰撞形状和包围盒
// 完全透明的分段会被跳过，不产生零尺寸的碰撞体
func Build(segments []ink.Stroke, opts Options) []BodyRecord {
	opts = opts.normalized()
	records := make([]BodyRecord, 0, len(segments))
	for _, seg := range segments {
		alpha, bounds := Rasterize(seg, opts.Scale)
		if alpha == nil {
			continue
		}
		shape := physics.NewMaskShape(alpha, opts.AlphaThreshold, 1/opts.Scale)
		if shape.SolidCount() == 0 {
			continue
		}
		records = append(records, BodyRecord{
			StrokeID: seg.ID,
			Bounds:   bounds,
			Shape:    shape,
		})
	}
	return records
}

// ScenePosition 把绘图空间包围盒中心映射到场景空间（Y 轴翻转）
//
// 参数：
//   - r: 绘图空间中的包围盒
//   - frame: 场景框架，MaxY 即场景高度
func ScenePosition(r ink.Rect, frame ink.Rect) mgl64.Vec2 {
	return mgl64.Vec2{frame.MinX + r.MidX(), frame.MaxY - r.MidY()}
}

// SceneY 绘图空间 Y 与场景空间 Y 互相转换（变换是自逆的）
func SceneY(y float64, frame ink.Rect) float64 {
	return frame.MaxY - y
}
