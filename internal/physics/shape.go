package physics

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB 轴对齐包围盒
type AABB struct {
	Min, Max mgl64.Vec2
}

// Overlaps 判断两个包围盒是否重叠
func (a AABB) Overlaps(b AABB) bool {
	return a.Max[0] >= b.Min[0] && a.Min[0] <= b.Max[0] &&
		a.Max[1] >= b.Min[1] && a.Min[1] <= b.Max[1]
}

// Shape 碰撞形状，位置由所属的 Body 决定（形状中心即 Body 位置）
type Shape interface {
	Bounds(position mgl64.Vec2) AABB
}

// CircleShape 圆形
type CircleShape struct {
	Radius float64
}

// Bounds 实现 Shape
func (c *CircleShape) Bounds(p mgl64.Vec2) AABB {
	r := mgl64.Vec2{c.Radius, c.Radius}
	return AABB{Min: p.Sub(r), Max: p.Add(r)}
}

// MaskShape 由透明度遮罩生成的静态形状。
// 每个像素对应一个边长为 cell 的方格，第 0 行位于形状顶部（场景空间 Y 轴向上）。
type MaskShape struct {
	cols, rows int
	cell       float64
	solid      []bool
	count      int
}

// NewMaskShape 按透明度阈值把 Alpha 图像转换为实心格子
//
// 参数：
//   - alpha: 光栅化结果，第 0 行是图像顶部
//   - threshold: 透明度阈值（0.0 ~ 1.0），不小于阈值的像素为实心
//   - cell: 每个像素在场景中的边长
func NewMaskShape(alpha *image.Alpha, threshold float64, cell float64) *MaskShape {
	b := alpha.Bounds()
	m := &MaskShape{
		cols:  b.Dx(),
		rows:  b.Dy(),
		cell:  cell,
		solid: make([]bool, b.Dx()*b.Dy()),
	}
	limit := uint8(math.Ceil(math.Min(math.Max(threshold, 0), 1) * 255))
	if limit == 0 {
		limit = 1
	}
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			if alpha.AlphaAt(b.Min.X+col, b.Min.Y+row).A >= limit {
				m.solid[row*m.cols+col] = true
				m.count++
			}
		}
	}
	return m
}

// Size 形状在场景中的宽高
func (m *MaskShape) Size() (w, h float64) {
	return float64(m.cols) * m.cell, float64(m.rows) * m.cell
}

// SolidCount 实心格子数量，为 0 表示完全透明
func (m *MaskShape) SolidCount() int {
	return m.count
}

// IsSolid 判断格子是否实心，越界返回 false
func (m *MaskShape) IsSolid(col, row int) bool {
	if col < 0 || row < 0 || col >= m.cols || row >= m.rows {
		return false
	}
	return m.solid[row*m.cols+col]
}

// Bounds 实现 Shape
func (m *MaskShape) Bounds(p mgl64.Vec2) AABB {
	w, h := m.Size()
	half := mgl64.Vec2{w / 2, h / 2}
	return AABB{Min: p.Sub(half), Max: p.Add(half)}
}
