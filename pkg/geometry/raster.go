package geometry

import (
	"image"
	"math"

	"github.com/decker502/penball/pkg/ink"
	"golang.org/x/image/vector"
)

// capSides 笔画端点圆帽的多边形边数
const capSides = 16

// Rasterize 把一段笔画光栅化为透明度图像
//
// 每对相邻控制点画一个四边形，每个控制点画一个圆帽。
// 所有多边形统一为同一绕向，重叠部分累加后饱和为不透明，不会互相抵消。
//
// 参数：
//   - seg: 笔画分段（绘图空间坐标）
//   - scale: 每单位长度对应的像素数
//
// 返回：
//   - *image.Alpha: 光栅化结果，第 0 行对应 bounds.MinY
//   - ink.Rect: 图像覆盖的绘图空间区域；无法光栅化时返回 nil 和空矩形
func Rasterize(seg ink.Stroke, scale float64) (*image.Alpha, ink.Rect) {
	bounds := seg.Bounds()
	if bounds.IsEmpty() || scale <= 0 || seg.Ink.Width <= 0 {
		return nil, ink.Rect{}
	}

	w := int(math.Ceil(bounds.Width() * scale))
	h := int(math.Ceil(bounds.Height() * scale))
	if w <= 0 || h <= 0 {
		return nil, ink.Rect{}
	}

	z := vector.NewRasterizer(w, h)
	radius := seg.Ink.Width / 2 * scale
	toPixel := func(p ink.Point) [2]float64 {
		return [2]float64{(p.X - bounds.MinX) * scale, (p.Y - bounds.MinY) * scale}
	}

	for i := 1; i < len(seg.Points); i++ {
		a := toPixel(seg.Points[i-1])
		b := toPixel(seg.Points[i])
		dx, dy := b[0]-a[0], b[1]-a[1]
		length := math.Hypot(dx, dy)
		if length < 1e-9 {
			continue
		}
		nx, ny := -dy/length*radius, dx/length*radius
		addPolygon(z, [][2]float64{
			{a[0] + nx, a[1] + ny},
			{b[0] + nx, b[1] + ny},
			{b[0] - nx, b[1] - ny},
			{a[0] - nx, a[1] - ny},
		})
	}
	for _, p := range seg.Points {
		c := toPixel(p)
		circle := make([][2]float64, capSides)
		for i := range circle {
			theta := 2 * math.Pi * float64(i) / capSides
			circle[i] = [2]float64{c[0] + radius*math.Cos(theta), c[1] + radius*math.Sin(theta)}
		}
		addPolygon(z, circle)
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	covered := ink.Rect{
		MinX: bounds.MinX,
		MinY: bounds.MinY,
		MaxX: bounds.MinX + float64(w)/scale,
		MaxY: bounds.MinY + float64(h)/scale,
	}
	return dst, covered
}

// addPolygon 以正的有向面积添加闭合多边形
func addPolygon(z *vector.Rasterizer, pts [][2]float64) {
	if len(pts) < 3 {
		return
	}
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		z.LineTo(float32(p[0]), float32(p[1]))
	}
	z.ClosePath()
}

func signedArea(pts [][2]float64) float64 {
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return area / 2
}
