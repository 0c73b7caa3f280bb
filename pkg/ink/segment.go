package ink

import "math"

// Segment 在小球所在的 Y 坐标处切分笔画。
//
// 物理引擎无法从带孔洞的遮罩构造碰撞形状（例如笔画绕成一圈把小球围住），
// 在小球高度处切开可以保证任何一段的轮廓都无法在该高度完整包围小球。
//
// 遍历相邻控制点对，若某个切分高度落在这一对点的闭区间内，就在后一个点处切开；
// 切点同时属于前后两段。每一段都沿用原笔画的墨水和标识。
//
// 参数：
//   - stroke: 待切分的笔画（绘图空间坐标）
//   - splitY: 切分高度（绘图空间）
//
// 返回：
//   - []Stroke: 非空的有序分段；空笔画返回 nil
func Segment(stroke Stroke, splitY []float64) []Stroke {
	n := len(stroke.Points)
	if n == 0 {
		return nil
	}

	segments := make([]Stroke, 0, 1)
	last := 0
	for i := 1; i < n; i++ {
		a := stroke.Points[i-1].Y
		b := stroke.Points[i].Y
		if crossesAny(math.Min(a, b), math.Max(a, b), splitY) {
			segments = append(segments, stroke.slice(last, i+1))
			last = i
		}
	}

	if n == 1 || last != n-1 {
		segments = append(segments, stroke.slice(last, n))
	}
	return segments
}

// SegmentAll 依次切分多条笔画
func SegmentAll(strokes []Stroke, splitY []float64) []Stroke {
	var out []Stroke
	for _, s := range strokes {
		out = append(out, Segment(s, splitY)...)
	}
	return out
}

func crossesAny(lo, hi float64, splitY []float64) bool {
	for _, y := range splitY {
		if y >= lo && y <= hi {
			return true
		}
	}
	return false
}

// slice 复制 [from, to) 区间的控制点，避免分段之间共享底层数组
func (s Stroke) slice(from, to int) Stroke {
	points := make([]Point, to-from)
	copy(points, s.Points[from:to])
	return Stroke{
		ID:       s.ID,
		Ink:      s.Ink,
		Points:   points,
		Category: s.Category,
	}
}
