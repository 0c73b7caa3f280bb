package ink

import (
	"math"
	"math/rand"
	"testing"
)

func strokeWithY(ys ...float64) Stroke {
	points := make([]Point, len(ys))
	for i, y := range ys {
		points[i] = Point{X: float64(i * 10), Y: y}
	}
	return Stroke{ID: 1618000000.25, Ink: Ink{Width: 5}, Points: points}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name   string
		ys     []float64
		splitY []float64
		want   [][2]int // 每段在原笔画中的 [起点, 终点) 下标
	}{
		{"empty stroke", nil, []float64{5}, nil},
		{"single point", []float64{10}, []float64{10}, [][2]int{{0, 1}}},
		{"entirely above", []float64{0, 1, 2, 3}, []float64{50}, [][2]int{{0, 4}}},
		{"entirely below", []float64{100, 90, 80}, []float64{50}, [][2]int{{0, 3}}},
		{"no split levels", []float64{0, 100}, nil, [][2]int{{0, 2}}},
		{"one crossing", []float64{0, 10, 20, 30}, []float64{15}, [][2]int{{0, 3}, {2, 4}}},
		{"crossing on last pair", []float64{0, 10, 20}, []float64{15}, [][2]int{{0, 3}}},
		{"two crossings", []float64{0, 10, 20, 30, 40}, []float64{5, 25}, [][2]int{{0, 2}, {1, 4}, {3, 5}}},
		{"loop back", []float64{0, 20, 0}, []float64{10}, [][2]int{{0, 2}, {1, 3}}},
		{"point on split", []float64{0, 10, 20}, []float64{10}, [][2]int{{0, 2}, {1, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stroke := strokeWithY(tt.ys...)
			got := Segment(stroke, tt.splitY)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				expected := stroke.Points[w[0]:w[1]]
				if len(got[i].Points) != len(expected) {
					t.Fatalf("segment %d: got %d points, want %d", i, len(got[i].Points), len(expected))
				}
				for j := range expected {
					if got[i].Points[j] != expected[j] {
						t.Errorf("segment %d point %d: got %+v, want %+v", i, j, got[i].Points[j], expected[j])
					}
				}
				if got[i].ID != stroke.ID || got[i].Ink != stroke.Ink {
					t.Errorf("segment %d lost identity or ink", i)
				}
			}
		})
	}
}

func TestSegmentDoesNotAliasInput(t *testing.T) {
	stroke := strokeWithY(0, 10, 20, 30)
	segs := Segment(stroke, []float64{15})
	segs[0].Points[0].X = 999

	if stroke.Points[0].X == 999 {
		t.Error("segment should own a copy of its points")
	}
}

// TestSegmentSoundness 随机笔画：除了切点本身，任何一段都不会跨越切分高度
func TestSegmentSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(40)
		ys := make([]float64, n)
		for i := range ys {
			ys[i] = math.Round(rng.Float64()*200) / 2
		}
		splits := make([]float64, rng.Intn(4))
		for i := range splits {
			splits[i] = math.Round(rng.Float64()*200) / 2
		}

		stroke := strokeWithY(ys...)
		segments := Segment(stroke, splits)
		if len(segments) == 0 {
			t.Fatalf("iter %d: no segments for %d points", iter, n)
		}

		total := 0
		for i, seg := range segments {
			if len(seg.Points) == 0 {
				t.Fatalf("iter %d: empty segment %d", iter, i)
			}
			total += len(seg.Points)

			// 段的末点可能是切点（恰好越过切分高度），不参与检查
			interior := seg.Points
			if len(interior) > 1 {
				interior = interior[:len(interior)-1]
			}
			lo, hi := interior[0].Y, interior[0].Y
			for _, p := range interior {
				lo = math.Min(lo, p.Y)
				hi = math.Max(hi, p.Y)
			}
			for _, y := range splits {
				if y > lo && y < hi {
					t.Fatalf("iter %d: segment %d spans split %.1f within [%.1f, %.1f]", iter, i, y, lo, hi)
				}
			}
		}

		// 相邻分段共享切点
		if want := n + len(segments) - 1; total != want {
			t.Fatalf("iter %d: got %d points across segments, want %d", iter, total, want)
		}
	}
}

func TestSegmentAll(t *testing.T) {
	a := strokeWithY(0, 10, 20, 30)
	b := strokeWithY(100, 110)
	got := SegmentAll([]Stroke{a, b}, []float64{15})
	if len(got) != 3 {
		t.Fatalf("got %d segments, want 3", len(got))
	}
}
