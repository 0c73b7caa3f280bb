package ink

import (
	"image/color"
	"testing"
)

func TestStrokeBounds(t *testing.T) {
	s := Stroke{
		Ink:    Ink{Width: 4},
		Points: []Point{{X: 10, Y: 20}, {X: 30, Y: 5}, {X: 15, Y: 40}},
	}
	got := s.Bounds()
	want := Rect{MinX: 8, MinY: 3, MaxX: 32, MaxY: 42}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if !(Stroke{}).Bounds().IsEmpty() {
		t.Error("empty stroke should have empty bounds")
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}
	if r.MidX() != 5 || r.MidY() != 10 || r.Width() != 10 || r.Height() != 20 {
		t.Errorf("unexpected geometry for %+v", r)
	}
	if !r.Intersects(Rect{MinX: 10, MinY: 20, MaxX: 30, MaxY: 30}) {
		t.Error("touching rects should intersect")
	}
	if r.Intersects(Rect{MinX: 11, MinY: 0, MaxX: 12, MaxY: 1}) {
		t.Error("disjoint rects should not intersect")
	}
	if !r.Contains(5, 5) || r.Contains(-1, 5) {
		t.Error("Contains mismatch")
	}
}

func TestDrawingByIDAndWithout(t *testing.T) {
	d := Drawing{Strokes: []Stroke{{ID: 1}, {ID: 2}, {ID: 1}}}

	grouped := d.ByID()
	if len(grouped) != 2 || len(grouped[1]) != 2 {
		t.Fatalf("unexpected grouping: %v", grouped)
	}

	rest := d.Without(1)
	if len(rest.Strokes) != 1 || rest.Strokes[0].ID != 2 {
		t.Errorf("Without(1) = %+v", rest.Strokes)
	}
	if len(d.Strokes) != 3 {
		t.Error("Without should not modify the receiver")
	}
}

func TestColorRGBA(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: -1}.RGBA()
	want := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
