package game

import "testing"

func TestMergeBest(t *testing.T) {
	tests := []struct {
		name string
		old  *Score
		cur  Score
		want Score
	}{
		{"首次完成", nil, Score{Time: 12.5, Strokes: 3}, Score{Time: 12.5, Strokes: 3}},
		{"分别取最小", &Score{Time: 10, Strokes: 5}, Score{Time: 8, Strokes: 7}, Score{Time: 8, Strokes: 5}},
		{"全部更差", &Score{Time: 4, Strokes: 1}, Score{Time: 9, Strokes: 2}, Score{Time: 4, Strokes: 1}},
		{"全部更好", &Score{Time: 30, Strokes: 9}, Score{Time: 3, Strokes: 0}, Score{Time: 3, Strokes: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeBest(tt.old, tt.cur); got != tt.want {
				t.Errorf("MergeBest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsBestTiesCount(t *testing.T) {
	best := Score{Time: 10, Strokes: 3}
	if !(Score{Time: 10, Strokes: 3}).IsBestTime(best) {
		t.Error("Equal time should count as best")
	}
	if !(Score{Time: 10, Strokes: 3}).IsBestStrokes(best) {
		t.Error("Equal strokes should count as best")
	}
	if (Score{Time: 10.01}).IsBestTime(best) {
		t.Error("Slower time is not best")
	}
	if (Score{Strokes: 4}).IsBestStrokes(best) {
		t.Error("More strokes is not best")
	}
}

func TestTimeString(t *testing.T) {
	tests := []struct {
		time float64
		want string
	}{
		{0, "0:00"},
		{-3, "0:00"},
		{5.9, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
	}
	for _, tt := range tests {
		if got := (Score{Time: tt.time}).TimeString(); got != tt.want {
			t.Errorf("TimeString(%v) = %q, want %q", tt.time, got, tt.want)
		}
	}
}
