package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/penball/pkg/types"
)

const firstSteps = "../../data/levels/first_steps.yaml"

func writeDrawing(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.yaml")
	content := `strokes:
  - id: 1
    ink:
      color: {r: 0, g: 0, b: 0}
      width: 8
    points:
      - {x: 100, y: 600}
      - {x: 300, y: 600}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// withArgs 替换命令行参数并在测试结束后恢复
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"verify_level"}, args...)
	t.Cleanup(func() { os.Args = saved })
}

func TestLoadDrawingMarksUserStrokes(t *testing.T) {
	d, err := loadDrawing(writeDrawing(t))
	if err != nil {
		t.Fatalf("loadDrawing() failed: %v", err)
	}
	if len(d.Strokes) != 1 {
		t.Fatalf("Expected 1 stroke, got %d", len(d.Strokes))
	}
	if d.Strokes[0].Category != types.ObjectUserDrawn {
		t.Errorf("Expected userDrawn category, got %s", d.Strokes[0].Category)
	}
	if len(d.Strokes[0].Points) != 2 || d.Strokes[0].Ink.Width != 8 {
		t.Errorf("Unexpected stroke: %+v", d.Strokes[0])
	}
}

func TestLoadDrawingMissingFile(t *testing.T) {
	if _, err := loadDrawing(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing drawing file")
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no level", nil, 1},
		{"missing level", []string{filepath.Join(os.TempDir(), "penball-missing.yaml")}, 1},
		{"not started", []string{"-ticks", "5", "-start=false", firstSteps}, 2},
		{"missing drawing", []string{"-ticks", "5", "-start=false", "-drawing", "missing-drawing.yaml", firstSteps}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			*drawingFile = ""
			if got := run(); got != tt.want {
				t.Errorf("run() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunWithDrawing(t *testing.T) {
	withArgs(t, "-ticks", "5", "-start=false", "-drawing", writeDrawing(t), firstSteps)
	t.Cleanup(func() { *drawingFile = "" })
	if got := run(); got != 2 {
		t.Errorf("run() = %d, want 2 for a level that is never started", got)
	}
}
