package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestObjectTypeBitValues(t *testing.T) {
	tests := []struct {
		typ  ObjectType
		want uint32
	}{
		{ObjectBall, 1},
		{ObjectUserDrawn, 2},
		{ObjectFinish, 4},
		{ObjectPreloadedObstacle, 8},
		{ObjectHazard, 16},
		{ObjectBouncePad, 32},
	}

	for _, tt := range tests {
		if uint32(tt.typ) != tt.want {
			t.Errorf("%s: got %d, want %d", tt.typ, uint32(tt.typ), tt.want)
		}
	}
}

func TestObjectTypeSets(t *testing.T) {
	if !ObjectObstacles.Contains(ObjectUserDrawn) || !ObjectObstacles.Contains(ObjectPreloadedObstacle) {
		t.Error("obstacles should contain userDrawn and preloadedObstacle")
	}
	if ObjectObstacles.Intersects(ObjectHazard) {
		t.Error("obstacles should not intersect hazard")
	}
	if ObjectBallContactTest != ObjectFinish|ObjectHazard|ObjectBouncePad {
		t.Errorf("ballContactTest = %s", ObjectBallContactTest)
	}
	if got := ObjectBall.Union(ObjectFinish); got != 5 {
		t.Errorf("ball|finish = %d, want 5", got)
	}
	if !ObjectType(0).IsEmpty() {
		t.Error("zero value should be empty")
	}
}

func TestObjectTypeString(t *testing.T) {
	if got := (ObjectBall | ObjectFinish).String(); got != "ball|finish" {
		t.Errorf("got %q", got)
	}
	if got := ObjectType(0).String(); got != "none" {
		t.Errorf("got %q", got)
	}
	if got := ObjectType(64).String(); got != "0x40" {
		t.Errorf("got %q", got)
	}
}

func TestObjectTypeUnmarshalYAML(t *testing.T) {
	var doc struct {
		Types []ObjectType `yaml:"types"`
	}
	input := "types: [8, hazard, bouncePad, 2]"
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := []ObjectType{ObjectPreloadedObstacle, ObjectHazard, ObjectBouncePad, ObjectUserDrawn}
	if len(doc.Types) != len(want) {
		t.Fatalf("got %v, want %v", doc.Types, want)
	}
	for i := range want {
		if doc.Types[i] != want[i] {
			t.Errorf("types[%d] = %s, want %s", i, doc.Types[i], want[i])
		}
	}

	if err := yaml.Unmarshal([]byte("types: [lava]"), &doc); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestLevelStateString(t *testing.T) {
	states := map[LevelState]string{
		StateNotStarted:    "notStarted",
		StateStarted:       "started",
		StateFailed:        "failed",
		StateCompleted:     "completed",
		StateTransitioning: "transitioning",
		LevelState(42):     "unknown",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("got %q, want %q", s.String(), want)
		}
	}
}
