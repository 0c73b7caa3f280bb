package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/physics.yaml":      {Data: []byte("gravity: {x: 0, y: -980}\n")},
		"data/levels/index.yaml": {Data: []byte("levels: []\n")},
		"data/levels/intro.yaml": {Data: []byte("sceneHeight: 768\n")},
	}
}

func TestNotInitialized(t *testing.T) {
	Init(nil)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/physics.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/physics.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	data, err := ReadFile("./data/levels/intro.yaml")
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "sceneHeight: 768\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := ReadFile("assets/ball.png"); err == nil {
		t.Error("Expected error for non-data prefix")
	}
	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestExistsAndGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/physics.yaml") {
		t.Error("physics.yaml should exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("nope.yaml should not exist")
	}

	matches, err := Glob("data/levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob() failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}

func TestLoadFallsBackToDisk(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if string(data) != "x: 1\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	embeddedData, err := Load("data/physics.yaml")
	if err != nil || len(embeddedData) == 0 {
		t.Errorf("Load() should read embedded file, err=%v", err)
	}
}
