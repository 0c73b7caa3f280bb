package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockScene 记录调用情况
type mockScene struct {
	updateCalled bool
	drawCalled   bool
	closed       int
	deltaTime    float64
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *mockScene) Close() {
	m.closed++
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // 没有场景时不应 panic

	scene := &mockScene{}
	sm.SwitchTo(scene)
	sm.Update(0.016)

	if !scene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if scene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %.3f", scene.deltaTime)
	}
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	sm.Draw(ebiten.NewImage(10, 10))
	if !scene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerClosesReplacedScene(t *testing.T) {
	sm := NewSceneManager()
	first := &mockScene{}
	second := &mockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first)
	if first.closed != 0 {
		t.Error("Switching to the same scene must not close it")
	}
	sm.SwitchTo(second)
	if first.closed != 1 {
		t.Errorf("Replaced scene should be closed once, got %d", first.closed)
	}
	if sm.CurrentScene() != second {
		t.Error("Current scene should be the new one")
	}
}

func TestSceneManagerLoadLevel(t *testing.T) {
	sm := NewSceneManager()
	if sm.LoadLevel(0) {
		t.Error("LoadLevel without factory should fail")
	}

	created := map[int]*mockScene{}
	sm.SetSceneFactory(func(index int) Scene {
		if index > 1 {
			return nil
		}
		s := &mockScene{}
		created[index] = s
		return s
	})

	if !sm.LoadLevel(1) || sm.CurrentScene() != created[1] {
		t.Fatal("LoadLevel(1) should switch to the created scene")
	}
	if sm.LoadLevel(5) {
		t.Error("LoadLevel should report factory failure")
	}
	if sm.CurrentScene() != created[1] {
		t.Error("Failed load must keep the current scene")
	}
}
