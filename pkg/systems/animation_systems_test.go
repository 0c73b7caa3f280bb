package systems

import (
	"math"
	"testing"

	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTweenSystemMovesBallAndBody(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewTweenSystem(em)

	body := &physics.Body{Position: mgl64.Vec2{0, 0}}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BallComponent{ID: 1, Body: body})
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.TweenComponent{
		From:     mgl64.Vec2{0, 0},
		To:       mgl64.Vec2{100, 0},
		Duration: 0.1,
		Easing:   utils.EaseOutQuad,
	})

	system.Update(0.05)

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if math.Abs(pos.Pos.X()-75) > 1e-9 {
		t.Errorf("Ease-out at half time should reach 75, got %v", pos.Pos.X())
	}
	if body.Position != pos.Pos {
		t.Errorf("Body should follow tween, got %v", body.Position)
	}

	system.Update(0.1)

	if pos.Pos != (mgl64.Vec2{100, 0}) || body.Position != (mgl64.Vec2{100, 0}) {
		t.Errorf("Tween should end exactly on target, got %v / %v", pos.Pos, body.Position)
	}
	if ecs.HasComponent[*components.TweenComponent](em, id) {
		t.Error("Finished tween should be removed")
	}
}

func TestFadeSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewFadeSystem(em)

	id := em.CreateEntity()
	ball := &components.BallComponent{Alpha: 1}
	ecs.AddComponent(em, id, ball)
	ecs.AddComponent(em, id, &components.FadeComponent{From: 1, To: 0, Duration: 0.2})

	system.Update(0.1)
	if math.Abs(ball.Alpha-0.5) > 1e-9 {
		t.Errorf("Expected alpha 0.5, got %v", ball.Alpha)
	}

	system.Update(0.2)
	if ball.Alpha != 0 {
		t.Errorf("Expected alpha 0, got %v", ball.Alpha)
	}
	if ecs.HasComponent[*components.FadeComponent](em, id) {
		t.Error("Finished fade should be removed")
	}
}

func TestBodySyncSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	world := physics.NewWorld(mgl64.Vec2{}, 1)
	system := NewBodySyncSystem(em)

	body := world.AddBody(&physics.Body{Shape: &physics.CircleShape{Radius: 1}, Position: mgl64.Vec2{3, 4}})
	ballID := em.CreateEntity()
	ecs.AddComponent(em, ballID, &components.BallComponent{Body: body})
	ecs.AddComponent(em, ballID, &components.PositionComponent{})

	effectID := em.CreateEntity()
	ecs.AddComponent(em, effectID, &components.EffectComponent{Follow: ballID})
	ecs.AddComponent(em, effectID, &components.PositionComponent{})

	staticID := em.CreateEntity()
	ecs.AddComponent(em, staticID, &components.EffectComponent{})
	ecs.AddComponent(em, staticID, &components.PositionComponent{Pos: mgl64.Vec2{9, 9}})

	system.Update(1.0 / 60)

	ballPos, _ := ecs.GetComponent[*components.PositionComponent](em, ballID)
	effectPos, _ := ecs.GetComponent[*components.PositionComponent](em, effectID)
	staticPos, _ := ecs.GetComponent[*components.PositionComponent](em, staticID)

	if ballPos.Pos != (mgl64.Vec2{3, 4}) {
		t.Errorf("Ball position should follow body, got %v", ballPos.Pos)
	}
	if effectPos.Pos != (mgl64.Vec2{3, 4}) {
		t.Errorf("Following effect should track the ball, got %v", effectPos.Pos)
	}
	if staticPos.Pos != (mgl64.Vec2{9, 9}) {
		t.Errorf("Stationary effect should not move, got %v", staticPos.Pos)
	}

	// 物理体被移出世界后位置保持不变
	world.RemoveBody(body)
	body.Position = mgl64.Vec2{50, 50}
	system.Update(1.0 / 60)
	if ballPos.Pos != (mgl64.Vec2{3, 4}) {
		t.Errorf("Removed body should not drive position, got %v", ballPos.Pos)
	}
}
