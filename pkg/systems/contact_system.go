package systems

import (
	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/types"
	"github.com/decker502/penball/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactHandler 接收接触处理结果，由关卡运行时实现
type ContactHandler interface {
	// OnBallCompleted 小球到达自己的终点
	OnBallCompleted(ball *components.BallComponent, goal *components.GoalComponent)
	// OnBallDestroyed 小球碰到危险物，at 为小球被销毁时的位置
	OnBallDestroyed(ball *components.BallComponent, at mgl64.Vec2)
}

var (
	ballFinish    = types.ObjectBall | types.ObjectFinish
	ballHazard    = types.ObjectBall | types.ObjectHazard
	ballBouncePad = types.ObjectBall | types.ObjectBouncePad
)

// ContactSystem 处理小球与终点、危险物、弹跳板的接触
// 作为物理世界的接触监听者，在 World.Step 返回前被调用
type ContactSystem struct {
	em      *ecs.EntityManager
	world   *physics.World
	cfg     *config.PhysicsConfig
	handler ContactHandler
}

// NewContactSystem 创建接触系统并注册为世界的接触监听者
//
// 参数：
//   - em: 实体管理器，物理体的 UserData 必须是 ecs.EntityID
//   - world: 物理世界
//   - cfg: 提供弹跳速度、动画时长、特效寿命
//   - handler: 结果回调，可为 nil
func NewContactSystem(em *ecs.EntityManager, world *physics.World, cfg *config.PhysicsConfig, handler ContactHandler) *ContactSystem {
	s := &ContactSystem{
		em:      em,
		world:   world,
		cfg:     cfg,
		handler: handler,
	}
	world.SetContactListener(s)
	return s
}

// BeginContact 按两个物体类别的并集分类处理
func (s *ContactSystem) BeginContact(c physics.Contact) {
	union := c.A.Category.Union(c.B.Category)

	ballBody, other := c.A, c.B
	if !ballBody.Category.Contains(types.ObjectBall) {
		ballBody, other = c.B, c.A
	}
	ballID, ok := ballBody.UserData.(ecs.EntityID)
	if !ok {
		return
	}
	ball, ok := ecs.GetComponent[*components.BallComponent](s.em, ballID)
	if !ok || !ball.Active() {
		return
	}

	switch union {
	case ballFinish:
		goalID, ok := other.UserData.(ecs.EntityID)
		if !ok {
			return
		}
		goal, ok := ecs.GetComponent[*components.GoalComponent](s.em, goalID)
		if !ok || goal.BallID != ball.ID {
			return
		}
		s.reachGoal(ballID, ball, goal)
	case ballHazard:
		s.destroyBall(ballID, ball)
	case ballBouncePad:
		ball.Body.Velocity = mgl64.Vec2{0, s.cfg.BounceVelocity}
	}
}

// reachGoal 冻结小球并吸附到终点
func (s *ContactSystem) reachGoal(id ecs.EntityID, ball *components.BallComponent, goal *components.GoalComponent) {
	from := ball.Body.Position
	ball.Completed = true
	ball.Body.Dynamic = false
	ball.Body.Velocity = mgl64.Vec2{}

	ecs.AddComponent(s.em, id, &components.TweenComponent{
		From:     from,
		To:       goal.Position,
		Duration: s.cfg.GoalSnapDuration,
		Easing:   utils.EaseOutQuad,
	})
	s.spawnEffect(components.EffectSuccess, ball, from, id, s.cfg.SuccessEffectLifetime)

	if s.handler != nil {
		s.handler.OnBallCompleted(ball, goal)
	}
}

// destroyBall 移除小球的物理体并淡出
func (s *ContactSystem) destroyBall(id ecs.EntityID, ball *components.BallComponent) {
	at := ball.Body.Position
	s.world.RemoveBody(ball.Body)
	ball.Body = nil
	ball.Dead = true
	ball.LineWidth = 0

	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id); ok {
		pos.Pos = at
	}
	ecs.AddComponent(s.em, id, &components.FadeComponent{
		From:     ball.Alpha,
		To:       0,
		Duration: s.cfg.FadeOutDuration,
	})
	s.spawnEffect(components.EffectExplosion, ball, at, 0, s.cfg.ExplosionEffectLifetime)

	if s.handler != nil {
		s.handler.OnBallDestroyed(ball, at)
	}
}

// spawnEffect 创建特效实体，follow 非零时特效跟随该实体
func (s *ContactSystem) spawnEffect(kind components.EffectKind, ball *components.BallComponent, at mgl64.Vec2, follow ecs.EntityID, lifetime float64) ecs.EntityID {
	id := s.em.CreateEntity()
	ecs.AddComponent(s.em, id, &components.EffectComponent{
		Kind:   kind,
		Color:  ball.Color,
		Follow: follow,
	})
	ecs.AddComponent(s.em, id, &components.PositionComponent{Pos: at})
	ecs.AddComponent(s.em, id, &components.LifetimeComponent{Duration: lifetime})
	return id
}
