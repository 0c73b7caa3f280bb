package game

import (
	"log"

	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/types"
)

// transitions 允许的状态转换
var transitions = map[types.LevelState][]types.LevelState{
	types.StateNotStarted:    {types.StateStarted, types.StateTransitioning},
	types.StateStarted:       {types.StateFailed, types.StateCompleted, types.StateNotStarted, types.StateTransitioning},
	types.StateFailed:        {types.StateCompleted, types.StateNotStarted, types.StateTransitioning},
	types.StateCompleted:     {types.StateNotStarted, types.StateTransitioning},
	types.StateTransitioning: {types.StateNotStarted},
}

// requestable 外部可以直接请求的状态
// failed 和 completed 只能由接触和出界检测进入
var requestable = map[types.LevelState]bool{
	types.StateNotStarted:    true,
	types.StateStarted:       true,
	types.StateTransitioning: true,
}

// CanTransition 判断 from → to 是否合法，相同状态返回 false
func CanTransition(from, to types.LevelState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// State 当前状态
func (l *Level) State() types.LevelState {
	return l.state
}

// Score 当前成绩
func (l *Level) Score() Score {
	return l.score
}

// SetState 请求状态转换
// 只接受 notStarted、started、transitioning；
// 与当前状态相同或不合法的请求被忽略（记录日志），不会触发任何回调
func (l *Level) SetState(s types.LevelState) {
	if !l.loaded {
		log.Printf("[Level] Ignoring state request %s: %v", s, ErrLevelNotLoaded)
		return
	}
	if !requestable[s] {
		log.Printf("[Level] Ignoring external request for %s", s)
		return
	}
	l.requestState(s)
}

func (l *Level) requestState(s types.LevelState) {
	if s == l.state {
		return
	}
	if !CanTransition(l.state, s) {
		log.Printf("[Level] Ignoring invalid transition %s -> %s", l.state, s)
		return
	}
	if s == types.StateCompleted && len(l.completed) != len(l.balls) {
		log.Printf("[Level] Ignoring completion with %d/%d balls at their goals", len(l.completed), len(l.balls))
		return
	}
	l.transition(s)
}

// transition 执行转换：先完成进入新状态的副作用，再通知观察者
func (l *Level) transition(to types.LevelState) {
	from := l.state
	l.state = to
	log.Printf("[Level] State %s -> %s", from, to)

	switch to {
	case types.StateNotStarted:
		l.enterNotStarted()
	case types.StateStarted:
		l.enterStarted()
	case types.StateCompleted:
		l.enterCompleted()
	}

	l.notifyStateChanged(to)
	if to == types.StateCompleted {
		l.notifyLevelCompleted()
	}
}

// enterNotStarted 成绩清零，小球回到起点且没有物理体，清除特效
func (l *Level) enterNotStarted() {
	l.score = Score{}
	l.startTime = nil
	l.completed = make(map[int]bool)

	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		l.removeBallBody(ball)
		ball.Completed = false
		ball.Dead = false
		ball.LineWidth = l.cfg.BallLineWidth
		ball.Alpha = 1
		pos.Pos = ball.Start
		ecs.RemoveComponent[*components.TweenComponent](l.em, id)
		ecs.RemoveComponent[*components.FadeComponent](l.em, id)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](l.em) {
		l.em.DestroyEntity(id)
	}
	l.em.RemoveMarkedEntities()

	l.notifyScoreUpdated()
}

// enterStarted 固定笔画数，为每个小球创建动态物理体
func (l *Level) enterStarted() {
	l.score = Score{Strokes: l.drawing.Count()}
	l.startTime = nil

	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		l.removeBallBody(ball)
		ball.Body = l.world.AddBody(&physics.Body{
			Shape:           &physics.CircleShape{Radius: l.cfg.BodyRadius()},
			Position:        pos.Pos,
			Dynamic:         true,
			Category:        types.ObjectBall,
			CollisionMask:   types.ObjectObstacles | types.ObjectBall,
			ContactTestMask: types.ObjectBallContactTest,
			Restitution:     l.cfg.BallRestitution,
			Friction:        l.cfg.BallFriction,
			UserData:        id,
		})
	}
}

// enterCompleted 移除所有小球的物理体，小球停在原地
func (l *Level) enterCompleted() {
	if l.startTime != nil {
		l.score.Time = l.clock - *l.startTime
	}
	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		l.removeBallBody(ball)
	}
}

func (l *Level) removeBallBody(ball *components.BallComponent) {
	if ball.Body == nil {
		return
	}
	l.world.RemoveBody(ball.Body)
	ball.Body = nil
}
