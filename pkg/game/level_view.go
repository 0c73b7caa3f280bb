package game

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/ink"
	"github.com/go-gl/mathgl/mgl64"
)

// BallView 供表现层绘制的小球快照
type BallView struct {
	ID        int
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Color     ink.Color
	Radius    float64
	LineWidth float64
	Alpha     float64
	Completed bool
	Dead      bool
	HasBody   bool
}

// Balls 按ID顺序返回小球快照
func (l *Level) Balls() []BallView {
	if !l.loaded {
		return nil
	}
	out := make([]BallView, 0, len(l.balls))
	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		v := BallView{
			ID:        ball.ID,
			Position:  pos.Pos,
			Color:     ball.Color,
			Radius:    ball.Radius,
			LineWidth: ball.LineWidth,
			Alpha:     ball.Alpha,
			Completed: ball.Completed,
			Dead:      ball.Dead,
			HasBody:   ball.Body != nil && ball.Body.InWorld(),
		}
		if v.HasBody {
			v.Velocity = ball.Body.Velocity
		}
		out = append(out, v)
	}
	return out
}

// Goals 按小球ID顺序返回终点
func (l *Level) Goals() []*components.GoalComponent {
	if !l.loaded {
		return nil
	}
	out := make([]*components.GoalComponent, 0, len(l.goals))
	for _, id := range l.goals {
		g, _ := ecs.GetComponent[*components.GoalComponent](l.em, id)
		out = append(out, g)
	}
	return out
}

// EffectView 供表现层绘制的特效快照
type EffectView struct {
	Kind     components.EffectKind
	Position mgl64.Vec2
	Color    ink.Color
	Progress float64 // 0..1
}

// Effects 返回当前存活的特效
func (l *Level) Effects() []EffectView {
	if !l.loaded {
		return nil
	}
	ids := ecs.GetEntitiesWith2[*components.EffectComponent, *components.LifetimeComponent](l.em)
	out := make([]EffectView, 0, len(ids))
	for _, id := range ids {
		e, _ := ecs.GetComponent[*components.EffectComponent](l.em, id)
		lt, _ := ecs.GetComponent[*components.LifetimeComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		out = append(out, EffectView{
			Kind:     e.Kind,
			Position: pos.Pos,
			Color:    e.Color,
			Progress: lt.Progress(),
		})
	}
	return out
}

// StrokeBodyCount 已安装的玩家笔画碰撞体数量（不含预置笔画）
func (l *Level) StrokeBodyCount() int {
	if !l.loaded {
		return 0
	}
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.StrokeBodyComponent](l.em) {
		sb, _ := ecs.GetComponent[*components.StrokeBodyComponent](l.em, id)
		if !sb.Preloaded {
			n++
		}
	}
	return n
}

// Definition 当前关卡定义
func (l *Level) Definition() *config.LevelDefinition {
	return l.def
}

// Frame 绘图坐标中的场景框架
func (l *Level) Frame() ink.Rect {
	return l.frame
}

// Loaded 关卡是否已成功加载
func (l *Level) Loaded() bool {
	return l.loaded
}

// DrawingAllowed 是否允许玩家绘图
func (l *Level) DrawingAllowed() bool {
	return l.allowsDrawing
}

// HasStrokeGeometry 笔画是否已安装碰撞体
func (l *Level) HasStrokeGeometry(id ink.StrokeID) bool {
	if !l.loaded {
		return false
	}
	return len(l.drawing.Entities(id)) > 0
}

// WaitForBuilds 等待所有已提交的后台构建结束（结果在下一次 Update 时安装）
func (l *Level) WaitForBuilds() {
	if l.queue != nil {
		l.queue.Wait()
	}
}
