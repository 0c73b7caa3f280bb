package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/geometry"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/systems"
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// ErrLevelNotLoaded 关卡尚未成功加载
var ErrLevelNotLoaded = errors.New("level not loaded")

// Level 单个关卡的运行时
//
// 持有小球、终点、笔画碰撞体、状态和成绩。除后台几何构建外，
// 所有方法都必须在同一个线程（模拟线程）上调用。
type Level struct {
	cfg      *config.PhysicsConfig
	observer Observer

	def    *config.LevelDefinition
	loaded bool
	frame  ink.Rect // 绘图坐标中的场景框架

	em       *ecs.EntityManager
	world    *physics.World
	queue    *BuildQueue
	drawing  *DrawingSync
	contacts *systems.ContactSystem
	tween    *systems.TweenSystem
	fade     *systems.FadeSystem
	lifetime *systems.LifetimeSystem
	bodySync *systems.BodySyncSystem

	balls     []ecs.EntityID // 下标 = 小球ID-1
	goals     []ecs.EntityID
	preloaded []ecs.EntityID
	completed map[int]bool

	allowsDrawing bool
	state         types.LevelState
	score         Score
	clock         float64  // 累计模拟时间
	startTime     *float64 // 进入 started 后第一帧的时间
}

// NewLevel 创建关卡运行时，cfg 为 nil 时使用默认参数
func NewLevel(cfg *config.PhysicsConfig) *Level {
	if cfg == nil {
		cfg = config.DefaultPhysicsConfig()
	}
	return &Level{
		cfg:           cfg,
		allowsDrawing: true,
		completed:     make(map[int]bool),
	}
}

// SetObserver 设置观察者，传 nil 取消
// 只保存一个观察者，需要多个时使用 MultiObserver
func (l *Level) SetObserver(o Observer) {
	l.observer = o
}

// SetDrawingAllowed 设置是否允许玩家绘图，不允许时 SetDrawing 被忽略
func (l *Level) SetDrawingAllowed(allowed bool) {
	l.allowsDrawing = allowed
}

// LoadLevel 根据关卡定义（重新）初始化小球、终点和预置笔画
//
// 校验失败或预置笔画无法生成碰撞体时返回错误，此时关卡保持未加载状态，
// 之后的 Update/SetState/SetDrawing 调用都会被忽略。
func (l *Level) LoadLevel(def *config.LevelDefinition) error {
	wasLoaded, prevState := l.loaded, l.state
	l.teardown()

	if def == nil {
		return fmt.Errorf("load level: %w: nil definition", config.ErrInvalidLevel)
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("load level: %w", err)
	}

	l.def = def
	l.frame = def.Frame(l.cfg.PlayfieldWidth)
	l.em = ecs.NewEntityManager()
	l.world = physics.NewWorld(l.cfg.Gravity.Vec(), l.cfg.SubSteps)
	l.queue = NewBuildQueue(l.cfg.BuildWorkers, l.geometryOptions())
	l.drawing = NewDrawingSync(l.em, l.world, l.queue, l.frame)
	l.contacts = systems.NewContactSystem(l.em, l.world, l.cfg, l)
	l.tween = systems.NewTweenSystem(l.em)
	l.fade = systems.NewFadeSystem(l.em)
	l.lifetime = systems.NewLifetimeSystem(l.em)
	l.bodySync = systems.NewBodySyncSystem(l.em)
	l.completed = make(map[int]bool)

	for i, b := range def.Balls {
		l.balls = append(l.balls, l.createBall(config.BallID(i), b))
		l.goals = append(l.goals, l.createGoal(config.BallID(i), b))
	}

	if err := l.installPreloaded(); err != nil {
		l.teardown()
		return fmt.Errorf("load level: %w", err)
	}

	l.loaded = true
	l.state = types.StateNotStarted
	log.Printf("[Level] Loaded level: %d balls, %d preloaded bodies, frame %.0fx%.0f",
		len(l.balls), len(l.preloaded), l.frame.Width(), l.frame.Height())

	l.enterNotStarted()
	if wasLoaded && prevState != types.StateNotStarted {
		l.notifyStateChanged(types.StateNotStarted)
	}
	return nil
}

// Close 停止后台构建
func (l *Level) Close() {
	if l.queue != nil {
		l.queue.Close()
	}
}

func (l *Level) teardown() {
	if l.queue != nil {
		l.queue.Close()
	}
	l.loaded = false
	l.def = nil
	l.em = nil
	l.world = nil
	l.queue = nil
	l.drawing = nil
	l.contacts = nil
	l.balls = nil
	l.goals = nil
	l.preloaded = nil
	l.state = types.StateNotStarted
	l.score = Score{}
	l.startTime = nil
}

func (l *Level) geometryOptions() geometry.Options {
	return geometry.Options{Scale: l.cfg.RasterScale, AlphaThreshold: l.cfg.AlphaThreshold}
}

func (l *Level) createBall(id int, b config.BallDefinition) ecs.EntityID {
	e := l.em.CreateEntity()
	start := b.Start.Vec()
	ecs.AddComponent(l.em, e, &components.BallComponent{
		ID:        id,
		Color:     b.Color,
		Start:     start,
		Radius:    l.cfg.BallRadius,
		LineWidth: l.cfg.BallLineWidth,
		Alpha:     1,
	})
	ecs.AddComponent(l.em, e, &components.PositionComponent{Pos: start})
	return e
}

func (l *Level) createGoal(id int, b config.BallDefinition) ecs.EntityID {
	e := l.em.CreateEntity()
	at := b.End.Vec()
	body := l.world.AddBody(&physics.Body{
		Shape:    &physics.CircleShape{Radius: l.cfg.BodyRadius()},
		Position: at,
		Category: types.ObjectFinish,
		UserData: e,
	})
	ecs.AddComponent(l.em, e, &components.GoalComponent{
		BallID:   id,
		Position: at,
		Color:    b.Color,
		Radius:   l.cfg.BallRadius,
		Body:     body,
	})
	ecs.AddComponent(l.em, e, &components.PositionComponent{Pos: at})
	return e
}

// installPreloaded 并行构建关卡自带的带类别笔画
// 分割高度只使用小球起点
func (l *Level) installPreloaded() error {
	strokes := l.def.CategorizedStrokes()
	if len(strokes) == 0 {
		return nil
	}

	splitY := make([]float64, 0, len(l.def.Balls))
	for _, b := range l.def.Balls {
		splitY = append(splitY, geometry.SceneY(b.Start.Y, l.frame))
	}
	sort.Float64s(splitY)

	results := make([]BuildResult, len(strokes))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(l.cfg.BuildWorkers)
	opts := l.geometryOptions()
	for i, s := range strokes {
		i, s := i, s // go 1.21：逐次复制循环变量
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := BuildStroke(BuildJob{StrokeID: s.ID, Category: s.Category, Strokes: []ink.Stroke{s}, SplitY: splitY}, opts)
			if len(r.Records) == 0 {
				return fmt.Errorf("%w: stroke %v produced no collision geometry", config.ErrInvalidLevel, s.ID)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		l.preloaded = append(l.preloaded, installRecords(l.em, l.world, l.frame, r.Records, r.Category, true)...)
	}
	return nil
}

// SetDrawing 用新的玩家绘图更新碰撞体
// 新增的带类别笔画计入成绩的笔画数
func (l *Level) SetDrawing(d ink.Drawing) {
	if !l.loaded {
		return
	}
	if !l.allowsDrawing {
		log.Printf("[Level] Drawing is locked on this level, ignoring update")
		return
	}
	l.score.Strokes += l.drawing.Apply(d, l.splitY())
}

// splitY 小球起点和当前位置的高度，转换到绘图坐标并排序
func (l *Level) splitY() []float64 {
	ys := make([]float64, 0, 2*len(l.balls))
	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		ys = append(ys, geometry.SceneY(ball.Start.Y(), l.frame), geometry.SceneY(pos.Pos.Y(), l.frame))
	}
	sort.Float64s(ys)
	return ys
}

// Update 推进一帧
//
// 顺序：安装构建结果 → 物理步进（接触在此期间处理）→ 动画/特效系统
// → 出界检测 → 计时并发布成绩
func (l *Level) Update(deltaTime float64) {
	if !l.loaded {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	l.clock += deltaTime

	l.drawing.Install(l.queue.Drain())

	if l.state == types.StateStarted || l.state == types.StateFailed {
		l.world.Step(deltaTime)
	}

	l.tween.Update(deltaTime)
	l.fade.Update(deltaTime)
	l.lifetime.Update(deltaTime)
	l.bodySync.Update(deltaTime)
	l.em.RemoveMarkedEntities()

	if l.state == types.StateStarted && l.anyBallOutOfBounds() {
		log.Printf("[Level] Ball left the playfield")
		l.transition(types.StateFailed)
	}

	switch l.state {
	case types.StateStarted, types.StateFailed:
		l.updateTime()
		l.notifyScoreUpdated()
	case types.StateNotStarted:
		l.notifyScoreUpdated()
	}
}

// updateTime 第一帧记录起始时间，之后用时 = 当前时间 - 起始时间
func (l *Level) updateTime() {
	if l.startTime == nil {
		t := l.clock
		l.startTime = &t
	}
	l.score.Time = l.clock - *l.startTime
}

// Playfield 场景坐标中的场地矩形
func (l *Level) Playfield() ink.Rect {
	return ink.Rect{MinX: l.frame.MinX, MinY: 0, MaxX: l.frame.MaxX, MaxY: l.frame.Height()}
}

func (l *Level) anyBallOutOfBounds() bool {
	field := l.Playfield()
	for _, id := range l.balls {
		ball, _ := ecs.GetComponent[*components.BallComponent](l.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](l.em, id)
		r := ball.Radius + ball.LineWidth/2
		box := ink.Rect{MinX: pos.Pos.X() - r, MinY: pos.Pos.Y() - r, MaxX: pos.Pos.X() + r, MaxY: pos.Pos.Y() + r}
		if !box.Intersects(field) {
			return true
		}
	}
	return false
}

// OnBallCompleted 实现 systems.ContactHandler
func (l *Level) OnBallCompleted(ball *components.BallComponent, goal *components.GoalComponent) {
	l.completed[ball.ID] = true
	log.Printf("[Level] Ball %d reached its goal (%d/%d)", ball.ID, len(l.completed), len(l.balls))
	l.notifyEffect(Effect{Kind: components.EffectSuccess, BallID: ball.ID, Position: goal.Position, Color: ball.Color})

	if len(l.completed) == len(l.balls) {
		l.requestState(types.StateCompleted)
	}
}

// OnBallDestroyed 实现 systems.ContactHandler
func (l *Level) OnBallDestroyed(ball *components.BallComponent, at mgl64.Vec2) {
	log.Printf("[Level] Ball %d hit a hazard", ball.ID)
	l.notifyEffect(Effect{Kind: components.EffectExplosion, BallID: ball.ID, Position: at, Color: ball.Color})
	l.requestState(types.StateFailed)
}

func (l *Level) notifyStateChanged(s types.LevelState) {
	if l.observer != nil {
		l.observer.OnStateChanged(s)
	}
}

func (l *Level) notifyScoreUpdated() {
	if l.observer != nil {
		l.observer.OnScoreUpdated(l.score)
	}
}

func (l *Level) notifyLevelCompleted() {
	if l.observer != nil {
		l.observer.OnLevelCompleted(l.score)
	}
}

func (l *Level) notifyEffect(e Effect) {
	if eo, ok := l.observer.(EffectObserver); ok {
		eo.OnEffect(e)
	}
}
