package app

import (
	"fmt"
	"log"

	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/relay"
	"github.com/decker502/penball/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// transitionDelay 进入 transitioning 后到加载下一关的等待时间（秒）
const transitionDelay = 0.75

// penInk 玩家画笔
var penInk = ink.Ink{Color: ink.Color{R: 0.1, G: 0.2, B: 0.5}, Width: 8}

// LevelScene 一个关卡的游玩画面
//
// 把指针和键盘输入转换为 Level 的请求，并作为观察者接收事件。
type LevelScene struct {
	deps  *sceneDeps
	index int
	entry config.CatalogEntry

	level *game.Level
	def   *config.LevelDefinition
	pen   *Pen
	clock float64

	state      types.LevelState
	score      game.Score
	best       *game.Score
	transition float64
}

// sceneDeps 各关卡场景共享的依赖
type sceneDeps struct {
	physics *config.PhysicsConfig
	catalog *config.LevelCatalog
	bests   *game.BestScoreManager
	sounds  *SoundBank
	relay   *relay.Observer // 可为 nil
	scenes  *SceneManager
}

// newLevelScene 加载目录中第 index 个关卡
func newLevelScene(deps *sceneDeps, index int) (*LevelScene, error) {
	def, err := deps.catalog.LoadLevel(index)
	if err != nil {
		return nil, err
	}
	entry := deps.catalog.Levels[index]

	s := &LevelScene{
		deps:  deps,
		index: index,
		entry: entry,
		def:   def,
		level: game.NewLevel(deps.physics),
		pen:   NewPen(penInk),
	}
	if best, ok := deps.bests.Best(entry.ID); ok {
		s.best = &best
	}

	var observer game.Observer = s
	if deps.relay != nil {
		deps.relay.SetLevel(entry.ID)
		observer = game.MultiObserver{s, deps.relay}
	}
	s.level.SetObserver(observer)
	s.level.SetDrawingAllowed(entry.DrawingAllowed())

	if err := s.level.LoadLevel(def); err != nil {
		s.level.Close()
		return nil, fmt.Errorf("level %s: %w", entry.ID, err)
	}
	s.state = s.level.State()
	log.Printf("[LevelScene] Entered level %s (%s)", entry.ID, entry.DisplayName())
	return s, nil
}

// Close 停止后台构建
func (s *LevelScene) Close() {
	s.level.Close()
}

// Update 处理输入并推进一帧
func (s *LevelScene) Update(deltaTime float64) {
	s.clock += deltaTime
	s.handleKeys()
	s.handlePointer()

	s.level.Update(deltaTime)

	if s.state == types.StateTransitioning {
		s.transition -= deltaTime
		if s.transition <= 0 {
			s.deps.scenes.LoadLevel(s.nextIndex())
		}
	}
}

func (s *LevelScene) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		switch s.state {
		case types.StateNotStarted:
			s.level.SetState(types.StateStarted)
		case types.StateTransitioning:
		default:
			s.level.SetState(types.StateNotStarted)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if s.pen.Clear() {
			s.level.SetDrawing(s.pen.Drawing())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if s.state == types.StateCompleted {
			s.level.SetState(types.StateTransitioning)
		}
	}
}

func (s *LevelScene) handlePointer() {
	if !s.level.DrawingAllowed() || s.state == types.StateCompleted || s.state == types.StateTransitioning {
		s.pen.End()
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.pen.Begin(x, y, s.clock)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.pen.Move(x, y, s.clock)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if s.pen.End() {
			s.level.SetDrawing(s.pen.Drawing())
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) && s.pen.EraseAt(x, y) {
		s.level.SetDrawing(s.pen.Drawing())
	}
}

// nextIndex 目录中的下一关，最后一关之后回到第一个未完成的关卡
func (s *LevelScene) nextIndex() int {
	n := len(s.deps.catalog.Levels)
	if s.index+1 < n {
		return s.index + 1
	}
	if next := s.deps.bests.NextLevelIndex(s.deps.catalog.IDs()); next < n {
		return next
	}
	return 0
}

// Draw 绘制关卡
func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	frame := s.level.Frame()

	categories := s.def.StrokeTypes
	for _, st := range s.def.Drawing.Strokes {
		st.Category = categories[st.ID]
		drawStroke(screen, st, categoryColor(st))
	}
	for _, st := range s.pen.Drawing().Strokes {
		drawStroke(screen, st, st.Ink.Color.RGBA())
	}
	if active := s.pen.Active(); active != nil {
		drawStroke(screen, *active, withAlpha(active.Ink.Color.RGBA(), 0.6))
	}

	for _, g := range s.level.Goals() {
		drawGoal(screen, g, frame)
	}
	for _, b := range s.level.Balls() {
		drawBall(screen, b, frame)
	}
	for _, e := range s.level.Effects() {
		drawEffect(screen, e, frame)
	}

	s.drawHUD(screen)
}

func (s *LevelScene) drawHUD(screen *ebiten.Image) {
	line := fmt.Sprintf("%s  [%s]  time %s  strokes %d", s.entry.DisplayName(), s.state, s.score.TimeString(), s.score.Strokes)
	if s.best != nil {
		line += fmt.Sprintf("  best %s / %d", s.best.TimeString(), s.best.Strokes)
	}
	ebitenutil.DebugPrintAt(screen, line, 8, 8)

	hint := "Space: start/reset  C: clear  right drag: erase"
	switch {
	case !s.level.DrawingAllowed():
		hint = "Space: start/reset  (drawing locked)"
	case s.state == types.StateCompleted:
		hint = "Complete!  N: next level  Space: retry"
	case s.state == types.StateFailed:
		hint = "Failed.  Space: reset"
	}
	ebitenutil.DebugPrintAt(screen, hint, 8, 24)
}

// OnStateChanged 实现 game.Observer
func (s *LevelScene) OnStateChanged(state types.LevelState) {
	s.state = state
	if state == types.StateTransitioning {
		s.transition = transitionDelay
	}
}

// OnScoreUpdated 实现 game.Observer
func (s *LevelScene) OnScoreUpdated(score game.Score) {
	s.score = score
}

// OnLevelCompleted 记录最佳成绩并播放提示音
func (s *LevelScene) OnLevelCompleted(score game.Score) {
	s.score = score
	best, err := s.deps.bests.Record(s.entry.ID, score)
	if err != nil {
		log.Printf("[LevelScene] Warning: Failed to save best score: %v", err)
	}
	s.best = &best
	s.deps.sounds.PlayChime()
}

// OnEffect 实现 game.EffectObserver
func (s *LevelScene) OnEffect(effect game.Effect) {
	if effect.Kind == components.EffectExplosion {
		s.deps.sounds.PlayExplosion()
	}
}
