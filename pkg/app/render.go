package app

import (
	"image/color"
	"math"

	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 配色
var (
	backgroundColor = color.RGBA{R: 250, G: 248, B: 240, A: 255}
	hazardColor     = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	bouncePadColor  = color.RGBA{R: 60, G: 170, B: 80, A: 255}
	obstacleColor   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	hudColor        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// categoryColor 按类别给预置笔画着色，用户笔画使用墨水颜色
func categoryColor(s ink.Stroke) color.Color {
	switch {
	case s.Category.Contains(types.ObjectHazard):
		return hazardColor
	case s.Category.Contains(types.ObjectBouncePad):
		return bouncePadColor
	case s.Category.Contains(types.ObjectPreloadedObstacle):
		return obstacleColor
	default:
		return s.Ink.Color.RGBA()
	}
}

// withAlpha 乘以透明度（预乘 alpha）
func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

// sceneToScreen 场景坐标（Y 向上）转换为屏幕坐标
func sceneToScreen(p mgl64.Vec2, frame ink.Rect) (float32, float32) {
	return float32(p.X() - frame.MinX), float32(frame.MaxY - p.Y())
}

// drawStroke 圆头折线
func drawStroke(screen *ebiten.Image, s ink.Stroke, clr color.Color) {
	w := float32(s.Ink.Width)
	if w <= 0 || len(s.Points) == 0 {
		return
	}
	for i, p := range s.Points {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), w/2, clr, true)
		if i > 0 {
			prev := s.Points[i-1]
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(p.X), float32(p.Y), w, clr, true)
		}
	}
}

func drawBall(screen *ebiten.Image, b game.BallView, frame ink.Rect) {
	if b.Alpha <= 0 {
		return
	}
	x, y := sceneToScreen(b.Position, frame)
	clr := withAlpha(b.Color.RGBA(), b.Alpha)
	if b.LineWidth > 0 {
		vector.StrokeCircle(screen, x, y, float32(b.Radius), float32(b.LineWidth), clr, true)
		return
	}
	// 线宽为零时（正在淡出）画成实心
	vector.DrawFilledCircle(screen, x, y, float32(b.Radius), clr, true)
}

func drawGoal(screen *ebiten.Image, g *components.GoalComponent, frame ink.Rect) {
	x, y := sceneToScreen(g.Position, frame)
	clr := g.Color.RGBA()
	vector.StrokeCircle(screen, x, y, float32(g.Radius), 2, clr, true)
	vector.DrawFilledCircle(screen, x, y, float32(g.Radius)*0.3, withAlpha(clr, 0.5), true)
}

// drawEffect 成功特效为扩散的圆环，爆炸特效为向外飞散的碎片
func drawEffect(screen *ebiten.Image, e game.EffectView, frame ink.Rect) {
	x, y := sceneToScreen(e.Position, frame)
	fade := 1 - e.Progress
	clr := withAlpha(e.Color.RGBA(), fade)

	switch e.Kind {
	case components.EffectSuccess:
		r := float32(25 + 30*e.Progress)
		vector.StrokeCircle(screen, x, y, r, 3, clr, true)
	case components.EffectExplosion:
		const shards = 10
		dist := 10 + 60*e.Progress
		for i := 0; i < shards; i++ {
			a := 2 * math.Pi * float64(i) / shards
			px := x + float32(math.Cos(a)*dist)
			py := y + float32(math.Sin(a)*dist)
			vector.DrawFilledCircle(screen, px, py, float32(4*fade+1), clr, true)
		}
	}
}
