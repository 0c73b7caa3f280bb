package systems

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/utils"
)

// TweenSystem 驱动位置补间动画
// 实体带有小球组件时同步移动其物理体
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Update 推进所有补间动画，完成后移除补间组件
func (s *TweenSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TweenComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		tween, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		tween.Elapsed += deltaTime
		t := utils.Progress(tween.Elapsed, tween.Duration)
		easing := tween.Easing
		if easing == nil {
			easing = utils.EaseLinear
		}
		pos.Pos = utils.LerpVec2(tween.From, tween.To, easing(t))
		if t >= 1 {
			// 终点精确落在 To 上
			pos.Pos = tween.To
			tween.Done = true
			ecs.RemoveComponent[*components.TweenComponent](s.entityManager, id)
		}

		if ball, ok := ecs.GetComponent[*components.BallComponent](s.entityManager, id); ok && ball.Body != nil {
			ball.Body.Position = pos.Pos
		}
	}
}
