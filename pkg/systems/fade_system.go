package systems

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/utils"
)

// FadeSystem 驱动小球透明度渐变
type FadeSystem struct {
	entityManager *ecs.EntityManager
}

// NewFadeSystem 创建渐变系统
func NewFadeSystem(em *ecs.EntityManager) *FadeSystem {
	return &FadeSystem{entityManager: em}
}

// Update 推进所有渐变，完成后移除渐变组件
func (s *FadeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.FadeComponent, *components.BallComponent](s.entityManager)
	for _, id := range entities {
		fade, _ := ecs.GetComponent[*components.FadeComponent](s.entityManager, id)
		ball, _ := ecs.GetComponent[*components.BallComponent](s.entityManager, id)

		fade.Elapsed += deltaTime
		t := utils.Progress(fade.Elapsed, fade.Duration)
		ball.Alpha = utils.Lerp(fade.From, fade.To, t)

		if t >= 1 {
			fade.Done = true
			ecs.RemoveComponent[*components.FadeComponent](s.entityManager, id)
		}
	}
}
