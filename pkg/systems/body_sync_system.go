package systems

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
)

// BodySyncSystem 把物理体位置同步到位置组件，并让跟随型特效跟上目标
type BodySyncSystem struct {
	entityManager *ecs.EntityManager
}

// NewBodySyncSystem 创建同步系统
func NewBodySyncSystem(em *ecs.EntityManager) *BodySyncSystem {
	return &BodySyncSystem{entityManager: em}
}

// Update 执行同步
// 补间中的小球由 TweenSystem 驱动，这里跳过
func (s *BodySyncSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.BallComponent, *components.PositionComponent](s.entityManager) {
		ball, _ := ecs.GetComponent[*components.BallComponent](s.entityManager, id)
		if ball.Body == nil || !ball.Body.InWorld() {
			continue
		}
		if ecs.HasComponent[*components.TweenComponent](s.entityManager, id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos = ball.Body.Position
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.PositionComponent](s.entityManager) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.entityManager, id)
		if effect.Follow == 0 {
			continue
		}
		target, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, effect.Follow)
		if !ok {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.Pos = target.Pos
	}
}
