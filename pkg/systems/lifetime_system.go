package systems

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
)

// LifetimeSystem 推进限时实体并标记删除到期的实体
// 实体在本帧末尾的 RemoveMarkedEntities 中真正移除
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{entityManager: em}
}

// Update 累加存在时间
func (s *LifetimeSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		lt, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		lt.Elapsed += deltaTime
		if lt.Expired() {
			s.entityManager.DestroyEntity(id)
		}
	}
}
