// Package ecs 提供关卡运行时使用的最小实体-组件存储。
//
// 组件以具体类型(通常是指针)为键保存,泛型辅助函数避免调用方手写 reflect.Type。
// 实体删除是延迟的:DestroyEntity 只做标记,RemoveMarkedEntities 在帧末统一清理,
// 这样系统在遍历查询结果时删除实体不会破坏迭代。
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符,0 保留为无效 ID
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体ID列表
	pending []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Exists 报告实体当前是否存在(已标记但未清理的实体仍视为存在)
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; !ok {
		return
	}
	for _, p := range em.pending {
		if p == id {
			return
		}
	}
	em.pending = append(em.pending, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回: 实际被清理的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	n := 0
	for _, id := range em.pending {
		if _, ok := em.components[id]; ok {
			delete(em.components, id)
			n++
		}
	}
	em.pending = em.pending[:0]
	return n
}

// Clear 立即删除所有实体,ID 计数不回退
func (em *EntityManager) Clear() {
	em.components = make(map[EntityID]map[reflect.Type]any)
	em.pending = em.pending[:0]
}

// Count 返回当前实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

func (em *EntityManager) add(id EntityID, t reflect.Type, c any) {
	if compMap, ok := em.components[id]; ok {
		compMap[t] = c
	}
}

func (em *EntityManager) get(id EntityID, t reflect.Type) (any, bool) {
	compMap, ok := em.components[id]
	if !ok {
		return nil, false
	}
	c, found := compMap[t]
	return c, found
}

// query 返回拥有全部指定类型组件的实体,按 ID 升序
func (em *EntityManager) query(types ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		hasAll := true
		for _, t := range types {
			if _, found := compMap[t]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}
	// map 遍历顺序随机,排序后系统更新顺序才可复现
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加组件,同类型组件会被覆盖
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.add(id, typeOf[T](), component)
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	c, ok := em.get(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.get(id, typeOf[T]())
	return ok
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if compMap, ok := em.components[id]; ok {
		delete(compMap, typeOf[T]())
	}
}

// GetEntitiesWith1 查询拥有组件 A 的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.query(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.query(typeOf[A](), typeOf[B]())
}
