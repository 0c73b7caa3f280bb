package game

import (
	"log"
	"sort"

	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/geometry"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
)

// strokeEntry 一个被跟踪的笔画
// installed 为 false 表示占位中：构建已提交但结果尚未安装
type strokeEntry struct {
	token     uint64
	category  types.ObjectType
	installed bool
	entities  []ecs.EntityID
}

// DrawingSync 维护笔画ID到已安装碰撞体的映射
//
// Apply 同步删除被擦除笔画的碰撞体，并为新笔画提交后台构建；
// Install 在模拟线程上安装构建结果，占位不存在或令牌不一致的结果直接丢弃。
type DrawingSync struct {
	em    *ecs.EntityManager
	world *physics.World
	queue *BuildQueue
	frame ink.Rect

	entries   map[ink.StrokeID]*strokeEntry
	nextToken uint64
}

// NewDrawingSync 创建绘图同步器
func NewDrawingSync(em *ecs.EntityManager, world *physics.World, queue *BuildQueue, frame ink.Rect) *DrawingSync {
	return &DrawingSync{
		em:      em,
		world:   world,
		queue:   queue,
		frame:   frame,
		entries: make(map[ink.StrokeID]*strokeEntry),
	}
}

// Apply 对比新的绘图与当前跟踪的笔画
//
// 参数：
//   - d: 当前完整的绘图
//   - splitY: 绘图坐标中的分割高度
//
// 返回：
//   - int: 新增的带类别笔画数
func (s *DrawingSync) Apply(d ink.Drawing, splitY []float64) int {
	groups := d.ByID()

	removed := 0
	for id, e := range s.entries {
		if _, ok := groups[id]; ok {
			continue
		}
		s.destroy(e)
		delete(s.entries, id)
		removed++
	}
	if removed > 0 {
		s.em.RemoveMarkedEntities()
	}

	ids := make([]ink.StrokeID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	added := 0
	for _, id := range ids {
		if _, ok := s.entries[id]; ok {
			continue
		}
		strokes := groups[id]
		category := strokes[0].Category
		if category.IsEmpty() {
			// 装饰笔画
			continue
		}

		s.nextToken++
		s.entries[id] = &strokeEntry{token: s.nextToken, category: category}
		s.queue.Submit(BuildJob{
			StrokeID: id,
			Token:    s.nextToken,
			Category: category,
			Strokes:  strokes,
			SplitY:   append([]float64(nil), splitY...),
		})
		added++
	}

	if added > 0 || removed > 0 {
		log.Printf("[DrawingSync] +%d -%d strokes (tracking %d)", added, removed, len(s.entries))
	}
	return added
}

// Install 安装后台构建结果
// 返回：安装的碰撞体数量
func (s *DrawingSync) Install(results []BuildResult) int {
	installed := 0
	for _, r := range results {
		e, ok := s.entries[r.StrokeID]
		if !ok || e.token != r.Token || e.installed {
			// 笔画已被擦除或被更新的构建取代
			continue
		}
		e.entities = installRecords(s.em, s.world, s.frame, r.Records, e.category, false)
		e.installed = true
		installed += len(e.entities)
	}
	return installed
}

// Count 当前跟踪的带类别笔画数（包括构建中的）
func (s *DrawingSync) Count() int {
	return len(s.entries)
}

// Tracks 是否在跟踪该笔画
func (s *DrawingSync) Tracks(id ink.StrokeID) bool {
	_, ok := s.entries[id]
	return ok
}

// Entities 返回笔画已安装的碰撞体实体
func (s *DrawingSync) Entities(id ink.StrokeID) []ecs.EntityID {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	return e.entities
}

// Clear 移除所有笔画及其碰撞体
func (s *DrawingSync) Clear() {
	for id, e := range s.entries {
		s.destroy(e)
		delete(s.entries, id)
	}
	s.em.RemoveMarkedEntities()
}

func (s *DrawingSync) destroy(e *strokeEntry) {
	for _, id := range e.entities {
		if sb, ok := ecs.GetComponent[*components.StrokeBodyComponent](s.em, id); ok {
			s.world.RemoveBody(sb.Body)
		}
		s.em.DestroyEntity(id)
	}
	e.entities = nil
}

// installRecords 把碰撞体记录作为静态物体加入世界
func installRecords(em *ecs.EntityManager, world *physics.World, frame ink.Rect, records []geometry.BodyRecord, category types.ObjectType, preloaded bool) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(records))
	for _, rec := range records {
		id := em.CreateEntity()
		pos := geometry.ScenePosition(rec.Bounds, frame)
		body := world.AddBody(&physics.Body{
			Shape:    rec.Shape,
			Position: pos,
			Category: category,
			Friction: 0,
			UserData: id,
		})
		ecs.AddComponent(em, id, &components.StrokeBodyComponent{
			StrokeID:  rec.StrokeID,
			Category:  category,
			Bounds:    rec.Bounds,
			Body:      body,
			Preloaded: preloaded,
		})
		ecs.AddComponent(em, id, &components.PositionComponent{Pos: pos})
		ids = append(ids, id)
	}
	return ids
}
