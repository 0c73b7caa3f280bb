package game

import (
	"testing"

	"github.com/decker502/penball/internal/physics"
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/geometry"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

type syncFixture struct {
	em    *ecs.EntityManager
	world *physics.World
	queue *BuildQueue
	sync  *DrawingSync
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	world := physics.NewWorld(mgl64.Vec2{}, 1)
	queue := NewBuildQueue(2, geometry.Options{})
	t.Cleanup(queue.Close)
	frame := ink.Rect{MinX: 0, MinY: 0, MaxX: 1024, MaxY: 768}
	return &syncFixture{em: em, world: world, queue: queue, sync: NewDrawingSync(em, world, queue, frame)}
}

// settle 等待构建完成并安装
func (f *syncFixture) settle() int {
	f.queue.Wait()
	return f.sync.Install(f.queue.Drain())
}

func TestDrawingSyncInstallsCategorizedStrokes(t *testing.T) {
	f := newSyncFixture(t)

	decorative := zigzag(2)
	decorative.Category = 0
	hazard := zigzag(3)
	hazard.Category = types.ObjectHazard

	added := f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{zigzag(1), decorative, hazard}}, []float64{50})
	if added != 2 {
		t.Errorf("Apply() = %d, want 2", added)
	}
	if f.sync.Tracks(2) {
		t.Error("Decorative stroke should not be tracked")
	}
	if n := f.settle(); n != 6 {
		t.Errorf("Install() = %d bodies, want 6", n)
	}
	if f.world.Len() != 6 {
		t.Errorf("World should hold 6 bodies, got %d", f.world.Len())
	}

	for _, id := range f.sync.Entities(3) {
		sb, ok := ecs.GetComponent[*components.StrokeBodyComponent](f.em, id)
		if !ok {
			t.Fatalf("Entity %d has no stroke body", id)
		}
		if sb.Category != types.ObjectHazard || sb.Body.Dynamic || sb.Preloaded {
			t.Errorf("Unexpected stroke body %+v", sb)
		}
		if sb.Body.UserData != id {
			t.Errorf("Body should point back to its entity")
		}
	}
}

func TestDrawingSyncScenePosition(t *testing.T) {
	f := newSyncFixture(t)

	s := ink.Stroke{ID: 1, Ink: ink.Ink{Width: 10}, Points: []ink.Point{{X: 100, Y: 68}, {X: 300, Y: 68}}, Category: types.ObjectUserDrawn}
	f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{s}}, nil)
	f.settle()

	ids := f.sync.Entities(1)
	if len(ids) != 1 {
		t.Fatalf("Expected 1 entity, got %d", len(ids))
	}
	sb, _ := ecs.GetComponent[*components.StrokeBodyComponent](f.em, ids[0])
	// 绘图 y=68 在场景中为 768-68
	want := mgl64.Vec2{200, 700}
	if !sb.Body.Position.ApproxEqualThreshold(want, 1) {
		t.Errorf("Body position = %v, want about %v", sb.Body.Position, want)
	}
}

func TestDrawingSyncRemovesErased(t *testing.T) {
	f := newSyncFixture(t)

	f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{zigzag(1), zigzag(2)}}, nil)
	f.settle()

	added := f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{zigzag(2)}}, nil)
	if added != 0 {
		t.Errorf("Erasing should not add strokes, got %d", added)
	}
	if f.sync.Tracks(1) || f.sync.Count() != 1 {
		t.Errorf("Stroke 1 should be gone, count=%d", f.sync.Count())
	}
	if f.world.Len() != 1 {
		t.Errorf("World should hold 1 body, got %d", f.world.Len())
	}
	if got := len(ecs.GetEntitiesWith1[*components.StrokeBodyComponent](f.em)); got != 1 {
		t.Errorf("Expected 1 stroke body entity, got %d", got)
	}

	f.sync.Clear()
	if f.world.Len() != 0 || f.sync.Count() != 0 || f.em.Count() != 0 {
		t.Errorf("Clear() left state behind: bodies=%d tracked=%d entities=%d", f.world.Len(), f.sync.Count(), f.em.Count())
	}
}

func TestDrawingSyncDiscardsStaleResults(t *testing.T) {
	f := newSyncFixture(t)

	f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{zigzag(1)}}, nil)
	f.queue.Wait()
	stale := f.queue.Drain()

	// 擦除后重画：旧结果令牌不再匹配
	f.sync.Apply(ink.Drawing{}, nil)
	f.sync.Apply(ink.Drawing{Strokes: []ink.Stroke{zigzag(1)}}, nil)
	if n := f.sync.Install(stale); n != 0 {
		t.Errorf("Stale result installed %d bodies", n)
	}

	if n := f.settle(); n != 1 {
		t.Errorf("Fresh result should install 1 body, got %d", n)
	}
	// 重复安装被忽略
	if n := f.sync.Install(stale); n != 0 {
		t.Errorf("Duplicate install added %d bodies", n)
	}
	if f.world.Len() != 1 {
		t.Errorf("World should hold 1 body, got %d", f.world.Len())
	}
}
