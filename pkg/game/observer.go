package game

import (
	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
)

// Observer 接收关卡运行时的事件
// 所有回调都在调用 Update/SetState/LoadLevel 的线程上同步触发
type Observer interface {
	// OnStateChanged 每次实际发生状态转换时触发
	OnStateChanged(state types.LevelState)
	// OnScoreUpdated 运行中每帧触发一次，重置时触发一次
	OnScoreUpdated(score Score)
	// OnLevelCompleted 每次进入 completed 时触发一次，携带最终成绩
	OnLevelCompleted(score Score)
}

// Effect 视觉/音效提示
type Effect struct {
	Kind     components.EffectKind `json:"kind"`
	BallID   int                   `json:"ballId"`
	Position mgl64.Vec2            `json:"position"` // 场景坐标
	Color    ink.Color             `json:"color"`
}

// EffectObserver 可选扩展，实现该接口的观察者会收到特效事件
type EffectObserver interface {
	OnEffect(effect Effect)
}

// MultiObserver 把事件转发给多个观察者
type MultiObserver []Observer

func (m MultiObserver) OnStateChanged(state types.LevelState) {
	for _, o := range m {
		o.OnStateChanged(state)
	}
}

func (m MultiObserver) OnScoreUpdated(score Score) {
	for _, o := range m {
		o.OnScoreUpdated(score)
	}
}

func (m MultiObserver) OnLevelCompleted(score Score) {
	for _, o := range m {
		o.OnLevelCompleted(score)
	}
}

func (m MultiObserver) OnEffect(effect Effect) {
	for _, o := range m {
		if eo, ok := o.(EffectObserver); ok {
			eo.OnEffect(effect)
		}
	}
}
