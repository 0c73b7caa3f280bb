package components

import "github.com/decker502/penball/pkg/utils"

// LifetimeComponent 限时存在的实体（特效），到期后由 LifetimeSystem 销毁
type LifetimeComponent struct {
	Duration float64 // 存在时长（秒）
	Elapsed  float64
}

// Progress 已经过的比例，范围 [0, 1]
func (l *LifetimeComponent) Progress() float64 {
	return utils.Progress(l.Elapsed, l.Duration)
}

// Expired 是否已到期
func (l *LifetimeComponent) Expired() bool {
	return l.Elapsed >= l.Duration
}
