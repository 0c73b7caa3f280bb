package game

import (
	"fmt"
	"math"
)

// Score 一次关卡尝试的成绩
type Score struct {
	Time    float64 `yaml:"time" json:"time"`       // 用时（秒）
	Strokes int     `yaml:"strokes" json:"strokes"` // 笔画数
}

// IsBestTime 用时是否不差于记录（持平也算最佳）
func (s Score) IsBestTime(best Score) bool {
	return s.Time <= best.Time
}

// IsBestStrokes 笔画数是否不差于记录（持平也算最佳）
func (s Score) IsBestStrokes(best Score) bool {
	return s.Strokes <= best.Strokes
}

// MergeBest 合并最佳成绩
// 用时和笔画数分别取最小值，两者不要求来自同一次尝试。
// old 为 nil 表示首次完成，直接记录 cur。
func MergeBest(old *Score, cur Score) Score {
	if old == nil {
		return cur
	}
	merged := *old
	if cur.Time < merged.Time {
		merged.Time = cur.Time
	}
	if cur.Strokes < merged.Strokes {
		merged.Strokes = cur.Strokes
	}
	return merged
}

// TimeString 以 m:ss 格式显示用时
func (s Score) TimeString() string {
	total := 0
	if s.Time > 0 {
		total = int(math.Floor(s.Time))
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
