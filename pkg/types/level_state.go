package types

// LevelState 关卡状态
// 同一时刻只有一个值，属于单个关卡实例
type LevelState int

const (
	// StateNotStarted 关卡尚未开始（初始状态）
	StateNotStarted LevelState = iota
	// StateStarted 关卡进行中
	StateStarted
	// StateFailed 关卡失败（小球离开场地或碰到危险物）
	StateFailed
	// StateCompleted 关卡完成（所有小球到达终点）
	StateCompleted
	// StateTransitioning 正在切换到下一关
	StateTransitioning
)

// String 返回关卡状态的字符串表示
func (s LevelState) String() string {
	switch s {
	case StateNotStarted:
		return "notStarted"
	case StateStarted:
		return "started"
	case StateFailed:
		return "failed"
	case StateCompleted:
		return "completed"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}
