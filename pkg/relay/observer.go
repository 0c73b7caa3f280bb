package relay

import (
	"log"

	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/types"
)

// 消息类型
const (
	TypeState     = "state"
	TypeScore     = "score"
	TypeCompleted = "completed"
	TypeEffect    = "effect"
)

// StatePayload 状态消息
type StatePayload struct {
	LevelID string `json:"levelId"`
	State   string `json:"state"`
}

// ScorePayload 成绩消息
type ScorePayload struct {
	LevelID string     `json:"levelId"`
	Score   game.Score `json:"score"`
	Display string     `json:"display"` // m:ss
}

// Observer 把关卡事件转发到 Hub，实现 game.Observer 和 game.EffectObserver
//
// 成绩每帧都会更新，只有显示内容（m:ss 或笔画数）变化时才推送。
type Observer struct {
	hub     *Hub
	levelID string

	lastScore *game.Score
}

// NewObserver 创建转发观察者
func NewObserver(hub *Hub) *Observer {
	return &Observer{hub: hub}
}

// SetLevel 切换当前关卡ID，用于标记后续消息
func (o *Observer) SetLevel(levelID string) {
	o.levelID = levelID
	o.lastScore = nil
}

func (o *Observer) OnStateChanged(state types.LevelState) {
	o.send(TypeState, StatePayload{LevelID: o.levelID, State: state.String()})
}

func (o *Observer) OnScoreUpdated(score game.Score) {
	if o.lastScore != nil && o.lastScore.Strokes == score.Strokes && o.lastScore.TimeString() == score.TimeString() {
		return
	}
	o.lastScore = &score
	o.send(TypeScore, ScorePayload{LevelID: o.levelID, Score: score, Display: score.TimeString()})
}

func (o *Observer) OnLevelCompleted(score game.Score) {
	o.send(TypeCompleted, ScorePayload{LevelID: o.levelID, Score: score, Display: score.TimeString()})
}

func (o *Observer) OnEffect(effect game.Effect) {
	o.send(TypeEffect, effect)
}

func (o *Observer) send(msgType string, payload any) {
	if err := o.hub.Broadcast(msgType, payload); err != nil {
		log.Printf("[Relay] Failed to encode %s message: %v", msgType, err)
	}
}
