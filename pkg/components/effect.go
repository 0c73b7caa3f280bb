package components

import (
	"github.com/decker502/penball/pkg/ecs"
	"github.com/decker502/penball/pkg/ink"
)

// EffectKind 特效类型
type EffectKind int

const (
	EffectSuccess   EffectKind = iota // 到达终点
	EffectExplosion                   // 碰到危险物
)

// String 返回特效名称
func (k EffectKind) String() string {
	switch k {
	case EffectSuccess:
		return "success"
	case EffectExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// EffectComponent 视觉特效
// Follow 非零时特效跟随该实体移动，否则停留在创建时的位置
type EffectComponent struct {
	Kind   EffectKind
	Color  ink.Color
	Follow ecs.EntityID
}

// MarshalText 以名称序列化
func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
