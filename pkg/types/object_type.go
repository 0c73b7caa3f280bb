// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ObjectType 物体类别位集合
// 同时用作物理体的碰撞类别（category）和碰撞/接触过滤掩码。
// 位值是持久化格式的一部分，不能修改。
type ObjectType uint32

const (
	// ObjectBall 小球
	ObjectBall ObjectType = 1 << iota
	// ObjectUserDrawn 玩家绘制的障碍物
	ObjectUserDrawn
	// ObjectFinish 终点（小球的目标区域）
	ObjectFinish
	// ObjectPreloadedObstacle 关卡预置的障碍物
	ObjectPreloadedObstacle
	// ObjectHazard 危险物，小球碰到即失败
	ObjectHazard
	// ObjectBouncePad 弹跳板
	ObjectBouncePad
)

const (
	// ObjectObstacles 所有会与小球发生物理碰撞的障碍物
	ObjectObstacles = ObjectUserDrawn | ObjectPreloadedObstacle

	// ObjectBallContactTest 小球需要接触通知的类别
	ObjectBallContactTest = ObjectFinish | ObjectHazard | ObjectBouncePad
)

var objectTypeNames = []struct {
	bit  ObjectType
	name string
}{
	{ObjectBall, "ball"},
	{ObjectUserDrawn, "userDrawn"},
	{ObjectFinish, "finish"},
	{ObjectPreloadedObstacle, "preloadedObstacle"},
	{ObjectHazard, "hazard"},
	{ObjectBouncePad, "bouncePad"},
}

// Union 返回两个集合的并集
func (t ObjectType) Union(other ObjectType) ObjectType {
	return t | other
}

// Contains 判断 t 是否包含 other 的全部位
func (t ObjectType) Contains(other ObjectType) bool {
	return t&other == other
}

// Intersects 判断两个集合是否有交集
func (t ObjectType) Intersects(other ObjectType) bool {
	return t&other != 0
}

// IsEmpty 空集合表示纯装饰笔画，不生成碰撞体
func (t ObjectType) IsEmpty() bool {
	return t == 0
}

// String 返回形如 "ball|finish" 的可读表示
func (t ObjectType) String() string {
	if t == 0 {
		return "none"
	}
	parts := make([]string, 0, 2)
	rest := t
	for _, n := range objectTypeNames {
		if t&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseObjectType 根据类别名解析，如 "hazard"、"bouncePad"
func ParseObjectType(name string) (ObjectType, error) {
	for _, n := range objectTypeNames {
		if strings.EqualFold(n.name, name) {
			return n.bit, nil
		}
	}
	return 0, fmt.Errorf("unknown object type %q", name)
}

// UnmarshalYAML 同时接受原始整数位值和类别名
func (t *ObjectType) UnmarshalYAML(value *yaml.Node) error {
	var raw uint32
	if err := value.Decode(&raw); err == nil {
		*t = ObjectType(raw)
		return nil
	}

	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("object type must be an integer or a name: %w", err)
	}
	parsed, err := ParseObjectType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
