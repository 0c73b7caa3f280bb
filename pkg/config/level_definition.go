package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/penball/pkg/embedded"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel 关卡定义不合法
// 具体原因通过 %w 包装在错误信息中
var ErrInvalidLevel = errors.New("invalid level definition")

// BallDefinition 小球定义
// Start 和 End 使用场景坐标（Y 轴向上）
type BallDefinition struct {
	Start Vec2      `yaml:"start"`
	End   Vec2      `yaml:"end"`
	Color ink.Color `yaml:"color"`
}

// BallPoint 选择小球的起点或终点（关卡编辑时使用）
type BallPoint int

const (
	BallStart BallPoint = iota
	BallEnd
)

// Point 返回选中的点
func (b *BallDefinition) Point(which BallPoint) Vec2 {
	switch which {
	case BallEnd:
		return b.End
	default:
		return b.Start
	}
}

// SetPoint 修改选中的点
func (b *BallDefinition) SetPoint(which BallPoint, v Vec2) {
	switch which {
	case BallEnd:
		b.End = v
	default:
		b.Start = v
	}
}

// LevelDefinition 关卡定义（持久化格式）
type LevelDefinition struct {
	// Drawing 关卡自带的绘图，使用绘图坐标（Y 轴向下）
	Drawing ink.Drawing `yaml:"drawing"`
	// StrokeTypes 笔画ID到物体类别的映射，未出现的笔画只作装饰
	StrokeTypes map[ink.StrokeID]types.ObjectType `yaml:"strokeTypes,omitempty"`
	// Balls 小球列表，小球ID为下标+1
	Balls []BallDefinition `yaml:"balls"`
	// SceneHeight 编辑时的场景高度，用于绘图坐标与场景坐标互换
	SceneHeight float64 `yaml:"sceneHeight"`
}

// LoadLevelDefinition 从YAML文件加载关卡定义
//
// 参数：
//
//	path - 关卡文件路径，"data/" 开头时优先读取嵌入资源
//
// 返回：
//
//	*LevelDefinition - 已校验的关卡定义
//	error - 读取失败，或包装了 ErrInvalidLevel 的校验错误
func LoadLevelDefinition(path string) (*LevelDefinition, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	def, err := ParseLevelDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return def, nil
}

// ParseLevelDefinition 解析并校验YAML格式的关卡定义
func ParseLevelDefinition(data []byte) (*LevelDefinition, error) {
	var def LevelDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse level YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Marshal 序列化为YAML
func (d *LevelDefinition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// BallID 返回第 i 个小球的ID（从1开始）
func BallID(i int) int {
	return i + 1
}

// Frame 关卡的场景框架（绘图坐标），宽度由调用方给出
func (d *LevelDefinition) Frame(width float64) ink.Rect {
	return ink.Rect{MaxX: width, MaxY: d.SceneHeight}
}

// CategorizedStrokes 返回所有带类别的笔画，Category 字段已填充
func (d *LevelDefinition) CategorizedStrokes() []ink.Stroke {
	out := make([]ink.Stroke, 0, len(d.StrokeTypes))
	for _, s := range d.Drawing.Strokes {
		category, ok := d.StrokeTypes[s.ID]
		if !ok {
			continue
		}
		s.Category = category
		out = append(out, s)
	}
	return out
}

// Validate 校验关卡定义
// 所有错误都包装 ErrInvalidLevel
func (d *LevelDefinition) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...))
	}

	if !(d.SceneHeight > 0) || math.IsInf(d.SceneHeight, 0) {
		return invalid("sceneHeight must be positive, got %v", d.SceneHeight)
	}
	if len(d.Balls) == 0 {
		return invalid("at least one ball is required")
	}
	for i, b := range d.Balls {
		for _, v := range []float64{b.Start.X, b.Start.Y, b.End.X, b.End.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalid("ball %d: start and end must be finite", BallID(i))
			}
		}
	}

	seen := make(map[ink.StrokeID]bool, len(d.Drawing.Strokes))
	for i, s := range d.Drawing.Strokes {
		if seen[s.ID] {
			return invalid("stroke %d: duplicate id %v", i, s.ID)
		}
		seen[s.ID] = true
		if len(s.Points) == 0 {
			return invalid("stroke %v: no points", s.ID)
		}
		if s.Ink.Width < 0 {
			return invalid("stroke %v: negative ink width", s.ID)
		}
	}
	for id, category := range d.StrokeTypes {
		if !seen[id] {
			return invalid("strokeTypes: unknown stroke %v", id)
		}
		if category.IsEmpty() {
			return invalid("strokeTypes: stroke %v has empty category", id)
		}
		if category.Contains(types.ObjectBall) {
			return invalid("strokeTypes: stroke %v cannot be a ball", id)
		}
	}
	return nil
}
