package config

import (
	"fmt"
	"path"

	"github.com/decker502/penball/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// CatalogEntry 关卡目录中的一项
type CatalogEntry struct {
	ID   string `yaml:"id"`   // 关卡ID，用于记录最佳成绩
	Name string `yaml:"name"` // 显示名称，为空时使用 ID
	File string `yaml:"file"` // 关卡文件，相对目录文件所在目录

	// AllowsDrawing 为 false 时玩家不能在该关卡绘图，默认 true
	AllowsDrawing *bool `yaml:"allowsDrawing,omitempty"`
}

// DrawingAllowed 是否允许绘图
func (e CatalogEntry) DrawingAllowed() bool {
	return e.AllowsDrawing == nil || *e.AllowsDrawing
}

// DisplayName 显示名称
func (e CatalogEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// LevelCatalog 有序的关卡目录
type LevelCatalog struct {
	Levels []CatalogEntry `yaml:"levels"`

	dir string
}

// LoadLevelCatalog 加载关卡目录文件
func LoadLevelCatalog(file string) (*LevelCatalog, error) {
	data, err := embedded.Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read level catalog %s: %w", file, err)
	}
	catalog, err := ParseLevelCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("level catalog %s: %w", file, err)
	}
	catalog.dir = path.Dir(file)
	return catalog, nil
}

// ParseLevelCatalog 解析并校验关卡目录
func ParseLevelCatalog(data []byte) (*LevelCatalog, error) {
	var catalog LevelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse level catalog YAML: %w", err)
	}
	if len(catalog.Levels) == 0 {
		return nil, fmt.Errorf("catalog has no levels")
	}
	ids := make(map[string]bool, len(catalog.Levels))
	for i, e := range catalog.Levels {
		if e.ID == "" {
			return nil, fmt.Errorf("level %d: id is required", i)
		}
		if e.File == "" {
			return nil, fmt.Errorf("level %q: file is required", e.ID)
		}
		if ids[e.ID] {
			return nil, fmt.Errorf("level %q: duplicate id", e.ID)
		}
		ids[e.ID] = true
	}
	return &catalog, nil
}

// IDs 按目录顺序返回关卡ID
func (c *LevelCatalog) IDs() []string {
	ids := make([]string, len(c.Levels))
	for i, e := range c.Levels {
		ids[i] = e.ID
	}
	return ids
}

// Index 返回关卡ID在目录中的下标，不存在时返回 -1
func (c *LevelCatalog) Index(id string) int {
	for i, e := range c.Levels {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// LoadLevel 加载目录中第 i 个关卡的定义
func (c *LevelCatalog) LoadLevel(i int) (*LevelDefinition, error) {
	if i < 0 || i >= len(c.Levels) {
		return nil, fmt.Errorf("level index %d out of range [0, %d)", i, len(c.Levels))
	}
	return LoadLevelDefinition(path.Join(c.dir, c.Levels[i].File))
}
