package config

import (
	"fmt"
	"math"

	"github.com/decker502/penball/pkg/embedded"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Vec2 YAML 中的二维向量
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec 转换为 mgl64.Vec2
func (v Vec2) Vec() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

// PhysicsConfig 关卡运行时的物理与表现参数
// 所有长度单位与场景坐标一致，时间单位为秒
type PhysicsConfig struct {
	Gravity  Vec2 `yaml:"gravity"`  // 重力加速度，场景空间 Y 轴向上
	SubSteps int  `yaml:"subSteps"` // 每次物理步进的子步数

	BallRadius      float64 `yaml:"ballRadius"`      // 小球半径（不含描边）
	BallLineWidth   float64 `yaml:"ballLineWidth"`   // 小球描边宽度，碰撞半径 = 半径 + 描边/2
	BallRestitution float64 `yaml:"ballRestitution"` // 小球弹性
	BallFriction    float64 `yaml:"ballFriction"`    // 小球摩擦

	BounceVelocity   float64 `yaml:"bounceVelocity"`   // 弹跳板赋予的向上速度
	GoalSnapDuration float64 `yaml:"goalSnapDuration"` // 小球吸附到终点的动画时长
	FadeOutDuration  float64 `yaml:"fadeOutDuration"`  // 小球碰到危险物后的淡出时长

	AlphaThreshold float64 `yaml:"alphaThreshold"` // 笔画光栅化透明度阈值
	RasterScale    float64 `yaml:"rasterScale"`    // 光栅化像素密度
	PlayfieldWidth float64 `yaml:"playfieldWidth"` // 场地宽度，高度取关卡的 sceneHeight
	BuildWorkers   int     `yaml:"buildWorkers"`   // 后台几何构建并发数

	SuccessEffectLifetime   float64 `yaml:"successEffectLifetime"`
	ExplosionEffectLifetime float64 `yaml:"explosionEffectLifetime"`
}

// DefaultPhysicsConfig 返回默认参数
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Gravity:                 Vec2{X: 0, Y: -980},
		SubSteps:                4,
		BallRadius:              20,
		BallLineWidth:           5,
		BallRestitution:         0.2,
		BallFriction:            0.2,
		BounceVelocity:          1000,
		GoalSnapDuration:        0.1,
		FadeOutDuration:         0.2,
		AlphaThreshold:          0.5,
		RasterScale:             1,
		PlayfieldWidth:          1024,
		BuildWorkers:            4,
		SuccessEffectLifetime:   1.0,
		ExplosionEffectLifetime: 1.0,
	}
}

// BodyRadius 小球碰撞半径
func (c *PhysicsConfig) BodyRadius() float64 {
	return c.BallRadius + c.BallLineWidth/2
}

// LoadPhysicsConfig 从YAML文件加载物理配置
// 文件中未出现的字段保留默认值
//
// 参数：
//
//	path - 配置文件路径，"data/" 开头时优先读取嵌入资源
//
// 返回：
//
//	*PhysicsConfig - 解析后的配置
//	error - 读取、解析或校验失败时返回错误
func LoadPhysicsConfig(path string) (*PhysicsConfig, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read physics config file %s: %w", path, err)
	}
	cfg, err := ParsePhysicsConfig(data)
	if err != nil {
		return nil, fmt.Errorf("physics config %s: %w", path, err)
	}
	return cfg, nil
}

// ParsePhysicsConfig 解析YAML数据，叠加在默认值之上
func ParsePhysicsConfig(data []byte) (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics config: %w", err)
	}
	return cfg, nil
}

// Validate 校验参数合法性
func (c *PhysicsConfig) Validate() error {
	finite := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
		return nil
	}
	if err := finite("gravity.x", c.Gravity.X); err != nil {
		return err
	}
	if err := finite("gravity.y", c.Gravity.Y); err != nil {
		return err
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("subSteps must be at least 1, got %d", c.SubSteps)
	}
	if c.BallRadius <= 0 {
		return fmt.Errorf("ballRadius must be positive, got %v", c.BallRadius)
	}
	if c.BallLineWidth < 0 {
		return fmt.Errorf("ballLineWidth cannot be negative, got %v", c.BallLineWidth)
	}
	if c.BallRestitution < 0 || c.BallRestitution > 1 {
		return fmt.Errorf("ballRestitution must be between 0 and 1, got %v", c.BallRestitution)
	}
	if c.BallFriction < 0 {
		return fmt.Errorf("ballFriction cannot be negative, got %v", c.BallFriction)
	}
	if c.GoalSnapDuration < 0 || c.FadeOutDuration < 0 {
		return fmt.Errorf("animation durations cannot be negative")
	}
	if c.AlphaThreshold <= 0 || c.AlphaThreshold > 1 {
		return fmt.Errorf("alphaThreshold must be in (0, 1], got %v", c.AlphaThreshold)
	}
	if c.RasterScale <= 0 {
		return fmt.Errorf("rasterScale must be positive, got %v", c.RasterScale)
	}
	if c.PlayfieldWidth <= 0 {
		return fmt.Errorf("playfieldWidth must be positive, got %v", c.PlayfieldWidth)
	}
	if c.BuildWorkers < 1 {
		return fmt.Errorf("buildWorkers must be at least 1, got %d", c.BuildWorkers)
	}
	return nil
}
