package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig 程序启动配置
// 优先级：命令行参数 > 环境变量（含 .env 文件）> 默认值
type AppConfig struct {
	Verbose     bool   `env:"PENBALL_VERBOSE"`
	Level       string `env:"PENBALL_LEVEL"` // 启动时直接进入的关卡ID，为空时进入下一个未完成的关卡
	PhysicsFile string `env:"PENBALL_PHYSICS_FILE" envDefault:"data/physics.yaml"`
	CatalogFile string `env:"PENBALL_CATALOG_FILE" envDefault:"data/levels/index.yaml"`
	SaveName    string `env:"PENBALL_SAVE_NAME"    envDefault:"penball"` // 最佳成绩存档的应用名
	RelayAddr   string `env:"PENBALL_RELAY_ADDR"`                        // 事件转播地址，为空时不启动
	Width       int    `env:"PENBALL_WIDTH"        envDefault:"1024"`
	Height      int    `env:"PENBALL_HEIGHT"       envDefault:"768"`
}

// LoadDotEnv 加载 .env 文件（不存在时忽略）
// 已存在的环境变量不会被覆盖
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	log.Printf("[App] Loaded environment from %v", existing)
	return nil
}

// ParseAppConfig 从环境变量读取配置，再用命令行参数覆盖
func ParseAppConfig(fs *flag.FlagSet, args []string) (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable verbose logging")
	fs.StringVar(&cfg.Level, "level", cfg.Level, "Level ID to open on start")
	fs.StringVar(&cfg.PhysicsFile, "physics", cfg.PhysicsFile, "Physics config file")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "Level catalog file")
	fs.StringVar(&cfg.RelayAddr, "relay", cfg.RelayAddr, "Listen address for the event relay (e.g. :8080)")
	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return AppConfig{}, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
