package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/penball/pkg/app"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	cfg, err := config.ParseAppConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("配置错误: %v", err)
	}

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Penball")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
