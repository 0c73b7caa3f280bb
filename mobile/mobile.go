//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 构建前需要把 data/ 复制到本目录：
//
//	cp -r data mobile/data
//	ebitenmobile bind -target android -tags mobile -javapkg com.decker.penball -o build/android/penball.aar ./mobile
package mobile

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/penball/pkg/app"
	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端没有命令行参数，只读取默认值
	cfg, err := config.ParseAppConfig(flag.NewFlagSet("mobile", flag.ContinueOnError), nil)
	if err != nil {
		log.Fatalf("配置错误: %v", err)
	}
	cfg.Verbose = true

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
