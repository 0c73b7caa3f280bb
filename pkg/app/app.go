// Package app 提供游戏应用的核心包装器
//
// 该包把关卡运行时接到 Ebitengine 的主循环上：画笔输入、绘制、提示音、
// 最佳成绩存档和可选的事件转播。桌面端通过 main.go 调用 NewApp()。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/relay"
	"github.com/decker502/penball/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// App 游戏应用，实现 ebiten.Game 接口
type App struct {
	sceneManager *SceneManager
	width        int
	height       int

	hub    *relay.Hub
	server *http.Server
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg config.AppConfig) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	physics, err := config.LoadPhysicsConfig(cfg.PhysicsFile)
	if err != nil {
		return nil, fmt.Errorf("物理配置加载失败: %w", err)
	}
	catalog, err := config.LoadLevelCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("关卡目录加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d levels from %s", len(catalog.Levels), cfg.CatalogFile)

	bests, _ := game.NewBestScoreManager(openSaveStorage(cfg.SaveName))

	a := &App{
		sceneManager: NewSceneManager(),
		width:        cfg.Width,
		height:       cfg.Height,
	}

	deps := &sceneDeps{
		physics: physics,
		catalog: catalog,
		bests:   bests,
		sounds:  NewSoundBank(audio.NewContext(SampleRate), 0.6),
		scenes:  a.sceneManager,
	}
	if cfg.RelayAddr != "" {
		a.hub = relay.NewHub()
		deps.relay = relay.NewObserver(a.hub)
		a.startRelay(cfg.RelayAddr)
	}

	a.sceneManager.SetSceneFactory(func(index int) Scene {
		scene, err := newLevelScene(deps, index)
		if err != nil {
			log.Printf("[App] Failed to load level #%d: %v", index, err)
			return nil
		}
		return scene
	})

	start := bests.NextLevelIndex(catalog.IDs())
	if cfg.Level != "" {
		if i := catalog.Index(cfg.Level); i >= 0 {
			start = i
		} else {
			log.Printf("[App] Unknown level %q, falling back to catalog order", cfg.Level)
		}
	}
	if start >= len(catalog.Levels) {
		start = 0
	}
	log.Printf("[App] Starting level: %s", catalog.Levels[start].ID)
	if !a.sceneManager.LoadLevel(start) {
		a.Close()
		return nil, fmt.Errorf("关卡 %s 加载失败", catalog.Levels[start].ID)
	}
	return a, nil
}

// openSaveStorage 打开存档，失败时返回 nil（最佳成绩只保存在内存中）
func openSaveStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open save storage: %v (best scores will not persist)", err)
		return nil
	}
	return m
}

// startRelay 在后台监听转播连接
func (a *App) startRelay(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/ws", a.hub)
	a.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("[Relay] Listening on %s/ws", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[Relay] Server stopped: %v", err)
		}
	}()
}

// Close 关闭当前场景和转播服务
func (a *App) Close() {
	if c, ok := a.sceneManager.CurrentScene().(Closer); ok {
		c.Close()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.server != nil {
		a.server.Close()
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，即绘图坐标系
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
