// verify_level 无界面运行一个关卡，打印状态转换和最终成绩
//
// 用法:
//
//	go run ./cmd/verify_level [-ticks 600] [-start=false] [-physics data/physics.yaml] [-drawing 绘图.yaml] <关卡文件>
//
// -drawing 指定的文件内容为 strokes 列表（与关卡文件 drawing 字段格式相同），
// 在开始前作为玩家绘图提交，等待后台构建完成后再开始模拟。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/penball/pkg/config"
	"github.com/decker502/penball/pkg/embedded"
	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"gopkg.in/yaml.v3"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	ticks       = flag.Int("ticks", 600, "模拟帧数")
	tps         = flag.Int("tps", 60, "每秒帧数")
	start       = flag.Bool("start", true, "加载后立即开始")
	physicsFile = flag.String("physics", "data/physics.yaml", "物理配置文件")
	drawingFile = flag.String("drawing", "", "开始前提交的玩家绘图文件（YAML）")
)

// printer 把事件打印到标准输出
type printer struct {
	tick *int
	tps  int
}

func (p *printer) OnStateChanged(state types.LevelState) {
	fmt.Printf("[%6.2fs] 状态 -> %s\n", float64(*p.tick)/float64(p.tps), state)
}

func (p *printer) OnScoreUpdated(game.Score) {}

func (p *printer) OnLevelCompleted(score game.Score) {
	fmt.Printf("[%6.2fs] 通关: 用时 %s (%.3fs), 笔画 %d\n", float64(*p.tick)/float64(p.tps), score.TimeString(), score.Time, score.Strokes)
}

func (p *printer) OnEffect(effect game.Effect) {
	fmt.Printf("[%6.2fs] 特效 %s: 小球 %d 位于 (%.1f, %.1f)\n",
		float64(*p.tick)/float64(p.tps), effect.Kind, effect.BallID, effect.Position.X(), effect.Position.Y())
}

// loadDrawing 读取玩家绘图，所有笔画标记为玩家绘制
func loadDrawing(path string) (ink.Drawing, error) {
	var d ink.Drawing
	data, err := embedded.Load(path)
	if err != nil {
		return d, fmt.Errorf("failed to read drawing %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to parse drawing %s: %w", path, err)
	}
	for i := range d.Strokes {
		d.Strokes[i].Category = types.ObjectUserDrawn
	}
	return d, nil
}

func main() {
	os.Exit(run())
}

// run 返回进程退出码：0 通关，1 参数或加载错误，2 未通关
func run() int {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Println("用法: go run ./cmd/verify_level [flags] <关卡文件>")
		flag.PrintDefaults()
		return 1
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadPhysicsConfig(*physicsFile)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("物理配置加载失败，使用默认值: %v", err)
		cfg = config.DefaultPhysicsConfig()
	}

	def, err := config.LoadLevelDefinition(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "关卡加载失败: %v\n", err)
		return 1
	}

	tick := 0
	p := &printer{tick: &tick, tps: *tps}
	level := game.NewLevel(cfg)
	defer level.Close()
	level.SetObserver(p)
	if err := level.LoadLevel(def); err != nil {
		fmt.Fprintf(os.Stderr, "关卡初始化失败: %v\n", err)
		return 1
	}

	fmt.Printf("关卡: %s\n", flag.Arg(0))
	fmt.Printf("小球: %d, 预置笔画: %d\n", len(def.Balls), len(def.CategorizedStrokes()))

	if *drawingFile != "" {
		drawing, err := loadDrawing(*drawingFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "绘图加载失败: %v\n", err)
			return 1
		}
		level.SetDrawing(drawing)
		level.WaitForBuilds()
		level.Update(0)
		for _, s := range drawing.Strokes {
			fmt.Printf("  笔画 %v: 碰撞体已安装=%v\n", s.ID, level.HasStrokeGeometry(s.ID))
		}
		fmt.Printf("笔画数: %d, 玩家笔画碰撞体: %d\n", level.Score().Strokes, level.StrokeBodyCount())
	}

	if *start {
		level.SetState(types.StateStarted)
	}

	dt := 1.0 / float64(*tps)
	for tick = 1; tick <= *ticks; tick++ {
		level.Update(dt)
		if level.State() == types.StateCompleted {
			break
		}
	}

	fmt.Printf("\n最终状态: %s\n", level.State())
	for _, b := range level.Balls() {
		fmt.Printf("  小球 %d: (%.1f, %.1f) 完成=%v 销毁=%v\n", b.ID, b.Position.X(), b.Position.Y(), b.Completed, b.Dead)
	}
	final := level.Score()
	fmt.Printf("成绩: %s / %d 笔画\n", final.TimeString(), final.Strokes)
	if level.State() != types.StateCompleted {
		return 2
	}
	return 0
}
