// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/decker502/motion/pkg/config"
	"github.com/decker502/motion/pkg/ecs"
	"github.com/decker502/motion/pkg/game"
	"github.com/decker502/motion/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 窗口逻辑尺寸
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// 逻辑帧固定步长（秒）
const tickStep = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// TimelinePath 指定时间线配置文件，为空则使用内置时间线
	TimelinePath string
	// Timeline 指定启动时播放的时间线名字，为空则从设置恢复或播放全部
	Timeline string
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	engine   *game.Engine
	clock    *game.SteppedClock
	settings *game.SettingsManager
	sprite   *ebiten.Image
	verbose  bool
}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化 gdata 存储，失败时降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "motion_demo",
	})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败: %v (设置不会持久化)", err)
		gdataManager = nil
	}

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: 设置加载失败: %v", err)
	}

	// 加载时间线配置
	var timelines *config.TimelineConfigFile
	if cfg.TimelinePath != "" {
		timelines, err = config.LoadTimelineConfig(cfg.TimelinePath)
		if err != nil {
			return nil, fmt.Errorf("时间线配置加载失败: %w", err)
		}
	} else {
		timelines = config.DefaultTimelineConfig()
	}

	engine := game.NewEngine()

	// 确定要播放的时间线
	names := timelines.Names()
	if cfg.Timeline != "" {
		names = []string{cfg.Timeline}
	} else if last := settings.Settings().LastTimeline; last != "" {
		if _, ok := timelines.Timelines[last]; ok {
			names = []string{last}
			log.Printf("[App] 从设置恢复时间线: %s", last)
		}
	}

	// 为每条时间线创建一个目标并启动动作
	for i, name := range names {
		a, err := timelines.BuildTimeline(name)
		if err != nil {
			return nil, fmt.Errorf("时间线 '%s' 编译失败: %w", name, err)
		}

		node := engine.Nodes().CreateNode()
		node.SetPosition(types.Vec3{
			X: 120,
			Y: float64(120 + i*140),
		})

		// 全局播放倍率
		if rate := settings.Settings().PlaybackSpeed; rate > 0 && rate != 1 {
			a.SetSpeed(rate)
		}

		if err := engine.Play(a, node, false); err != nil {
			return nil, fmt.Errorf("时间线 '%s' 启动失败: %w", name, err)
		}
		log.Printf("[App] 播放时间线 '%s' (target=%d)", name, node.ID())
	}

	// 演示定时器：每 5 秒输出一次运行状态
	_, err = engine.Scheduler().ScheduleInterval(func(now float64) {
		log.Printf("[App] t=%.1fs targets=%d", now, engine.Nodes().Len())
	}, 5.0)
	if err != nil {
		return nil, fmt.Errorf("状态定时器注册失败: %w", err)
	}

	// 目标的占位图形
	sprite := ebiten.NewImage(32, 32)
	sprite.Fill(color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff})

	return &App{
		engine:   engine,
		clock:    game.NewSteppedClock(tickStep),
		settings: settings,
		sprite:   sprite,
		verbose:  cfg.Verbose,
	}, nil
}

// Engine 返回帧驱动引擎
func (a *App) Engine() *game.Engine {
	return a.engine
}

// Update 推进一个逻辑帧
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.engine.Tick(a.clock.Step())
	return nil
}

// Draw 绘制所有目标
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x20, G: 0x24, B: 0x28, A: 0xff})

	w, h := a.sprite.Bounds().Dx(), a.sprite.Bounds().Dy()
	a.engine.Nodes().Each(func(n *ecs.Node) {
		pos := n.Position()
		rot := n.Rotation()
		scale := n.Scale()

		op := &ebiten.DrawImageOptions{}
		// 以图形中心为锚点应用缩放和绕 Z 轴的旋转
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(scale.X, scale.Y)
		op.GeoM.Rotate(rot.Z * math.Pi / 180)
		op.GeoM.Translate(pos.X, pos.Y)
		screen.DrawImage(a.sprite, op)
	})
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
