package main

import (
	"flag"
	"log"

	"github.com/decker502/motion/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	timelinePath := flag.String("config", "", "时间线配置文件路径（为空使用内置时间线）")
	timeline := flag.String("timeline", "", "启动时播放的时间线名字")
	flag.Parse()

	demo, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		TimelinePath: *timelinePath,
		Timeline:     *timeline,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Motion Demo")

	if err := ebiten.RunGame(demo); err != nil {
		log.Fatal(err)
	}
}
