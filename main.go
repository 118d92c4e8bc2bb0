package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/decker502/avalanche/pkg/app"
	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts, err := config.LoadLaunchOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "警告: %v\n", err)
	}
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// assets/ 存在时从磁盘读取美术和音效资源
	var assetsFS fs.FS
	if info, err := os.Stat("assets"); err == nil && info.IsDir() {
		assetsFS = os.DirFS(".")
	}
	embedded.Init(dataFS, assetsFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    opts.Verbose,
		Debug:      opts.Debug,
		Seed:       opts.Seed,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("A'valanche")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 日志可能已被静默，错误直接写到 stderr
	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "游戏异常退出: %v\n", err)
		os.Exit(1)
	}
}
