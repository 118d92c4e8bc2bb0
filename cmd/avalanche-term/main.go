// avalanche-term 在终端里玩 A'valanche
//
// 用法:
//
//	go run ./cmd/avalanche-term [-seed N] [-debug] [-mute] [-verbose]
//
// 回车或鼠标左键相当于点击，其他按键转向，Esc 退出。
// 详细日志写入 avalanche-term.log（终端被游戏画面占用）。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/tui"
	"github.com/decker502/avalanche/pkg/types"
	"github.com/gdamore/tcell/v2"
)

const (
	defaultConfigPath  = "data/game_config.yaml"
	defaultSpritesPath = "data/sprites.yaml"
	logFile            = "avalanche-term.log"
)

func main() {
	opts, err := config.LoadLaunchOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	opts.RegisterFlags(flag.CommandLine)
	mute := flag.Bool("mute", false, "不初始化扬声器")
	flag.Parse()

	closeLog := setupLogging(opts.Verbose)
	defer closeLog()

	if err := run(opts, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "avalanche-term: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging 详细模式写日志文件，否则丢弃
func setupLogging(verbose bool) func() {
	if !verbose {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func run(opts config.LaunchOptions, mute bool) error {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.LoadGameConfig(configPath)
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
		cfg = config.DefaultGameConfig()
	}
	sheets, err := config.LoadSpriteSheets(defaultSpritesPath)
	if err != nil {
		log.Printf("[Main] Warning: %v (using built-in sprites)", err)
		sheets = config.DefaultSpriteSheets()
	}

	gameState := game.NewGameState(game.AppName)

	var audio *tui.BeepAudio
	if !mute {
		audio = tui.NewBeepAudio(gameState.GetSettingsManager())
		if err := audio.Init(); err != nil {
			log.Printf("[Main] Warning: %v (sound disabled)", err)
		}
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = types.NewRand(opts.Seed)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	g := tui.NewGame(screen, tui.Options{
		Config:    cfg,
		Sheets:    sheets,
		GameState: gameState,
		Audio:     audio,
		Rand:      rng,
		Debug:     opts.Debug,
	})
	return g.Run()
}
