// simulate 无界面地跑若干局游戏，用来调参数和复现问题
//
// 用法:
//
//	go run ./cmd/simulate [-seed N] [-runs 10] [-turn-every 20] [-max-frames 36000]
//
// 每局由一个简单的机器人操作：每隔固定帧数按一次键，靠近边界时提前转向。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/types"
)

// frameMillis 模拟的帧间隔（60 FPS）
const frameMillis = 1000.0 / 60

// Params 机器人参数
type Params struct {
	TurnEvery int // 每隔多少帧转一次向，0 表示只在靠近边界时转向
	MaxFrames int // 单局最多模拟的帧数
}

// RunSummary 一局的结果
type RunSummary struct {
	Seed     uint64
	Frames   int
	Score    int // 显示分数
	MaxCombo int
	Turns    int
	Distance float64
	CaughtBy string // "avalanche" / "trees" / "timeout"
}

// Simulate 用给定种子跑一局
func Simulate(cfg *config.GameConfig, seed uint64, p Params) RunSummary {
	s := game.NewSession(game.Options{
		Config: cfg,
		Rand:   types.NewRand(seed),
	})
	s.Start()

	sum := RunSummary{Seed: seed}
	clock := 0.0
	for sum.Frames < p.MaxFrames && s.Running() {
		clock += frameMillis
		sum.Frames++

		if shouldTurn(s, cfg, sum.Frames, p) && s.HandleDirectionInput() {
			sum.Turns++
		}
		s.AdvanceFrame(clock)

		if s.Combo > sum.MaxCombo {
			sum.MaxCombo = s.Combo
		}
	}

	sum.Score = s.HUD.DisplayScore(s.Score)
	sum.Distance = s.DistanceTraveled
	sum.CaughtBy = endReason(s)
	return sum
}

// endReason 一局的结束原因
// 最后一条命撞树后雪球播放结束动画，生命数停在 1，所以看 Dying 而不是 Lives
func endReason(s *game.Session) string {
	switch {
	case s.Running():
		return "timeout"
	case s.Player.Dying():
		return "trees"
	default:
		return "avalanche"
	}
}

// shouldTurn 靠近边界且朝着边界滚时转向，否则按固定节奏转向
func shouldTurn(s *game.Session, cfg *config.GameConfig, frame int, p Params) bool {
	hb := s.Player.Hitbox()
	margin := cfg.Screen.Width * 0.15
	switch {
	case s.Player.Direction == types.DirectionLeft && hb.X < margin:
		return true
	case s.Player.Direction == types.DirectionRight && hb.Right() > cfg.Screen.Width-margin:
		return true
	}
	return p.TurnEvery > 0 && frame%p.TurnEvery == 0
}

func main() {
	opts, err := config.LoadLaunchOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	opts.RegisterFlags(flag.CommandLine)
	runs := flag.Int("runs", 10, "模拟局数")
	turnEvery := flag.Int("turn-every", 20, "每隔多少帧转一次向（0 = 只躲边界）")
	maxFrames := flag.Int("max-frames", 60*60*10, "单局最多帧数")
	flag.Parse()

	if !opts.Verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if opts.ConfigPath != "" {
		if cfg, err = config.LoadGameConfig(opts.ConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
			os.Exit(1)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = 1
	}
	params := Params{TurnEvery: *turnEvery, MaxFrames: *maxFrames}

	fmt.Printf("%-6s %-8s %-8s %-6s %-6s %-10s %s\n", "seed", "frames", "score", "combo", "turns", "distance", "end")
	total := 0
	for i := 0; i < *runs; i++ {
		r := Simulate(cfg, seed+uint64(i), params)
		total += r.Score
		fmt.Printf("%-6d %-8d %-8d %-6d %-6d %-10.0f %s\n",
			r.Seed, r.Frames, r.Score, r.MaxCombo, r.Turns, r.Distance, r.CaughtBy)
	}
	if *runs > 0 {
		fmt.Printf("\naverage score: %d\n", total / *runs)
	}
}
