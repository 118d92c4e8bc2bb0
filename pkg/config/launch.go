package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvVerbose = "AVALANCHE_VERBOSE"
	EnvDebug   = "AVALANCHE_DEBUG"
	EnvSeed    = "AVALANCHE_SEED"
	EnvConfig  = "AVALANCHE_CONFIG"
)

// LaunchOptions 桌面端、终端前端和模拟器共用的启动参数
//
// 优先级：命令行参数 > 环境变量 > .env 文件 > 默认值
type LaunchOptions struct {
	Verbose    bool
	Debug      bool
	Seed       uint64 // 0 表示使用时间种子
	ConfigPath string // 为空表示 data/game_config.yaml
}

// LoadLaunchOptions 读取 .env 文件（可选）和 AVALANCHE_* 环境变量
//
// 不指定文件时读取当前目录的 .env；文件不存在不算错误。
// .env 不会覆盖已经设置的环境变量。
func LoadLaunchOptions(envFiles ...string) (LaunchOptions, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	var errs []error
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to load %s: %w", file, err))
		}
	}

	opts := LaunchOptions{
		Verbose:    envBool(EnvVerbose),
		Debug:      envBool(EnvDebug),
		ConfigPath: os.Getenv(EnvConfig),
	}
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err))
		} else {
			opts.Seed = seed
		}
	}
	return opts, errors.Join(errs...)
}

// RegisterFlags 注册命令行参数，当前值作为默认值
func (o *LaunchOptions) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&o.Verbose, "verbose", o.Verbose, "显示详细日志 ("+EnvVerbose+")")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "显示碰撞盒和调试信息 ("+EnvDebug+")")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "障碍物随机种子，0 表示随机 ("+EnvSeed+")")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "游戏参数文件 ("+EnvConfig+")")
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
