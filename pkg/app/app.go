// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/resources"
	"github.com/decker502/avalanche/pkg/scenes"
	"github.com/decker502/avalanche/pkg/sfx"
	"github.com/decker502/avalanche/pkg/types"
	"github.com/decker502/avalanche/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ResourceConfigPath 资源清单位置
const ResourceConfigPath = "data/resources.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 显示碰撞盒和调试信息
	Debug bool
	// Seed 障碍物随机种子，0 表示使用时间种子
	Seed uint64
	// ConfigPath 游戏参数文件，为空时使用 data/game_config.yaml
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *scenes.SceneManager
	gameState                *game.GameState
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	audioContext := audio.NewContext(int(sfx.SampleRate))
	resourceManager := resources.NewResourceManager(audioContext)

	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	// Android 上 gdata 不会自己创建存储目录
	if err := utils.EnsureStorageDir(game.AppName); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage at %s", path)
	}
	gameState := game.NewGameState(game.AppName)
	settings := gameState.GetSettingsManager()
	audioManager := resources.NewAudioManager(resourceManager, settings)
	log.Printf("[App] AudioManager initialized")

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = types.NewRand(cfg.Seed)
		log.Printf("[App] Using seed %d", cfg.Seed)
	}

	// 加载场景把结果写入 assets，游戏场景从中读取
	assets := &scenes.Assets{}
	sceneManager := scenes.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) scenes.Scene {
		switch name {
		case scenes.SceneLoading:
			return scenes.NewLoadingScene(resourceManager, sceneManager, assets, scenes.LoadingOptions{
				ConfigPath: cfg.ConfigPath,
			})
		case scenes.SceneGame:
			return scenes.NewGameScene(scenes.GameSceneOptions{
				Assets:          assets,
				ResourceManager: resourceManager,
				GameState:       gameState,
				AudioManager:    audioManager,
				Rand:            rng,
				Debug:           cfg.Debug,
			})
		}
		return nil
	})
	sceneManager.LoadScene(scenes.SceneLoading)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	// 关闭窗口时先保存再退出
	ebiten.SetWindowClosingHandled(true)

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	settings := a.gameState.GetSettingsManager()
	settings.SetFullscreen(fullscreen)
	if err := settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
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

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 退出前保存当前场景和持久化数据
func (a *App) Shutdown() {
	if !a.sceneManager.SaveCurrent() {
		log.Printf("[App] Warning: current scene failed to save")
	}
	if err := a.gameState.SaveAll(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
