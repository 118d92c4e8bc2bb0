package scenes

import (
	"log"
	"math/rand/v2"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/resources"
	"github.com/decker502/avalanche/pkg/systems"
	"github.com/decker502/avalanche/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameSceneOptions 创建游戏场景所需的依赖
type GameSceneOptions struct {
	Assets          *Assets
	ResourceManager *resources.ResourceManager // 可为 nil（不绘制文字）
	GameState       *game.GameState
	AudioManager    *resources.AudioManager // 可为 nil（静音）
	Rand            *rand.Rand              // 为 nil 时使用时间种子
	Debug           bool
}

// GameScene 驱动一局局游戏的场景
//
// 每个 tick：读取输入 → 交给 Session → AdvanceFrame 录制绘制命令 → 推进音量渐变。
// Draw 只回放最近一次录制的命令，所以暂停时画面停留在最后一帧。
type GameScene struct {
	session      *game.Session
	renderSystem *systems.RenderSystem
	overlay      *Overlay
	audioManager *resources.AudioManager
	gameState    *game.GameState

	// clock 场景时钟（毫秒），暂停时也继续走
	clock float64
	// input 输入来源，测试时替换
	input func() utils.InputState
}

// NewGameScene 创建游戏场景，显示开始界面
func NewGameScene(opts GameSceneOptions) *GameScene {
	assets := opts.Assets
	if assets == nil {
		assets = &Assets{}
	}
	if assets.Config == nil {
		assets.Config = config.DefaultGameConfig()
	}
	if assets.Sheets == nil {
		assets.Sheets = config.DefaultSpriteSheets()
	}
	if opts.GameState == nil {
		opts.GameState = game.NewGameStateWithManager(nil)
	}

	var faces systems.FaceProvider
	if opts.ResourceManager != nil {
		faces = opts.ResourceManager
	}

	s := &GameScene{
		renderSystem: systems.NewRenderSystem(assets.Images, faces),
		overlay:      NewOverlay(faces, opts.GameState.GetHallOfFame()),
		audioManager: opts.AudioManager,
		gameState:    opts.GameState,
		input:        utils.PollInput,
	}

	sessionOpts := game.Options{
		Config:    assets.Config,
		Sheets:    assets.Sheets,
		Renderer:  s.renderSystem,
		Presenter: s.overlay,
		Scores:    opts.GameState.GetHallOfFame(),
		Rand:      opts.Rand,
	}
	if opts.AudioManager != nil {
		sessionOpts.Audio = opts.AudioManager
	}
	s.session = game.NewSession(sessionOpts)
	s.session.Debug = opts.Debug || opts.GameState.GetSettingsManager().GetSettings().ShowDebug

	log.Printf("[GameScene] Ready (debug=%v)", s.session.Debug)
	return s
}

// Update 处理输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	dtMillis := deltaTime * 1000
	s.clock += dtMillis

	in := s.input()

	if in.ToggleDebug {
		s.toggleDebug()
	}

	// 编辑排行榜名字时按键不当作转向
	typing := s.overlay.HandleTyping(in.Chars, in.Backspace)
	if in.DirectionRequested && !typing {
		s.session.HandleDirectionInput()
	}
	if in.PrimaryAction {
		s.session.HandlePrimaryAction()
	}

	s.session.AdvanceFrame(s.clock)
	s.overlay.Update(dtMillis)

	if s.audioManager != nil {
		s.audioManager.Update(dtMillis)
	}
}

func (s *GameScene) toggleDebug() {
	s.session.Debug = !s.session.Debug

	settings := s.gameState.GetSettingsManager()
	settings.SetShowDebug(s.session.Debug)
	if err := settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
	}
}

// Draw 回放本帧的绘制命令，再绘制覆盖层
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Flush(screen)
	s.overlay.Draw(screen)
}

// SaveOnExit 退出时保存设置和排行榜
func (s *GameScene) SaveOnExit() bool {
	if s.audioManager != nil {
		s.audioManager.StopAll()
	}
	if err := s.gameState.SaveAll(); err != nil {
		log.Printf("[GameScene] Warning: save on exit failed: %v", err)
		return false
	}
	return true
}

// Session 当前会话
func (s *GameScene) Session() *game.Session {
	return s.session
}

// Overlay 覆盖层
func (s *GameScene) Overlay() *Overlay {
	return s.overlay
}
