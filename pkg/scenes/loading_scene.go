package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/resources"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 默认数据文件路径
const (
	DefaultGameConfigPath = "data/game_config.yaml"
	DefaultSpritesPath    = "data/sprites.yaml"
	ResourceGroupGame     = "game"
	FontID                = "FONT_EIGHTBIT"
)

// 加载界面布局
const (
	loadingMinDuration = 0.5 // 至少显示多久（秒），避免一闪而过
	loadingBarWidth    = 320.0
	loadingBarHeight   = 16.0
	loadingTitleSize   = 48.0
	loadingTextSize    = 16.0
)

// Assets 加载场景的产出，交给游戏场景使用
type Assets struct {
	Config *config.GameConfig
	Sheets config.SpriteSheets
	Images map[string]*ebiten.Image // 精灵表 ID -> 图片（缺失时为占位图）
}

// LoadingOptions 数据文件位置
type LoadingOptions struct {
	ConfigPath  string
	SpritesPath string
}

// LoadingScene 启动时的加载界面
//
// 每个 Update 只执行一个加载步骤，让进度条能逐步前进；
// 全部完成且显示满 loadingMinDuration 后切换到游戏场景。
// 任何一步失败都只记录日志并使用默认值或替代资源。
type LoadingScene struct {
	resourceManager *resources.ResourceManager
	sceneManager    *SceneManager
	options         LoadingOptions
	assets          *Assets

	steps       []loadingStep
	next        int
	elapsedTime float64
	switched    bool
}

type loadingStep struct {
	message string
	run     func()
}

// NewLoadingScene 创建加载场景
// 加载结果写入 assets，完成后通过 sceneManager.LoadScene(SceneGame) 切换
func NewLoadingScene(rm *resources.ResourceManager, sm *SceneManager, assets *Assets, opts LoadingOptions) *LoadingScene {
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultGameConfigPath
	}
	if opts.SpritesPath == "" {
		opts.SpritesPath = DefaultSpritesPath
	}

	s := &LoadingScene{
		resourceManager: rm,
		sceneManager:    sm,
		options:         opts,
		assets:          assets,
	}
	s.steps = []loadingStep{
		{"Loading config", s.loadGameConfig},
		{"Loading sprites", s.loadSprites},
		{"Loading sounds", s.loadSounds},
		{"Loading font", s.loadFont},
	}
	return s
}

func (s *LoadingScene) loadGameConfig() {
	cfg := config.DefaultGameConfig()
	data, err := s.resourceManager.ReadFile(s.options.ConfigPath)
	if err == nil {
		cfg, err = config.ParseGameConfig(data)
	}
	if err != nil {
		log.Printf("[LoadingScene] Warning: %v (using defaults)", err)
		cfg = config.DefaultGameConfig()
	}
	s.assets.Config = cfg
}

func (s *LoadingScene) loadSprites() {
	sheets := config.DefaultSpriteSheets()
	data, err := s.resourceManager.ReadFile(s.options.SpritesPath)
	if err == nil {
		sheets, err = config.ParseSpriteSheets(data)
	}
	if err != nil {
		log.Printf("[LoadingScene] Warning: %v (using built-in sprite sheets)", err)
		sheets = config.DefaultSpriteSheets()
	}
	s.assets.Sheets = sheets
	s.assets.Images = s.resourceManager.LoadSpriteSheets(sheets)
}

func (s *LoadingScene) loadSounds() {
	if err := s.resourceManager.LoadSounds(ResourceGroupGame); err != nil {
		log.Printf("[LoadingScene] Warning: %v", err)
	}
}

func (s *LoadingScene) loadFont() {
	s.resourceManager.LoadFont(FontID)
	if missing := s.resourceManager.MissingResources(); len(missing) > 0 {
		log.Printf("[LoadingScene] Using substitutes for: %v", missing)
	}
}

// Progress 返回加载进度 (0.0 - 1.0)
func (s *LoadingScene) Progress() float64 {
	if len(s.steps) == 0 {
		return 1
	}
	return float64(s.next) / float64(len(s.steps))
}

// Complete 所有加载步骤是否已完成
func (s *LoadingScene) Complete() bool {
	return s.next >= len(s.steps)
}

// Update 执行下一个加载步骤
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	if !s.Complete() {
		step := s.steps[s.next]
		log.Printf("[LoadingScene] %s", step.message)
		step.run()
		s.next++
		return
	}

	if !s.switched && s.elapsedTime >= loadingMinDuration {
		s.switched = true
		s.sceneManager.LoadScene(SceneGame)
	}
}

// Draw 绘制标题和进度条
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	drawCentered(screen, s.resourceManager.Face(loadingTitleSize), "A'valanche", w/2, h/2-40, color.Black)

	x := float32((w - loadingBarWidth) / 2)
	y := float32(h/2 + 10)
	vector.StrokeRect(screen, x, y, loadingBarWidth, loadingBarHeight, 2, color.Black, false)
	fill := float32(loadingBarWidth * math.Min(1, s.Progress()))
	vector.DrawFilledRect(screen, x, y, fill, loadingBarHeight, color.Black, false)

	msg := "Ready"
	if !s.Complete() {
		msg = s.steps[s.next].message
	}
	drawCentered(screen, s.resourceManager.Face(loadingTextSize), msg, w/2, float64(y)+loadingBarHeight+12, color.Gray{Y: 0x60})
}

// drawCentered 以 (cx, top) 为上边中点绘制一行文字
func drawCentered(screen *ebiten.Image, face *text.GoTextFace, s string, cx, top float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-text.Advance(s, face)/2, top)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
