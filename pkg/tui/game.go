package tui

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// FrameInterval 终端版的帧间隔（约 60 FPS）
const FrameInterval = 16 * time.Millisecond

// Screen 终端版需要的屏幕能力，tcell.Screen 满足这个接口
type Screen interface {
	Canvas
	Show()
	Sync()
	PollEvent() tcell.Event
}

// Options 创建终端游戏所需的依赖
type Options struct {
	Config    *config.GameConfig  // 为 nil 时使用默认值
	Sheets    config.SpriteSheets // 为 nil 时使用内置精灵表
	GameState *game.GameState     // 为 nil 时只保存在内存中
	Audio     *BeepAudio          // 为 nil 时静音
	Rand      *rand.Rand
	Debug     bool
}

// Game 终端前端：把按键翻译成 Session 输入，按固定帧间隔推进并刷新屏幕
type Game struct {
	screen    Screen
	session   *game.Session
	renderer  *CellRenderer
	panel     *Panel
	audio     *BeepAudio
	gameState *game.GameState

	// clock 游戏时钟（毫秒），暂停时也继续走
	clock     float64
	mouseDown bool
	// redraw 暂停或结束时画面不会被 AdvanceFrame 刷新，需要手动重画面板
	redraw bool
}

// NewGame 创建终端游戏并显示开始界面
func NewGame(screen Screen, opts Options) *Game {
	if opts.Config == nil {
		opts.Config = config.DefaultGameConfig()
	}
	if opts.GameState == nil {
		opts.GameState = game.NewGameStateWithManager(nil)
	}

	g := &Game{
		screen:    screen,
		renderer:  NewCellRenderer(screen, opts.Config.Screen),
		panel:     NewPanel(opts.GameState.GetHallOfFame()),
		audio:     opts.Audio,
		gameState: opts.GameState,
		redraw:    true,
	}

	sessionOpts := game.Options{
		Config:    opts.Config,
		Sheets:    opts.Sheets,
		Renderer:  g.renderer,
		Presenter: g.panel,
		Scores:    opts.GameState.GetHallOfFame(),
		Rand:      opts.Rand,
	}
	if opts.Audio != nil {
		sessionOpts.Audio = opts.Audio
	}
	g.session = game.NewSession(sessionOpts)
	g.session.Debug = opts.Debug || opts.GameState.GetSettingsManager().GetSettings().ShowDebug

	log.Printf("[TUI] Ready (debug=%v)", g.session.Debug)
	return g
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (g *Game) HandleEvent(ev tcell.Event) bool {
	in := MapEvent(ev)

	if _, ok := ev.(*tcell.EventMouse); ok {
		pressed := in.Action == ActionPrimary
		if pressed && g.mouseDown {
			in.Action = ActionNone
		}
		g.mouseDown = pressed
	}

	switch in.Action {
	case ActionQuit:
		return false
	case ActionResize:
		g.screen.Sync()
		g.redraw = true
	case ActionToggleDebug:
		g.toggleDebug()
	case ActionPrimary:
		g.session.HandlePrimaryAction()
	case ActionKey:
		var chars []rune
		if in.Char != 0 {
			chars = []rune{in.Char}
		}
		if !g.panel.HandleTyping(chars, in.Backspace) {
			g.session.HandleDirectionInput()
		}
	}
	return true
}

func (g *Game) toggleDebug() {
	g.session.Debug = !g.session.Debug

	settings := g.gameState.GetSettingsManager()
	settings.SetShowDebug(g.session.Debug)
	if err := settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
}

// Step 推进 dtMillis 毫秒并刷新屏幕
func (g *Game) Step(dtMillis float64) {
	g.clock += dtMillis

	running := g.session.Running()
	g.session.AdvanceFrame(g.clock)

	if g.audio != nil {
		g.audio.Update(dtMillis)
	}

	// 运行中每帧都重画了整个画面；否则只在面板变化或尺寸变化时重画
	if !running {
		if !g.redraw && !g.panel.Dirty() {
			return
		}
		if g.redraw {
			g.renderer.Clear()
		}
	}
	g.redraw = false
	g.panel.Draw(g.screen)
	g.screen.Show()
}

// Run 运行事件循环直到退出
func (g *Game) Run() error {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.HandleEvent(ev) {
				g.Shutdown()
				return nil
			}
		case now := <-ticker.C:
			g.Step(float64(now.Sub(last)) / float64(time.Millisecond))
			last = now
		}
	}
}

// Shutdown 停止声音并保存设置和排行榜
func (g *Game) Shutdown() {
	if g.audio != nil {
		g.audio.Close()
	}
	if err := g.gameState.SaveAll(); err != nil {
		log.Printf("[TUI] Warning: save on exit failed: %v", err)
	}
}

// Session 当前会话
func (g *Game) Session() *game.Session {
	return g.session
}

// Panel 界面面板
func (g *Game) Panel() *Panel {
	return g.panel
}
