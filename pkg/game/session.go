package game

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/entities"
	"github.com/decker502/avalanche/pkg/types"
)

// State 一局游戏的状态
//
//	NotStarted → Running ⇄ Paused
//	Running → GameOver → (Start) → Running
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StatePaused
	StateGameOver
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Options 创建 Session 所需的依赖
// Renderer / Audio / Presenter / Scores 为 nil 时使用空实现
type Options struct {
	Config    *config.GameConfig
	Sheets    config.SpriteSheets
	Renderer  entities.Renderer
	Audio     AudioSink
	Presenter Presenter
	Scores    ScoreRecorder
	Rand      *rand.Rand
}

// Session 一局游戏的全部状态
//
// 由外部驱动器每个显示帧调用一次 AdvanceFrame。
// 所有实体只在 AdvanceFrame 内按固定顺序修改，碰撞检测基于本帧一致的位置快照。
type Session struct {
	cfg       *config.GameConfig
	sheets    config.SpriteSheets
	renderer  entities.Renderer
	audio     AudioSink
	presenter Presenter
	scores    ScoreRecorder
	rng       *rand.Rand

	state State
	// over 在雪崩追上雪球时立即置位，此时结束动画仍在播放、状态还是 Running
	over bool
	// inputEnabled 对应"注册了键盘监听"：只有运行中才接受转向输入
	inputEnabled bool

	Player    *entities.Player
	Avalanche *entities.Avalanche
	HUD       *entities.HUD
	Obstacles []*entities.Obstacle

	GSpeed           float64
	Combo            int
	Score            int
	DistanceTraveled float64

	lastCombo    float64
	lastObstacle float64
	now          float64

	// Debug 显示碰撞盒和调试信息（同时隐藏 HUD）
	Debug bool

	result Result
}

// NewSession 创建会话并显示开始界面
func NewSession(opts Options) *Session {
	if opts.Config == nil {
		opts.Config = config.DefaultGameConfig()
	}
	if opts.Sheets == nil {
		opts.Sheets = config.DefaultSpriteSheets()
	}
	if opts.Audio == nil {
		opts.Audio = NopAudio{}
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Scores == nil {
		opts.Scores = nopScores{}
	}
	if opts.Rand == nil {
		opts.Rand = types.NewRand(uint64(time.Now().UnixNano()))
	}

	s := &Session{
		cfg:       opts.Config,
		sheets:    opts.Sheets,
		renderer:  opts.Renderer,
		audio:     opts.Audio,
		presenter: opts.Presenter,
		scores:    opts.Scores,
		rng:       opts.Rand,
		state:     StateNotStarted,
		Combo:     1,
		result:    Result{Rank: -1},
	}
	s.reset()

	s.presenter.ShowScreen(ScreenStart, s.result)
	return s
}

// reset 重新创建所有实体并清零计分
func (s *Session) reset() {
	s.Player = entities.NewPlayer(s.cfg, s.sheets)
	s.Avalanche = entities.NewAvalanche(s.cfg, s.sheets)
	s.HUD = entities.NewHUD(s.cfg, s.sheets)
	s.Obstacles = nil

	s.GSpeed = s.cfg.Session.MinSpeed
	s.Combo = 1
	s.Score = 0
	s.DistanceTraveled = 0
	s.over = false

	s.lastCombo = s.now
	s.lastObstacle = s.now
	s.result = Result{Rank: -1}
}

// Start 开始新的一局（也用于结束后重开）
func (s *Session) Start() {
	s.presenter.HideScreen()
	s.reset()

	s.state = StateRunning
	s.inputEnabled = true
	log.Printf("[Session] Game started")
}

// Stop 停止帧循环并注销输入
//
// isGameOver 为 true 时锁定为 GameOver 并提交成绩，否则进入暂停。
// 已经停止（Paused / GameOver）或尚未开始时调用是空操作，
// 雪崩和雪球的结束回调可能在同一局先后触发，只有第一次生效。
func (s *Session) Stop(isGameOver bool) {
	if s.state != StateRunning {
		return
	}

	s.audio.StopLoop(SoundAvalanche)
	s.inputEnabled = false

	if isGameOver {
		s.state = StateGameOver
		s.over = true
		score := s.HUD.DisplayScore(s.Score)
		s.result = Result{Score: score, Rank: s.scores.Submit(score)}
		log.Printf("[Session] Game over: score=%d rank=%d", s.result.Score, s.result.Rank)
		s.presenter.ShowScreen(ScreenGameOver, s.result)
		return
	}

	s.state = StatePaused
	log.Printf("[Session] Paused")
	s.presenter.ShowScreen(ScreenPaused, s.result)
}

// Resume 从暂停恢复
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}

	s.presenter.HideScreen()
	s.state = StateRunning
	s.inputEnabled = true
	log.Printf("[Session] Resumed")
}

// HandlePrimaryAction 处理"主操作"（点击/触摸）
// 未开始或已结束 → 开始新局；暂停中 → 恢复；运行中 → 暂停
func (s *Session) HandlePrimaryAction() {
	switch {
	case s.state == StateNotStarted || s.state == StateGameOver || s.over:
		s.Start()
	case s.state == StatePaused:
		s.Resume()
	default:
		s.Stop(false)
	}
}

// HandleDirectionInput 处理转向输入
// 仅在运行中生效，受雪球自身的转向间隔限制
func (s *Session) HandleDirectionInput() bool {
	if !s.inputEnabled {
		return false
	}
	return s.Player.RequestDirectionChange()
}

// AdvanceFrame 推进一帧
//
// timestamp 为毫秒时间戳（单调递增），只用于精灵帧门限、连击失效和生成间隔。
// 非 Running 状态下不做任何事。
func (s *Session) AdvanceFrame(timestamp float64) {
	if s.state != StateRunning {
		return
	}
	s.now = timestamp
	r := s.renderer

	if r != nil {
		r.Clear()
	}

	// 边界指示线 + 撞墙弹回
	hb := s.Player.Hitbox()
	left, right := entities.BarrierWidths(s.cfg.Barrier, s.cfg.Screen.Width, hb, s.Player.Size)
	entities.DrawBarriers(r, s.cfg.Screen, left, right)

	step := s.Player.Speed * s.GSpeed * 2
	if hb.X-step < 0 || hb.Right()+step > s.cfg.Screen.Width {
		s.Player.ChangeDirection()
		s.audio.PlaySound(SoundBarrier)
	}

	// 雪球
	if s.Player.Update(r, timestamp, s.GSpeed, s.HUD.ComboColor(s.Combo)) {
		s.Stop(true)
	}

	// 连击失效
	if timestamp-s.lastCombo > s.cfg.Session.ComboDecay {
		s.Combo = 1
	}

	// 生成障碍物（速度越快生成越频繁）
	if timestamp-s.lastObstacle > s.cfg.Session.SpawnInterval/s.GSpeed {
		s.Obstacles = append(s.Obstacles, entities.SpawnObstacle(s.rng, s.cfg, s.sheets))
		s.lastObstacle = timestamp
	}

	// 碰撞 + 移动
	for _, o := range s.Obstacles {
		if s.Player.Hitbox().Intersects(o.BonusHitbox()) {
			s.onBonus(o, timestamp)
		}
		if s.Player.Hitbox().Intersects(o.Hitbox()) {
			s.onDamage(o)
		}
		o.Update(r, timestamp, s.GSpeed)
	}

	// 移除滚出屏幕的障碍物（与更新分开，避免本帧少画一个）
	s.pruneObstacles()

	// 雪崩
	if s.Avalanche.Update(r, timestamp, s.DistanceTraveled) {
		s.Stop(true)
	}
	if s.Avalanche.Visible() && s.state == StateRunning {
		s.audio.PlayLoop(SoundAvalanche)
	} else {
		s.audio.StopLoop(SoundAvalanche)
	}

	// HUD（调试模式下由调试信息代替）
	if s.Debug {
		s.drawDebug(r)
	} else {
		s.HUD.Draw(r, timestamp, s.Score, s.Combo, s.Player.SizeRatio())
	}

	if s.GSpeed < s.cfg.Session.MaxSpeed {
		s.GSpeed = types.Approach(s.GSpeed, s.cfg.Session.MaxSpeed, s.cfg.Session.Acceleration)
	}

	if !s.over {
		s.Score += s.Combo
	}

	s.DistanceTraveled += s.GSpeed

	// 雪崩追上雪球
	if s.Avalanche.ReachedY(s.Player.Hitbox().Y) {
		s.GSpeed = 0
		s.Combo = 1
		s.over = true
		if !s.Avalanche.IsGameOverAnimation() {
			log.Printf("[Session] Caught by the avalanche")
			s.Avalanche.GameOver()
		}
	}
}

// onBonus 碰到奖励环：连击 +1，全局速度提升，重置连击计时
func (s *Session) onBonus(o *entities.Obstacle, timestamp float64) {
	o.OnBonus()
	s.audio.PlaySound(SoundCombo)

	if s.Combo < s.cfg.Session.MaxCombo {
		s.Combo++
	}
	if s.GSpeed < s.cfg.Session.MaxSpeed {
		s.GSpeed = types.Approach(s.GSpeed, s.cfg.Session.MaxSpeed, s.cfg.Session.SpeedGainPerBonus)
	}
	s.lastCombo = timestamp
}

// onDamage 撞到伤害核心：连击清零、减速、失去一条命或开始结束动画
func (s *Session) onDamage(o *entities.Obstacle) {
	s.Player.OnHit()
	o.OnHit()
	s.audio.PlaySound(SoundHit)

	s.Combo = 1
	s.GSpeed = math.Max(s.cfg.Session.MinSpeed, s.GSpeed/s.cfg.Session.HitSpeedDivisor)

	if s.Player.Lives() <= 1 {
		if s.Player.OnGameOver() {
			log.Printf("[Session] Last life lost")
		}
		return
	}
	s.Player.LoseLife()
}

func (s *Session) pruneObstacles() {
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if !o.OutOfScreen() {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(s.Obstacles); i++ {
		s.Obstacles[i] = nil
	}
	s.Obstacles = kept
}

// State 当前状态
func (s *Session) State() State {
	return s.state
}

// Over 本局是否已判定结束（包括结束动画播放期间）
func (s *Session) Over() bool {
	return s.over
}

// Running 是否需要继续驱动帧循环
func (s *Session) Running() bool {
	return s.state == StateRunning
}

// InputEnabled 是否接受转向输入
func (s *Session) InputEnabled() bool {
	return s.inputEnabled
}

// Result 最近一次结束的结果
func (s *Session) Result() Result {
	return s.result
}

// Config 当前配置
func (s *Session) Config() *config.GameConfig {
	return s.cfg
}

// Now 最近一帧的时间戳
func (s *Session) Now() float64 {
	return s.now
}

// ComboExpiresIn 距离连击失效还剩多少毫秒
func (s *Session) ComboExpiresIn() float64 {
	return math.Max(0, s.cfg.Session.ComboDecay-(s.now-s.lastCombo))
}
