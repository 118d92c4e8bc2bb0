package game

import (
	"testing"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/entities"
	"github.com/decker502/avalanche/pkg/types"
)

// fakeAudio 记录音效调用
type fakeAudio struct {
	sounds map[string]int
	loops  map[string]bool
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{sounds: map[string]int{}, loops: map[string]bool{}}
}

func (a *fakeAudio) PlaySound(id string) { a.sounds[id]++ }
func (a *fakeAudio) PlayLoop(id string)  { a.loops[id] = true }
func (a *fakeAudio) StopLoop(id string)  { a.loops[id] = false }

// fakePresenter 记录界面切换
type fakePresenter struct {
	shown   map[ScreenKind]int
	hidden  int
	current ScreenKind
	visible bool
	last    Result
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{shown: map[ScreenKind]int{}}
}

func (p *fakePresenter) ShowScreen(kind ScreenKind, result Result) {
	p.shown[kind]++
	p.current = kind
	p.visible = true
	p.last = result
}

func (p *fakePresenter) HideScreen() {
	p.hidden++
	p.visible = false
}

// fakeScores 记录提交的成绩
type fakeScores struct {
	submitted []int
	rank      int
}

func (s *fakeScores) Submit(score int) int {
	s.submitted = append(s.submitted, score)
	return s.rank
}

type sessionFixture struct {
	session   *Session
	audio     *fakeAudio
	presenter *fakePresenter
	scores    *fakeScores
}

// newTestSession 创建不生成障碍物的会话（需要障碍物的测试手动放置）
func newTestSession(t *testing.T) *sessionFixture {
	t.Helper()

	cfg := config.DefaultGameConfig()
	cfg.Session.SpawnInterval = 1e12

	f := &sessionFixture{
		audio:     newFakeAudio(),
		presenter: newFakePresenter(),
		scores:    &fakeScores{rank: 2},
	}
	f.session = NewSession(Options{
		Config:    cfg,
		Audio:     f.audio,
		Presenter: f.presenter,
		Scores:    f.scores,
		Rand:      types.NewRand(1),
	})
	return f
}

// run 以固定步长推进 n 帧，返回最后的时间戳
func run(s *Session, from, step float64, n int) float64 {
	ts := from
	for i := 0; i < n; i++ {
		ts += step
		s.AdvanceFrame(ts)
	}
	return ts
}

func TestNewSessionShowsStartScreen(t *testing.T) {
	f := newTestSession(t)

	if f.session.State() != StateNotStarted {
		t.Errorf("expected NotStarted, got %v", f.session.State())
	}
	if f.presenter.shown[ScreenStart] != 1 {
		t.Errorf("start screen shown %d times, want 1", f.presenter.shown[ScreenStart])
	}
	if f.session.InputEnabled() {
		t.Error("input must be disabled before the game starts")
	}

	f.session.AdvanceFrame(100)
	if f.session.Score != 0 {
		t.Errorf("AdvanceFrame before Start must not score, got %d", f.session.Score)
	}
}

func TestPrimaryActionStateMachine(t *testing.T) {
	f := newTestSession(t)
	s := f.session

	steps := []struct {
		name   string
		want   State
		screen ScreenKind
		shown  bool
	}{
		{"start", StateRunning, 0, false},
		{"pause", StatePaused, ScreenPaused, true},
		{"resume", StateRunning, 0, false},
		{"pause again", StatePaused, ScreenPaused, true},
	}

	for _, step := range steps {
		s.HandlePrimaryAction()
		if s.State() != step.want {
			t.Fatalf("%s: expected %v, got %v", step.name, step.want, s.State())
		}
		if f.presenter.visible != step.shown {
			t.Fatalf("%s: overlay visible=%v, want %v", step.name, f.presenter.visible, step.shown)
		}
		if step.shown && f.presenter.current != step.screen {
			t.Fatalf("%s: overlay %v, want %v", step.name, f.presenter.current, step.screen)
		}
		if s.InputEnabled() != (step.want == StateRunning) {
			t.Fatalf("%s: input enabled=%v in state %v", step.name, s.InputEnabled(), step.want)
		}
	}
}

func TestPausedSessionDoesNotAdvance(t *testing.T) {
	f := newTestSession(t)
	s := f.session

	s.Start()
	ts := run(s, 0, 16, 10)
	s.Stop(false)

	score, distance := s.Score, s.DistanceTraveled
	run(s, ts, 16, 10)

	if s.Score != score || s.DistanceTraveled != distance {
		t.Errorf("paused session advanced: score %d→%d distance %.2f→%.2f",
			score, s.Score, distance, s.DistanceTraveled)
	}
}

func TestDirectionInputOnlyWhileRunning(t *testing.T) {
	f := newTestSession(t)
	s := f.session

	if s.HandleDirectionInput() {
		t.Error("direction input accepted before Start")
	}

	s.Start()
	s.AdvanceFrame(200)

	before := s.Player.Direction
	if !s.HandleDirectionInput() {
		t.Fatal("direction input rejected while running")
	}
	if s.Player.Direction != before.Opposite() {
		t.Errorf("direction not reversed: %v", s.Player.Direction)
	}
	if s.HandleDirectionInput() {
		t.Error("second change inside the cooldown window should be ignored")
	}

	s.Stop(false)
	s.AdvanceFrame(1000)
	if s.HandleDirectionInput() {
		t.Error("direction input accepted while paused")
	}
}

func TestComboIncrementAndCap(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	for i := 0; i < cfg.Session.MaxCombo+5; i++ {
		o := entities.NewObstacle(cfg, config.DefaultSpriteSheets(), 0, 100)
		s.onBonus(o, float64(i))
		if !o.IsBonus {
			t.Fatal("obstacle should be marked as bonused")
		}
	}

	if s.Combo != cfg.Session.MaxCombo {
		t.Errorf("combo should cap at %d, got %d", cfg.Session.MaxCombo, s.Combo)
	}
	if f.audio.sounds[SoundCombo] != cfg.Session.MaxCombo+5 {
		t.Errorf("expected one combo sound per bonus, got %d", f.audio.sounds[SoundCombo])
	}
	if s.GSpeed <= cfg.Session.MinSpeed {
		t.Errorf("bonus should raise gSpeed above %.2f, got %.2f", cfg.Session.MinSpeed, s.GSpeed)
	}
}

func TestComboDecay(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	o := entities.NewObstacle(cfg, config.DefaultSpriteSheets(), 0, 100)
	s.onBonus(o, 1000)
	s.onBonus(o, 1000)
	if s.Combo != 3 {
		t.Fatalf("expected combo 3, got %d", s.Combo)
	}

	// 失效时间内保持
	s.AdvanceFrame(1000 + cfg.Session.ComboDecay)
	if s.Combo != 3 {
		t.Errorf("combo should survive until decay expires, got %d", s.Combo)
	}

	s.AdvanceFrame(1000 + cfg.Session.ComboDecay + 1)
	if s.Combo != 1 {
		t.Errorf("combo should decay to 1, got %d", s.Combo)
	}
}

func TestDamageWithSpareLife(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	s.Player.SetSize(cfg.Player.InitialSize * 2)
	s.Combo = 5
	s.GSpeed = 3

	o := entities.NewObstacle(cfg, config.DefaultSpriteSheets(), 0, 100)
	s.onDamage(o)

	if s.Combo != 1 {
		t.Errorf("damage should reset combo, got %d", s.Combo)
	}
	if s.GSpeed != 2 {
		t.Errorf("gSpeed should be divided by %.1f: got %.2f", cfg.Session.HitSpeedDivisor, s.GSpeed)
	}
	if s.Player.Lives() != 1 {
		t.Errorf("expected 1 life left, got %d", s.Player.Lives())
	}
	if s.Player.Dying() {
		t.Error("player with a spare life must not start dying")
	}
	if !o.IsHit || !s.Player.ImpactVisible() {
		t.Error("hit should mark the obstacle and show the impact")
	}
	if f.audio.sounds[SoundHit] != 1 {
		t.Errorf("expected one hit sound, got %d", f.audio.sounds[SoundHit])
	}

	// 减速不低于 MinSpeed
	s.GSpeed = cfg.Session.MinSpeed
	s.onDamage(entities.NewObstacle(cfg, config.DefaultSpriteSheets(), 0, 100))
	if s.GSpeed != cfg.Session.MinSpeed {
		t.Errorf("gSpeed fell below MinSpeed: %.2f", s.GSpeed)
	}
}

// 最后一条命撞到树：雪球播放结束动画，动画结束后只结束一次
func TestLastLifeCollisionEndsGameOnce(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	o := entities.NewObstacle(cfg, config.DefaultSpriteSheets(), s.Player.X-20, 100)
	o.Y = s.Player.Y - 30
	s.Obstacles = append(s.Obstacles, o)

	s.AdvanceFrame(100)
	if !o.IsHit {
		t.Fatal("obstacle core should have been hit")
	}
	if !s.Player.Dying() {
		t.Fatal("player on its last life should start dying")
	}
	if s.State() != StateRunning {
		t.Fatalf("game should keep running during the death animation, got %v", s.State())
	}

	ts := 100.0
	for i := 0; i < 50 && s.State() == StateRunning; i++ {
		ts += 100
		s.AdvanceFrame(ts)
	}

	if s.State() != StateGameOver {
		t.Fatalf("expected GameOver after the death animation, got %v", s.State())
	}

	// 再次停止和继续推进都不应重复结算
	s.Stop(true)
	run(s, ts, 100, 20)

	if f.presenter.shown[ScreenGameOver] != 1 {
		t.Errorf("game over screen shown %d times, want 1", f.presenter.shown[ScreenGameOver])
	}
	if len(f.scores.submitted) != 1 {
		t.Errorf("score submitted %d times, want 1", len(f.scores.submitted))
	}
	if got := s.Result(); got.Rank != 2 || got.Score != s.HUD.DisplayScore(s.Score) {
		t.Errorf("unexpected result %+v", got)
	}
	if f.audio.loops[SoundAvalanche] {
		t.Error("avalanche loop should stop when the game ends")
	}
}

func TestAvalancheCatchesPlayer(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	ts := run(s, 0, 16, 5)
	s.Avalanche.DistanceTraveled = s.DistanceTraveled + 1000

	ts = run(s, ts, 16, 1)
	if !s.Over() {
		t.Fatal("session should be over once the avalanche passes the player")
	}
	if s.GSpeed != 0 || s.Combo != 1 {
		t.Errorf("caught: expected gSpeed 0 and combo 1, got %.2f / %d", s.GSpeed, s.Combo)
	}
	if !s.Avalanche.IsGameOverAnimation() {
		t.Error("avalanche should switch to its game over animation")
	}

	score := s.Score
	for i := 0; i < 1000 && s.State() == StateRunning; i++ {
		ts += 16
		s.AdvanceFrame(ts)
		if s.Score != score {
			t.Fatalf("score changed after the game was decided: %d → %d", score, s.Score)
		}
	}

	if s.State() != StateGameOver {
		t.Fatalf("expected GameOver, got %v", s.State())
	}
	if len(f.scores.submitted) != 1 {
		t.Errorf("score submitted %d times, want 1", len(f.scores.submitted))
	}
}

func TestPrimaryActionRestartsWhileOver(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	run(s, 0, 16, 5)
	s.Avalanche.DistanceTraveled = s.DistanceTraveled + 1000
	run(s, 80, 16, 1)
	if !s.Over() || s.State() != StateRunning {
		t.Fatalf("expected the end animation to be playing, over=%v state=%v", s.Over(), s.State())
	}

	s.HandlePrimaryAction()
	if s.Over() || s.State() != StateRunning || s.Score != 0 {
		t.Errorf("primary action during the end animation should restart: over=%v state=%v score=%d",
			s.Over(), s.State(), s.Score)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	f := newTestSession(t)
	s := f.session

	// 尚未开始
	s.Stop(true)
	if s.State() != StateNotStarted || len(f.scores.submitted) != 0 {
		t.Fatalf("Stop before Start must be a no-op, state=%v", s.State())
	}

	s.Start()
	s.Stop(false)
	s.Stop(false)
	s.Stop(true)

	if s.State() != StatePaused {
		t.Errorf("expected Paused, got %v", s.State())
	}
	if f.presenter.shown[ScreenPaused] != 1 {
		t.Errorf("pause screen shown %d times, want 1", f.presenter.shown[ScreenPaused])
	}
	if len(f.scores.submitted) != 0 {
		t.Error("stopping a paused game must not submit a score")
	}
}

func TestBarrierBounce(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	s.Player.X = cfg.Screen.Width - s.Player.Size
	s.Player.Direction = types.DirectionRight

	s.AdvanceFrame(16)

	if s.Player.Direction != types.DirectionLeft {
		t.Error("player should bounce off the right barrier")
	}
	if f.audio.sounds[SoundBarrier] != 1 {
		t.Errorf("expected one barrier sound, got %d", f.audio.sounds[SoundBarrier])
	}
}

// 无碰撞时分数、距离严格递增，gSpeed 单调不减且不超过上限
func TestRunIsMonotonic(t *testing.T) {
	f := newTestSession(t)
	s := f.session
	s.Start()

	cfg := s.Config()
	prevScore, prevDistance, prevSpeed := s.Score, s.DistanceTraveled, s.GSpeed
	ts := 0.0
	for i := 0; i < 600; i++ {
		ts += 1000.0 / 60
		s.AdvanceFrame(ts)

		if s.State() != StateRunning {
			t.Fatalf("frame %d: unexpected state %v", i, s.State())
		}
		if s.Score <= prevScore {
			t.Fatalf("frame %d: score did not increase (%d → %d)", i, prevScore, s.Score)
		}
		if s.DistanceTraveled <= prevDistance {
			t.Fatalf("frame %d: distance did not increase", i)
		}
		if s.GSpeed < prevSpeed || s.GSpeed > cfg.Session.MaxSpeed {
			t.Fatalf("frame %d: gSpeed %.4f out of order (prev %.4f)", i, s.GSpeed, prevSpeed)
		}
		prevScore, prevDistance, prevSpeed = s.Score, s.DistanceTraveled, s.GSpeed
	}
}

func TestObstaclesSpawnAndPrune(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := NewSession(Options{Config: cfg, Rand: types.NewRand(7)})
	s.Start()

	ts := run(s, 0, 100, 11)
	if len(s.Obstacles) == 0 {
		t.Fatal("expected at least one obstacle after a second")
	}

	// 滚出屏幕的障碍物被移除
	for _, o := range s.Obstacles {
		o.Y = -o.Size - 10
		o.IsHit, o.IsBonus = true, true
	}
	s.AdvanceFrame(ts + 1)
	if len(s.Obstacles) != 0 {
		t.Errorf("off-screen obstacles were not pruned: %d left", len(s.Obstacles))
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotStarted, "NotStarted"},
		{StateRunning, "Running"},
		{StatePaused, "Paused"},
		{StateGameOver, "GameOver"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
