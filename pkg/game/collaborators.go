package game

// 音效 ID（与 data/resources.yaml 中的 sounds 对应）
const (
	SoundCombo     = "SOUND_COMBO"     // 碰到奖励环
	SoundHit       = "SOUND_HIT"       // 撞到树
	SoundBarrier   = "SOUND_BARRIER"   // 撞墙弹回
	SoundAvalanche = "SOUND_AVALANCHE" // 雪崩环境音（循环）
)

// ScreenKind 覆盖层界面类型
type ScreenKind int

const (
	// ScreenStart 开始界面
	ScreenStart ScreenKind = iota
	// ScreenPaused 暂停界面
	ScreenPaused
	// ScreenGameOver 结束界面（含排行榜）
	ScreenGameOver
)

// String 返回界面名称
func (k ScreenKind) String() string {
	switch k {
	case ScreenStart:
		return "Start"
	case ScreenPaused:
		return "Paused"
	case ScreenGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Result 一局结束时交给展示层的结果
type Result struct {
	Score int // 显示用分数（已除以 ScoreDivisor）
	Rank  int // 排行榜名次（从 0 开始），-1 表示未上榜
}

// AudioSink 音频输出
// 所有调用都是发出即忘，核心逻辑不依赖返回值
type AudioSink interface {
	PlaySound(id string)
	PlayLoop(id string)
	StopLoop(id string)
}

// Presenter 覆盖层界面
// 核心只通知状态变化，界面内容由实现决定
type Presenter interface {
	ShowScreen(kind ScreenKind, result Result)
	HideScreen()
}

// ScoreRecorder 排行榜
// Submit 提交显示分数，返回名次（-1 表示未上榜）
type ScoreRecorder interface {
	Submit(score int) int
}

// NopAudio 静音实现
type NopAudio struct{}

func (NopAudio) PlaySound(string) {}
func (NopAudio) PlayLoop(string)  {}
func (NopAudio) StopLoop(string)  {}

// NopPresenter 不显示任何界面
type NopPresenter struct{}

func (NopPresenter) ShowScreen(ScreenKind, Result) {}
func (NopPresenter) HideScreen()                   {}

// nopScores 不记录成绩
type nopScores struct{}

func (nopScores) Submit(int) int { return -1 }
