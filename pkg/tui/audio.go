package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/sfx"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// beepLoop 一个循环音
type beepLoop struct {
	source beep.StreamSeeker
	ctrl   *beep.Ctrl
	volume *effects.Volume
	sfx.Fade
}

// BeepAudio 通过 beep/speaker 播放合成音效，实现 game.AudioSink
//
// 所有音效混进同一个 Mixer，speaker 在自己的 goroutine 里读取，
// 所以修改正在播放的 streamer 时要持有 speaker.Lock。
// 没有调用 Init（或初始化失败）时所有方法都是空操作。
type BeepAudio struct {
	settings *game.SettingsManager // 可为 nil（满音量）
	rate     beep.SampleRate
	mixer    *beep.Mixer
	loops    map[string]*beepLoop
	enabled  bool
}

var _ game.AudioSink = (*BeepAudio)(nil)

// NewBeepAudio 创建音频输出
func NewBeepAudio(settings *game.SettingsManager) *BeepAudio {
	return &BeepAudio{
		settings: settings,
		rate:     sfx.SampleRate,
		mixer:    &beep.Mixer{},
		loops:    make(map[string]*beepLoop),
	}
}

// Init 初始化扬声器并开始播放混音器
func (a *BeepAudio) Init() error {
	if err := speaker.Init(a.rate, a.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(a.mixer)
	a.enabled = true
	log.Printf("[BeepAudio] Speaker initialized at %d Hz", a.rate)
	return nil
}

// Enabled 扬声器是否可用
func (a *BeepAudio) Enabled() bool {
	return a.enabled
}

func (a *BeepAudio) volume(base float64) float64 {
	if a.settings == nil {
		return base
	}
	return a.settings.EffectiveVolume(base)
}

// PlaySound 播放单次音效；循环音交给 PlayLoop
func (a *BeepAudio) PlaySound(id string) {
	if !a.enabled {
		return
	}
	if sfx.IsLoop(id) {
		a.PlayLoop(id)
		return
	}
	vol := a.volume(sfx.EffectVolume)
	if vol <= 0 {
		return
	}
	s := sfx.Effect(id, a.rate)
	if s == nil {
		log.Printf("[BeepAudio] Unknown sound %s", id)
		return
	}

	speaker.Lock()
	a.mixer.Add(sfx.Volume(s, vol))
	speaker.Unlock()
}

// PlayLoop 开始（或恢复）循环音并取消淡出
func (a *BeepAudio) PlayLoop(id string) {
	if !a.enabled {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	lp, ok := a.loops[id]
	if !ok {
		source := sfx.Ambience(a.rate)
		lp = &beepLoop{source: source}
		lp.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, source), Paused: true}
		lp.volume = &effects.Volume{Streamer: lp.ctrl, Base: 2}
		a.loops[id] = lp
		a.mixer.Add(lp.volume)
	}

	if !lp.ctrl.Paused && !lp.Fading {
		return
	}
	lp.Start(a.volume(1))
	sfx.SetLinearVolume(lp.volume, lp.Volume)
	lp.ctrl.Paused = false
}

// StopLoop 让循环音淡出
func (a *BeepAudio) StopLoop(id string) {
	if lp, ok := a.loops[id]; ok && !lp.ctrl.Paused {
		lp.Fading = true
	}
}

// Update 推进淡出，淡出结束后暂停并回到开头
func (a *BeepAudio) Update(dtMillis float64) {
	if !a.enabled || len(a.loops) == 0 {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	for id, lp := range a.loops {
		if !lp.Fading {
			continue
		}
		finished := lp.Step(dtMillis)
		sfx.SetLinearVolume(lp.volume, lp.Volume)
		if finished {
			lp.ctrl.Paused = true
			if err := lp.source.Seek(0); err != nil {
				log.Printf("[BeepAudio] Failed to rewind %s: %v", id, err)
			}
		}
	}
}

// Close 停止所有声音并关闭扬声器
func (a *BeepAudio) Close() {
	if !a.enabled {
		return
	}
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	a.enabled = false
}
