package resources

import (
	"bytes"
	"log"

	"github.com/decker502/avalanche/pkg/game"
	"github.com/decker502/avalanche/pkg/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// loopPlayer 循环音的播放器和淡出状态
type loopPlayer struct {
	player *audio.Player
	sfx.Fade
	playing bool
}

// AudioManager 音频管理器
// 职责：
//   - 播放单次音效（可重叠，每次新建播放器）
//   - 播放/淡出循环音（雪崩环境音）
//   - 应用 SettingsManager 中的开关和音量
//
// 实现 game.AudioSink。所有方法在 audioContext 为 nil 时什么都不做。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *game.SettingsManager // 可为 nil

	active []*audio.Player        // 正在播放的单次音效
	loops  map[string]*loopPlayer // 循环音 ID -> 播放器
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（提供解码后的 PCM）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(rm *ResourceManager, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		loops:           make(map[string]*loopPlayer),
	}
}

// effectVolume 单次音效的最终音量
func (am *AudioManager) effectVolume() float64 {
	if am.settingsManager == nil {
		return sfx.EffectVolume
	}
	return am.settingsManager.EffectiveVolume(sfx.EffectVolume)
}

// loopVolume 循环音的满音量
func (am *AudioManager) loopVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.EffectiveVolume(1)
}

// PlaySound 播放单次音效
func (am *AudioManager) PlaySound(soundID string) {
	ctx := am.resourceManager.AudioContext()
	if ctx == nil {
		return
	}
	volume := am.effectVolume()
	if volume <= 0 {
		return
	}

	pcm := am.resourceManager.SoundPCM(soundID)
	if pcm == nil {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return
	}

	player := ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(volume)
	player.Play()
	am.active = append(am.active, player)
}

// PlayLoop 开始（或恢复）循环音，正在淡出的会立即恢复满音量
func (am *AudioManager) PlayLoop(soundID string) {
	lp := am.loop(soundID)
	if lp == nil {
		return
	}

	lp.Start(am.loopVolume())
	lp.player.SetVolume(lp.Volume)
	if !lp.playing {
		lp.player.Play()
		lp.playing = true
	}
}

// StopLoop 开始淡出循环音，淡出完成后暂停并回到开头
func (am *AudioManager) StopLoop(soundID string) {
	lp, ok := am.loops[soundID]
	if !ok || !lp.playing {
		return
	}
	lp.Fading = true
}

// Update 推进淡出并释放播放结束的音效
// dtMillis 为距上次调用的毫秒数
func (am *AudioManager) Update(dtMillis float64) {
	for _, lp := range am.loops {
		if !lp.Fading {
			continue
		}
		if lp.Step(dtMillis) {
			lp.playing = false
			lp.player.Pause()
			if err := lp.player.Rewind(); err != nil {
				log.Printf("[AudioManager] Warning: Failed to rewind loop: %v", err)
			}
		}
		lp.player.SetVolume(lp.Volume)
	}

	kept := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			kept = append(kept, p)
		}
	}
	am.active = kept
}

// StopAll 立即停止所有声音（退出或切换场景时调用）
func (am *AudioManager) StopAll() {
	for _, p := range am.active {
		p.Pause()
	}
	am.active = nil
	for _, lp := range am.loops {
		lp.player.Pause()
		lp.playing = false
		lp.Fading = false
	}
}

// loop 获取或创建循环音播放器
func (am *AudioManager) loop(soundID string) *loopPlayer {
	if lp, ok := am.loops[soundID]; ok {
		return lp
	}

	ctx := am.resourceManager.AudioContext()
	if ctx == nil {
		return nil
	}
	pcm := am.resourceManager.SoundPCM(soundID)
	if len(pcm) == 0 {
		log.Printf("[AudioManager] Warning: Loop not found: %s", soundID)
		return nil
	}

	stream := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create loop player %s: %v", soundID, err)
		return nil
	}

	lp := &loopPlayer{player: player}
	am.loops[soundID] = lp
	return lp
}

var _ game.AudioSink = (*AudioManager)(nil)
