package sfx

// LoopFadePerMillisecond 循环音淡出速度：每 100 毫秒降低 0.1
const LoopFadePerMillisecond = 0.1 / 100

// Fade 循环音的音量和淡出状态
//
// 两个前端共用：Ebitengine 的 AudioManager 和终端的 BeepAudio 每帧调用 Step，
// 再把 Volume 应用到各自的播放器上。
type Fade struct {
	Volume float64
	Fading bool
}

// Start 恢复满音量并取消淡出
func (f *Fade) Start(volume float64) {
	f.Volume = volume
	f.Fading = false
}

// Step 推进 dtMillis 毫秒的淡出
// 音量降到 0 时结束淡出并返回 true（只在完成的那一次返回 true）
func (f *Fade) Step(dtMillis float64) bool {
	if !f.Fading {
		return false
	}
	f.Volume -= LoopFadePerMillisecond * dtMillis
	if f.Volume > 0 {
		return false
	}
	f.Volume = 0
	f.Fading = false
	return true
}
