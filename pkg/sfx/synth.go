// Package sfx 合成游戏音效
//
// 音频文件缺失时（或终端版本没有音频文件时）用振荡器和包络拼出替代音效。
// 所有音效都是 beep.Streamer，终端前端直接交给 speaker 播放，
// 图形前端通过 EncodePCM16 转成 16 位立体声 PCM 后交给 Ebitengine。
package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/decker502/avalanche/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 合成使用的默认采样率
const SampleRate = beep.SampleRate(48000)

// EffectVolume 单次音效的基础音量
const EffectVolume = 0.2

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator 生成定长的原始波形
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator 创建振荡器
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000)+1, 0x5eed)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音/释音
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope 给 s 加上起音和释音
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Volume 线性音量（0 为静音）
func Volume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	SetLinearVolume(v, vol)
	return v
}

// SetLinearVolume 把线性音量 (0..1) 换算成 effects.Volume 的对数音量
func SetLinearVolume(v *effects.Volume, vol float64) {
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

// tone 带包络的单音
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect 返回 id 对应的单次音效，未知 id 返回 nil
func Effect(id string, rate beep.SampleRate) beep.Streamer {
	switch id {
	case game.SoundCombo:
		// 两个音的上行提示音
		return beep.Seq(
			tone(880, 70*time.Millisecond, WaveSine, rate),
			tone(1318.51, 110*time.Millisecond, WaveSine, rate),
		)
	case game.SoundHit:
		d := 220 * time.Millisecond
		return beep.Mix(
			Volume(tone(0, d, WaveNoise, rate), 0.6),
			tone(90, d, WaveSaw, rate),
		)
	case game.SoundBarrier:
		return Volume(tone(220, 60*time.Millisecond, WaveSquare, rate), 0.5)
	case game.SoundAvalanche:
		return Ambience(rate)
	default:
		return nil
	}
}

// ambienceDuration 雪崩环境音一个循环的长度
const ambienceDuration = 2 * time.Second

// Ambience 雪崩的低频轰鸣（一个循环，可 Seek）
// 播放方用 beep.Loop 或 Ebitengine 的 InfiniteLoop 循环它
func Ambience(rate beep.SampleRate) beep.StreamSeeker {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Mix(
		Volume(NewOscillator(0, ambienceDuration, WaveNoise, rate), 0.35),
		Volume(NewOscillator(55, ambienceDuration, WaveSaw, rate), 0.4),
		Volume(NewOscillator(41.2, ambienceDuration, WaveSine, rate), 0.5),
	))
	return buf.Streamer(0, buf.Len())
}

// IsLoop id 是否是循环音
func IsLoop(id string) bool {
	return id == game.SoundAvalanche
}

// EncodePCM16 把 s 渲染成 16 位小端立体声 PCM
func EncodePCM16(s beep.Streamer) []byte {
	format := beep.Format{NumChannels: 2, Precision: 2}
	frame := format.Width()

	var out []byte
	samples := make([][2]float64, 512)
	for {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			p := make([]byte, frame)
			format.EncodeSigned(p, samples[i])
			out = append(out, p...)
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}
