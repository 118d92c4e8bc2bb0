package resources

import (
	"testing"

	"github.com/decker502/avalanche/pkg/game"
)

func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(NewResourceManager(nil), nil)

	// 全部是空操作
	am.PlaySound(game.SoundCombo)
	am.PlayLoop(game.SoundAvalanche)
	am.StopLoop(game.SoundAvalanche)
	am.Update(100)
	am.StopAll()

	if len(am.active) != 0 || len(am.loops) != 0 {
		t.Error("no players should be created without an audio context")
	}
}

func TestAudioManagerSoundDisabled(t *testing.T) {
	sm := game.NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(newManagerWithConfig(t, testAudioContext, t.TempDir()), sm)

	am.PlaySound(game.SoundHit)
	if len(am.active) != 0 {
		t.Error("disabled sound must not start players")
	}
}

func TestAudioManagerLoopFade(t *testing.T) {
	am := NewAudioManager(newManagerWithConfig(t, testAudioContext, t.TempDir()), nil)

	am.PlayLoop(game.SoundAvalanche)
	lp := am.loops[game.SoundAvalanche]
	if lp == nil || !lp.playing || lp.Volume != 1 {
		t.Fatalf("loop should be playing at full volume: %+v", lp)
	}

	am.StopLoop(game.SoundAvalanche)
	am.Update(500)
	if !lp.playing || lp.Volume > 0.51 || lp.Volume < 0.49 {
		t.Fatalf("after 500ms of fading expected volume 0.5, got %.3f playing=%v", lp.Volume, lp.playing)
	}

	// 淡出中再次播放恢复满音量
	am.PlayLoop(game.SoundAvalanche)
	if lp.Fading || lp.Volume != 1 {
		t.Fatalf("PlayLoop should cancel the fade: fading=%v volume=%.2f", lp.Fading, lp.Volume)
	}

	am.StopLoop(game.SoundAvalanche)
	am.Update(1000)
	if lp.playing || lp.Volume != 0 {
		t.Errorf("loop should be stopped after a full fade: playing=%v volume=%.2f", lp.playing, lp.Volume)
	}
}
