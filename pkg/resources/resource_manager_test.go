package resources

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// createTestImage writes a solid PNG of the given size.
func createTestImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
}

// newManagerWithConfig writes a config pointing into dir and loads it.
func newManagerWithConfig(t *testing.T, ctx *audio.Context, dir string) *ResourceManager {
	t.Helper()

	yaml := `
version: "1.0"
base_path: ` + filepath.ToSlash(dir) + `
groups:
  game:
    images:
      - id: IMAGE_TREE
        path: tree.png
      - id: IMAGE_SNOWBALL
        path: missing.png
    sounds:
      - id: SOUND_HIT
        path: missing.mp3
    fonts:
      - id: FONT_EIGHTBIT
        path: missing.ttf
`
	path := filepath.Join(dir, "resources.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	rm := NewResourceManager(ctx)
	if err := rm.LoadResourceConfig(path); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	return rm
}

func TestLoadBundledResourceConfig(t *testing.T) {
	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig("../../data/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}

	sheets := config.DefaultSpriteSheets()
	for _, id := range sheets.IDs() {
		imageID := sheets.Get(id).ImageID
		if _, ok := rm.ResolvePath(imageID); !ok {
			t.Errorf("sprite %s: image %s not listed in resources.yaml", id, imageID)
		}
	}
	for _, id := range []string{game.SoundCombo, game.SoundHit, game.SoundBarrier, game.SoundAvalanche} {
		if _, ok := rm.ResolvePath(id); !ok {
			t.Errorf("sound %s not listed in resources.yaml", id)
		}
	}
	if path, _ := rm.ResolvePath("IMAGE_SNOWBALL"); path != "assets/sprites/snowballSprite.png" {
		t.Errorf("unexpected snowball path %q", path)
	}
}

func TestLoadResourceConfigMissingFile(t *testing.T) {
	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
	if _, err := rm.LoadImageByID("IMAGE_TREE"); err == nil {
		t.Error("LoadImageByID without a config should fail")
	}
}

func TestLoadImageCaches(t *testing.T) {
	dir := t.TempDir()
	createTestImage(t, filepath.Join(dir, "tree.png"), 20, 10)
	rm := newManagerWithConfig(t, nil, dir)

	img1, err := rm.LoadImageByID("IMAGE_TREE")
	if err != nil {
		t.Fatalf("LoadImageByID: %v", err)
	}
	img2, _ := rm.LoadImageByID("IMAGE_TREE")
	if img1 != img2 {
		t.Error("second load should return the cached image")
	}
	if b := img1.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("unexpected bounds %v", b)
	}

	if _, err := rm.LoadImageByID("IMAGE_UNKNOWN"); err == nil {
		t.Error("unknown ID should fail")
	}
}

func TestLoadSpriteSheetsUsesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	createTestImage(t, filepath.Join(dir, "tree.png"), 480, 48)
	rm := newManagerWithConfig(t, nil, dir)

	sheets := config.DefaultSpriteSheets()
	images := rm.LoadSpriteSheets(sheets)

	for _, id := range sheets.IDs() {
		img := images[id]
		if img == nil {
			t.Fatalf("no image for sheet %s", id)
		}
		sheet := sheets.Get(id)
		if b := img.Bounds(); b.Dx() != sheet.Width || b.Dy() != sheet.Height {
			t.Errorf("sheet %s: image %dx%d, want %dx%d", id, b.Dx(), b.Dy(), sheet.Width, sheet.Height)
		}
	}

	missing := rm.MissingResources()
	if len(missing) == 0 {
		t.Fatal("missing images should be reported")
	}
	for _, id := range missing {
		if id == "IMAGE_TREE" {
			t.Error("IMAGE_TREE exists and must not be reported missing")
		}
	}
}

func TestSoundPCM(t *testing.T) {
	dir := t.TempDir()

	// 没有音频上下文时不解码
	if pcm := newManagerWithConfig(t, nil, dir).SoundPCM(game.SoundHit); pcm != nil {
		t.Error("SoundPCM without an audio context should return nil")
	}

	rm := newManagerWithConfig(t, testAudioContext, dir)
	pcm := rm.SoundPCM(game.SoundHit)
	if len(pcm) == 0 {
		t.Fatal("missing sound file should be synthesized")
	}
	if len(pcm)%4 != 0 {
		t.Errorf("PCM length %d is not whole stereo frames", len(pcm))
	}
	if again := rm.SoundPCM(game.SoundHit); &again[0] != &pcm[0] {
		t.Error("second call should return the cached PCM")
	}

	found := false
	for _, id := range rm.MissingResources() {
		if id == game.SoundHit {
			found = true
		}
	}
	if !found {
		t.Error("synthesized sound should be reported missing")
	}

	// 未登记且没有合成配方
	if pcm := rm.SoundPCM("SOUND_UNKNOWN"); pcm != nil {
		t.Error("unknown sound should return nil")
	}
}

func TestFaceFallsBackToGoRegular(t *testing.T) {
	rm := newManagerWithConfig(t, nil, t.TempDir())
	rm.LoadFont("FONT_EIGHTBIT")

	face := rm.Face(20)
	if face == nil || face.Source == nil {
		t.Fatal("expected a usable fallback face")
	}
	if rm.Face(20) != face {
		t.Error("faces should be cached per size")
	}
	if rm.Face(30) == face {
		t.Error("different sizes need different faces")
	}
}
