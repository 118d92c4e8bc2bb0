package resources

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/avalanche/pkg/config"
	"github.com/decker502/avalanche/pkg/embedded"
	"github.com/decker502/avalanche/pkg/sfx"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of game resources.
// It loads and caches sprite sheets, decoded sound effects and font faces.
//
// Every resource has a fallback: sprite sheets missing from disk are replaced by
// generated placeholders, missing sounds are synthesized and a missing font falls
// back to Go Regular. Missing files are recorded and can be listed with
// MissingResources, but never prevent the game from starting.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game loop
// goroutine (LoadingScene), so no synchronization is needed.
type ResourceManager struct {
	audioContext *audio.Context // may be nil (audio disabled)

	imageCache    map[string]*ebiten.Image     // path -> image
	soundCache    map[string][]byte            // sound ID -> 16 bit stereo PCM
	fontSource    *text.GoTextFaceSource       // shared source for all sizes
	fontFaceCache map[float64]*text.GoTextFace // size -> face

	config      *ResourceConfig
	resourceMap map[string]string // Resource ID -> file path

	missing map[string]bool
}

// NewResourceManager creates a ResourceManager.
// audioContext may be nil, in which case sounds are never decoded.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		imageCache:    make(map[string]*ebiten.Image),
		soundCache:    make(map[string][]byte),
		fontFaceCache: make(map[float64]*text.GoTextFace),
		resourceMap:   make(map[string]string),
		missing:       make(map[string]bool),
	}
}

// readResource reads a file from the embedded file systems when available,
// otherwise from disk relative to the working directory.
func readResource(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		if data, err := embedded.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}

// ReadFile reads a data or asset file the same way resources are read.
func (rm *ResourceManager) ReadFile(path string) ([]byte, error) {
	return readResource(path)
}

// LoadResourceConfig loads the resource configuration from a YAML file.
// This method should be called once during game initialization, before loading any resources.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readResource(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	rm.config = config
	rm.buildResourceMap()
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	IMAGE_SNOWBALL -> assets/sprites/snowballSprite.png
//	SOUND_HIT -> assets/sfx/hit.mp3
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}
		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".mp3"
			}
			rm.resourceMap[sound.ID] = fullPath
		}
		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = buildFullPath(rm.config.BasePath, font.Path)
		}
	}
}

// ResolvePath returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	path, ok := rm.resourceMap[resourceID]
	return path, ok
}

// LoadImage loads an image file and caches it.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	data, err := readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadImageByID loads an image using its resource ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}
	return rm.LoadImage(filePath)
}

// LoadSpriteSheets loads the image of every sprite sheet, keyed by sheet ID.
// Sheets whose image is missing or undecodable get a generated placeholder
// with the configured dimensions, so frame rectangles stay valid.
func (rm *ResourceManager) LoadSpriteSheets(sheets config.SpriteSheets) map[string]*ebiten.Image {
	images := make(map[string]*ebiten.Image, len(sheets))

	for _, id := range sheets.IDs() {
		sheet := sheets.Get(id)

		img, err := rm.LoadImageByID(sheet.ImageID)
		if err != nil {
			log.Printf("[ResourceManager] Sprite %s: %v (using placeholder)", id, err)
			rm.missing[sheet.ImageID] = true
			img = GeneratePlaceholder(sheet)
		} else if b := img.Bounds(); b.Dx() < sheet.Width || b.Dy() < sheet.Height {
			log.Printf("[ResourceManager] Warning: %s is %dx%d, smaller than configured %dx%d",
				sheet.ImageID, b.Dx(), b.Dy(), sheet.Width, sheet.Height)
		}
		images[id] = img
	}
	return images
}

// LoadSounds decodes every sound in the group. Sounds that cannot be loaded
// are synthesized instead.
func (rm *ResourceManager) LoadSounds(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	for _, sound := range group.Sounds {
		rm.SoundPCM(sound.ID)
	}
	return nil
}

// SoundPCM returns the decoded 16 bit stereo PCM of a sound, loading it on first use.
// Returns nil when audio is disabled or the ID has no file and no synthesized substitute.
func (rm *ResourceManager) SoundPCM(soundID string) []byte {
	if rm.audioContext == nil {
		return nil
	}
	if pcm, ok := rm.soundCache[soundID]; ok {
		return pcm
	}

	var pcm []byte
	path, ok := rm.resourceMap[soundID]
	if ok {
		var err error
		pcm, err = rm.decodeSound(path)
		if err != nil {
			log.Printf("[ResourceManager] Sound %s: %v (synthesizing)", soundID, err)
			rm.missing[soundID] = true
		}
	}

	if pcm == nil {
		if s := sfx.Effect(soundID, beep.SampleRate(rm.audioContext.SampleRate())); s != nil {
			pcm = sfx.EncodePCM16(s)
		}
	}

	rm.soundCache[soundID] = pcm
	return pcm
}

// decodeSound decodes an MP3 or OGG file into PCM at the context sample rate.
func (rm *ResourceManager) decodeSound(path string) ([]byte, error) {
	data, err := readResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}

	reader := bytes.NewReader(data)
	sampleRate := rm.audioContext.SampleRate()

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		decodedStream, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = decodedStream
	case ".ogg":
		decodedStream, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = decodedStream
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream %s: %w", path, err)
	}
	return pcm, nil
}

// LoadFont loads the TrueType font registered under fontID.
// Falls back to Go Regular when the file is missing or cannot be parsed.
func (rm *ResourceManager) LoadFont(fontID string) {
	if rm.fontSource != nil {
		return
	}

	if path, ok := rm.resourceMap[fontID]; ok {
		data, err := readResource(path)
		if err == nil {
			source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
			if err == nil {
				rm.fontSource = source
				return
			}
			log.Printf("[ResourceManager] Font %s: %v", fontID, err)
		} else {
			log.Printf("[ResourceManager] Font %s: %v (using Go Regular)", fontID, err)
		}
		rm.missing[fontID] = true
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		// 内置字体解析失败说明构建有问题
		panic(fmt.Sprintf("failed to parse built-in font: %v", err))
	}
	rm.fontSource = source
}

// Face returns a cached font face of the given size.
func (rm *ResourceManager) Face(size float64) *text.GoTextFace {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}
	if rm.fontSource == nil {
		rm.LoadFont("")
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}

// AudioContext returns the audio context (nil when audio is disabled).
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// MissingResources lists the resource IDs that were replaced by substitutes.
func (rm *ResourceManager) MissingResources() []string {
	ids := make([]string, 0, len(rm.missing))
	for id := range rm.missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
