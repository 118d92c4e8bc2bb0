// Package resources 负责图片、音频和字体的加载与缓存
package resources

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  game:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that are loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource represents a single sprite sheet image.
//
// Example:
//
//	- id: IMAGE_SNOWBALL
//	  path: sprites/snowballSprite.png
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID, referenced by data/sprites.yaml
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundResource represents a single sound effect or loop.
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// FontResource represents a TrueType font.
type FontResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// ParseResourceConfig parses a YAML resource configuration.
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if len(config.Groups) == 0 {
		return nil, fmt.Errorf("resource config has no groups")
	}
	return &config, nil
}

// buildFullPath combines the base path with a resource's relative path.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
