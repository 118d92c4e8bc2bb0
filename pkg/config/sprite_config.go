package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// 精灵表 ID
const (
	SpriteSnowball  = "snowball"
	SpriteTree      = "tree"
	SpriteImpact    = "impact"
	SpriteAvalanche = "avalanche"
	SpriteHeart     = "heart"
)

// SpriteSheet 单行精灵表的描述
//
// 帧从左到右排列，每帧宽度 FrameWidth，高度等于整张图的高度。
type SpriteSheet struct {
	ID         string  `yaml:"-" json:"-"`
	ImageID    string  `yaml:"image" json:"image"`           // 资源ID（见 data/resources.yaml）
	Width      int     `yaml:"width" json:"width"`           // 精灵表总宽度（像素）
	Height     int     `yaml:"height" json:"height"`         // 精灵表高度（像素）
	FrameWidth int     `yaml:"frameWidth" json:"frameWidth"` // 单帧宽度（像素）
	FrameDelay float64 `yaml:"frameDelay" json:"frameDelay"` // 两帧之间的最小间隔（毫秒），0 表示每次推进都换帧
}

// FrameCount 返回帧数 floor(Width / FrameWidth)，至少为 1
func (s SpriteSheet) FrameCount() int {
	if s.FrameWidth <= 0 {
		return 1
	}
	n := s.Width / s.FrameWidth
	if n < 1 {
		return 1
	}
	return n
}

// SpriteSheets 精灵表集合（ID -> 描述）
type SpriteSheets map[string]SpriteSheet

// DefaultSpriteSheets 返回内置的精灵表描述
func DefaultSpriteSheets() SpriteSheets {
	sheets := SpriteSheets{
		SpriteSnowball:  {ImageID: "IMAGE_SNOWBALL", Width: 1625, Height: 125, FrameWidth: 125, FrameDelay: 80},
		SpriteTree:      {ImageID: "IMAGE_TREE", Width: 480, Height: 48, FrameWidth: 48, FrameDelay: 100},
		SpriteImpact:    {ImageID: "IMAGE_IMPACT", Width: 680, Height: 170, FrameWidth: 170, FrameDelay: 80},
		SpriteAvalanche: {ImageID: "IMAGE_AVALANCHE", Width: 68, Height: 72, FrameWidth: 68, FrameDelay: 0},
		SpriteHeart:     {ImageID: "IMAGE_HEART", Width: 900, Height: 158, FrameWidth: 180, FrameDelay: 0},
	}
	for id, sheet := range sheets {
		sheet.ID = id
		sheets[id] = sheet
	}
	return sheets
}

// Get 返回指定 ID 的精灵表；未配置时返回 1x1 的空表
func (s SpriteSheets) Get(id string) SpriteSheet {
	if sheet, ok := s[id]; ok {
		return sheet
	}
	return SpriteSheet{ID: id, Width: 1, Height: 1, FrameWidth: 1}
}

// IDs 返回排序后的 ID 列表
func (s SpriteSheets) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadSpriteSheets 从文件加载精灵表配置
func LoadSpriteSheets(path string) (SpriteSheets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite config: %w", err)
	}
	return ParseSpriteSheets(data)
}

// ParseSpriteSheets 解析精灵表 YAML
//
// 文件结构:
//
//	sprites:
//	  snowball:
//	    image: IMAGE_SNOWBALL
//	    width: 1625
//	    height: 125
//	    frameWidth: 125
//	    frameDelay: 80
//
// 文件中出现的条目覆盖默认条目，其余保留默认值。
func ParseSpriteSheets(data []byte) (SpriteSheets, error) {
	var file struct {
		Sprites map[string]SpriteSheet `yaml:"sprites"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sprite config: %w", err)
	}

	sheets := DefaultSpriteSheets()
	for id, sheet := range file.Sprites {
		sheet.ID = id
		if err := sheet.validate(); err != nil {
			return nil, fmt.Errorf("invalid sprite %q: %w", id, err)
		}
		sheets[id] = sheet
	}
	return sheets, nil
}

func (s SpriteSheet) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("sheet size must be positive: %dx%d", s.Width, s.Height)
	}
	if s.FrameWidth <= 0 || s.FrameWidth > s.Width {
		return fmt.Errorf("frameWidth %d out of range (sheet width %d)", s.FrameWidth, s.Width)
	}
	if s.FrameDelay < 0 {
		return fmt.Errorf("frameDelay must not be negative, got %.1f", s.FrameDelay)
	}
	return nil
}
