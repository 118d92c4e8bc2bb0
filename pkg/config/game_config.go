package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 逻辑屏幕尺寸（Ebitengine Layout 返回值，所有实体坐标都基于此尺寸）
const (
	GameWindowWidth  = 960
	GameWindowHeight = 640
)

// GameConfig 游戏调参配置
//
// 所有速率都以"每帧的量"表示，再乘以全局速度（gSpeed）；
// 只有时间相关的字段（毫秒）使用帧时间戳比较。
//
// 配置文件位置: data/game_config.yaml
// 文件中缺省的字段保留 DefaultGameConfig() 的默认值。
type GameConfig struct {
	Screen    ScreenConfig    `yaml:"screen" json:"screen"`
	Player    PlayerConfig    `yaml:"player" json:"player"`
	Trail     TrailConfig     `yaml:"trail" json:"trail"`
	Obstacle  ObstacleConfig  `yaml:"obstacle" json:"obstacle"`
	Avalanche AvalancheConfig `yaml:"avalanche" json:"avalanche"`
	Session   SessionConfig   `yaml:"session" json:"session"`
	Barrier   BarrierConfig   `yaml:"barrier" json:"barrier"`
	HUD       HUDConfig       `yaml:"hud" json:"hud"`
}

// ScreenConfig 屏幕尺寸
type ScreenConfig struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// PlayerConfig 雪球参数
type PlayerConfig struct {
	InitialSize          float64 `yaml:"initialSize" json:"initialSize"`                   // 初始大小（也是一条命对应的大小）
	MaxSize              float64 `yaml:"maxSize" json:"maxSize"`                           // 最大大小
	Growth               float64 `yaml:"growth" json:"growth"`                             // 每帧增长量（乘以 gSpeed）
	MinSpeed             float64 `yaml:"minSpeed" json:"minSpeed"`                         // 最低水平速度
	TargetSpeed          float64 `yaml:"targetSpeed" json:"targetSpeed"`                   // 目标水平速度
	Acceleration         float64 `yaml:"acceleration" json:"acceleration"`                 // 每帧加速度
	DirectionChangeDelay float64 `yaml:"directionChangeDelay" json:"directionChangeDelay"` // 两次转向之间的最小间隔（毫秒）
	StartYRatio          float64 `yaml:"startYRatio" json:"startYRatio"`                   // 垂直位置 = 屏幕高度 * 比例
	HitboxScale          float64 `yaml:"hitboxScale" json:"hitboxScale"`                   // 碰撞盒相对精灵的缩放
	ImpactScale          float64 `yaml:"impactScale" json:"impactScale"`                   // 受击特效相对雪球的大小
}

// TrailConfig 雪痕参数
type TrailConfig struct {
	ScrollRate        float64 `yaml:"scrollRate" json:"scrollRate"`               // 每帧上移量（乘以 gSpeed）
	BaseThickness     float64 `yaml:"baseThickness" json:"baseThickness"`         // 基础粗细
	ThicknessPerSpeed float64 `yaml:"thicknessPerSpeed" json:"thicknessPerSpeed"` // 每单位 gSpeed 增加的粗细
	WidthInset        float64 `yaml:"widthInset" json:"widthInset"`               // 相对碰撞盒宽度的收缩
}

// ObstacleConfig 障碍物（树）参数
type ObstacleConfig struct {
	MinSize      float64 `yaml:"minSize" json:"minSize"`
	MaxSize      float64 `yaml:"maxSize" json:"maxSize"`
	ScrollRate   float64 `yaml:"scrollRate" json:"scrollRate"`     // 每帧上移量（乘以 gSpeed）
	BonusScale   float64 `yaml:"bonusScale" json:"bonusScale"`     // 奖励环相对精灵的缩放
	DamageScale  float64 `yaml:"damageScale" json:"damageScale"`   // 伤害核心相对精灵的缩放
	DamageShiftX float64 `yaml:"damageShiftX" json:"damageShiftX"` // 伤害核心 X 偏移 = size / DamageShiftX
	DamageShiftY float64 `yaml:"damageShiftY" json:"damageShiftY"` // 伤害核心 Y 偏移 = size / DamageShiftY
}

// AvalancheConfig 雪崩参数
type AvalancheConfig struct {
	StartDistance     float64 `yaml:"startDistance" json:"startDistance"`         // 初始落后距离（负值）
	StartSpeedRatio   float64 `yaml:"startSpeedRatio" json:"startSpeedRatio"`     // 初始速度 = Session.MinSpeed * 比例
	MaxSpeedRatio     float64 `yaml:"maxSpeedRatio" json:"maxSpeedRatio"`         // 最大速度 = Session.MaxSpeed * 比例
	Acceleration      float64 `yaml:"acceleration" json:"acceleration"`           // 每帧加速度
	VisibilityDivisor float64 `yaml:"visibilityDivisor" json:"visibilityDivisor"` // 可见阈值 = 屏幕高度 / 除数
	GameOverStep      float64 `yaml:"gameOverStep" json:"gameOverStep"`           // 结束动画每帧下移量
}

// SessionConfig 全局节奏参数
type SessionConfig struct {
	MinSpeed          float64 `yaml:"minSpeed" json:"minSpeed"`                   // gSpeed 下限
	MaxSpeed          float64 `yaml:"maxSpeed" json:"maxSpeed"`                   // gSpeed 上限
	Acceleration      float64 `yaml:"acceleration" json:"acceleration"`           // gSpeed 每帧增长
	SpawnInterval     float64 `yaml:"spawnInterval" json:"spawnInterval"`         // 生成间隔（毫秒，除以 gSpeed）
	ComboDecay        float64 `yaml:"comboDecay" json:"comboDecay"`               // 连击失效时间（毫秒）
	MaxCombo          int     `yaml:"maxCombo" json:"maxCombo"`                   // 连击上限
	SpeedGainPerBonus float64 `yaml:"speedGainPerBonus" json:"speedGainPerBonus"` // 每次奖励增加的 gSpeed
	HitSpeedDivisor   float64 `yaml:"hitSpeedDivisor" json:"hitSpeedDivisor"`     // 受击时 gSpeed 的除数
	ScoreDivisor      int     `yaml:"scoreDivisor" json:"scoreDivisor"`           // 显示分数 = score / 除数
}

// BarrierConfig 屏幕边缘指示线参数
type BarrierConfig struct {
	MaxWidth float64 `yaml:"maxWidth" json:"maxWidth"` // 指示线最大粗细
	Falloff  float64 `yaml:"falloff" json:"falloff"`   // 粗细 = min(MaxWidth, Falloff / 距离)
}

// HUDConfig HUD 布局与连击颜色
type HUDConfig struct {
	ScoreFontSize float64  `yaml:"scoreFontSize" json:"scoreFontSize"`
	ComboFontSize float64  `yaml:"comboFontSize" json:"comboFontSize"`
	Hearts        int      `yaml:"hearts" json:"hearts"`
	HeartWidth    float64  `yaml:"heartWidth" json:"heartWidth"`
	HeartHeight   float64  `yaml:"heartHeight" json:"heartHeight"`
	ComboColors   []string `yaml:"comboColors" json:"comboColors"` // 五档颜色：x1, 2-3, 4-6, 7-9, >=10
}

// DefaultGameConfig 返回默认配置（与原版手感一致的数值）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Screen: ScreenConfig{
			Width:  GameWindowWidth,
			Height: GameWindowHeight,
		},
		Player: PlayerConfig{
			InitialSize:          35,
			MaxSize:              105,
			Growth:               0.05,
			MinSpeed:             2,
			TargetSpeed:          4,
			Acceleration:         0.1,
			DirectionChangeDelay: 100,
			StartYRatio:          0.2,
			HitboxScale:          0.8,
			ImpactScale:          2,
		},
		Trail: TrailConfig{
			ScrollRate:        4,
			BaseThickness:     5,
			ThicknessPerSpeed: 4,
			WidthInset:        10,
		},
		Obstacle: ObstacleConfig{
			MinSize:      96,
			MaxSize:      120,
			ScrollRate:   4,
			BonusScale:   1.5,
			DamageScale:  0.5,
			DamageShiftX: 15,
			DamageShiftY: 5,
		},
		Avalanche: AvalancheConfig{
			StartDistance:     -100,
			StartSpeedRatio:   0.5,
			MaxSpeedRatio:     0.9,
			Acceleration:      0.001,
			VisibilityDivisor: 6,
			GameOverStep:      5,
		},
		Session: SessionConfig{
			MinSpeed:          1,
			MaxSpeed:          3.5,
			Acceleration:      0.001,
			SpawnInterval:     1000,
			ComboDecay:        2000,
			MaxCombo:          10,
			SpeedGainPerBonus: 0.1,
			HitSpeedDivisor:   1.5,
			ScoreDivisor:      10,
		},
		Barrier: BarrierConfig{
			MaxWidth: 3,
			Falloff:  80,
		},
		HUD: HUDConfig{
			ScoreFontSize: 30,
			ComboFontSize: 20,
			Hearts:        2,
			HeartWidth:    60,
			HeartHeight:   52.6,
			ComboColors:   []string{"#e5e5e5", "#00aeff", "#ffa42d", "#fc5914", "#8e0000"},
		},
	}
}

// LoadGameConfig 从文件加载游戏配置
//
// 参数:
//   - path: 配置文件路径（如 "data/game_config.yaml"）
//
// 返回:
//   - *GameConfig: 合并默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 格式的游戏配置
// 未出现在 YAML 中的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查项：
//   - 屏幕尺寸为正
//   - 各种 [min, max] 区间满足 min <= max
//   - 除数不为零
//   - 各种速率不为负
//   - 连击颜色恰好五档
func (c *GameConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive: %.0fx%.0f", c.Screen.Width, c.Screen.Height)
	}

	// 速率为负会让 Approach 越过下限，速度和大小不再饱和
	rates := []struct {
		name  string
		value float64
	}{
		{"player.growth", c.Player.Growth},
		{"player.acceleration", c.Player.Acceleration},
		{"trail.scrollRate", c.Trail.ScrollRate},
		{"trail.thicknessPerSpeed", c.Trail.ThicknessPerSpeed},
		{"obstacle.scrollRate", c.Obstacle.ScrollRate},
		{"avalanche.acceleration", c.Avalanche.Acceleration},
		{"session.acceleration", c.Session.Acceleration},
		{"session.speedGainPerBonus", c.Session.SpeedGainPerBonus},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("%s must not be negative, got %.3f", r.name, r.value)
		}
	}

	p := c.Player
	if p.InitialSize <= 0 || p.InitialSize > p.MaxSize {
		return fmt.Errorf("player size range invalid: initial(%.1f) max(%.1f)", p.InitialSize, p.MaxSize)
	}
	if p.MinSpeed <= 0 || p.MinSpeed > p.TargetSpeed {
		return fmt.Errorf("player speed range invalid: min(%.1f) > target(%.1f)", p.MinSpeed, p.TargetSpeed)
	}
	if p.HitboxScale <= 0 {
		return fmt.Errorf("player hitboxScale must be positive, got %.2f", p.HitboxScale)
	}

	o := c.Obstacle
	if o.MinSize <= 0 || o.MinSize > o.MaxSize {
		return fmt.Errorf("obstacle size range invalid: min(%.1f) > max(%.1f)", o.MinSize, o.MaxSize)
	}
	if o.MaxSize > c.Screen.Width {
		return fmt.Errorf("obstacle maxSize(%.1f) wider than screen(%.1f)", o.MaxSize, c.Screen.Width)
	}
	if o.DamageShiftX == 0 || o.DamageShiftY == 0 {
		return fmt.Errorf("obstacle damage shift divisors must be non-zero")
	}

	s := c.Session
	if s.MinSpeed <= 0 || s.MinSpeed > s.MaxSpeed {
		return fmt.Errorf("session speed range invalid: min(%.2f) > max(%.2f)", s.MinSpeed, s.MaxSpeed)
	}
	if s.MaxCombo < 1 {
		return fmt.Errorf("session maxCombo must be >= 1, got %d", s.MaxCombo)
	}
	if s.HitSpeedDivisor <= 0 {
		return fmt.Errorf("session hitSpeedDivisor must be positive, got %.2f", s.HitSpeedDivisor)
	}
	if s.ScoreDivisor < 1 {
		return fmt.Errorf("session scoreDivisor must be >= 1, got %d", s.ScoreDivisor)
	}

	if c.Avalanche.VisibilityDivisor <= 0 {
		return fmt.Errorf("avalanche visibilityDivisor must be positive, got %.2f", c.Avalanche.VisibilityDivisor)
	}
	if c.Avalanche.GameOverStep <= 0 {
		return fmt.Errorf("avalanche gameOverStep must be positive, got %.2f", c.Avalanche.GameOverStep)
	}

	if len(c.HUD.ComboColors) != 5 {
		return fmt.Errorf("hud comboColors must list 5 tiers, got %d", len(c.HUD.ComboColors))
	}
	for _, hex := range c.HUD.ComboColors {
		if _, err := ParseHexColor(hex); err != nil {
			return err
		}
	}

	return nil
}
