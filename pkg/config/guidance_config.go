package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/decker502/arpathfinder/pkg/components"
	"gopkg.in/yaml.v3"
)

// ErrEmptyScript 引导脚本为空
var ErrEmptyScript = errors.New("guidance script has no steps")

// GuidanceConfig 引导模拟器配置（脚本 + 时间参数）
// 对应 data/guidance.yaml
type GuidanceConfig struct {
	Steps      []StepConfig     `yaml:"steps"`      // 有序脚本
	Tap        TapConfig        `yaml:"tap"`        // 点击去抖
	Cue        CueConfig        `yaml:"cue"`        // 发光提示动画
	Distance   DistanceConfig   `yaml:"distance"`   // 模拟距离倒计时
	Message    MessageConfig    `yaml:"message"`    // 对话消息
	Onboarding OnboardingConfig `yaml:"onboarding"` // 开始前的引导提示
}

// StepConfig 脚本步骤（message 与 direction 二选一）
type StepConfig struct {
	Message   string `yaml:"message,omitempty"`
	Direction string `yaml:"direction,omitempty"`
}

// TapConfig 点击冷却配置
type TapConfig struct {
	Cooldown float64 `yaml:"cooldown"` // 秒
}

// CueConfig 发光动画配置，三段：渐入、保持、渐出
type CueConfig struct {
	FadeIn  float64 `yaml:"fadeIn"`  // 秒
	Hold    float64 `yaml:"hold"`    // 秒
	FadeOut float64 `yaml:"fadeOut"` // 秒
	Easing  string  `yaml:"easing"`  // linear | easeInOutCubic | easeOutCubic

	// InstantDirections 这些方向不做渐变，立即全亮，到时直接消失
	InstantDirections []string `yaml:"instantDirections"`
}

// Total 返回一次完整动画的时长（秒）
func (c CueConfig) Total() float64 {
	return c.FadeIn + c.Hold + c.FadeOut
}

// DistanceConfig 模拟距离倒计时配置
type DistanceConfig struct {
	Initial      float64 `yaml:"initial"`      // 初始距离（米）
	Total        float64 `yaml:"total"`        // 一轮倒计时的总递减量（米）
	Ticks        int     `yaml:"ticks"`        // 一轮的递减次数
	TickInterval float64 `yaml:"tickInterval"` // 递减间隔（秒）
	LeadDelay    float64 `yaml:"leadDelay"`    // 触发后的引导延迟（秒）
	Floor        float64 `yaml:"floor"`        // 最小距离

	// ApproachDirection 触发倒计时的"靠近"方向
	ApproachDirection string `yaml:"approachDirection"`
}

// MessageConfig 对话消息配置
type MessageConfig struct {
	DisplayDuration float64 `yaml:"displayDuration"` // 自动清除时间（秒）
}

// OnboardingConfig 引导提示文字
type OnboardingConfig struct {
	Message      string `yaml:"message"`
	ConfirmLabel string `yaml:"confirmLabel"`
	DeclineLabel string `yaml:"declineLabel"`
}

// DefaultGuidanceConfig 返回内置默认配置
// 与 data/guidance.yaml 保持一致，用于测试和配置加载失败时的降级
func DefaultGuidanceConfig() *GuidanceConfig {
	return &GuidanceConfig{
		Steps: []StepConfig{
			{Message: "🚪 Open the door and get inside"},
			{Direction: "top"},
			{Direction: "right"},
			{Direction: "top"},
			{Direction: "right"},
			{Direction: "top"},
			{Direction: "right"},
			{Message: "🎯 Oanh is right behind the door!"},
		},
		Tap: TapConfig{Cooldown: 2.0},
		Cue: CueConfig{
			FadeIn:  0.3,
			Hold:    0.8,
			FadeOut: 0.6,
			Easing:  "linear",
		},
		Distance: DistanceConfig{
			Initial:           25.0,
			Total:             8.0,
			Ticks:             26,
			TickInterval:      0.15,
			LeadDelay:         1.5,
			Floor:             0,
			ApproachDirection: "top",
		},
		Message: MessageConfig{DisplayDuration: 3.0},
		Onboarding: OnboardingConfig{
			Message: "Hey Olari, we noticed that you're getting a bit bored. " +
				"Oanh, who you met at a pub a month ago, is also here alone and dancing in the middle of the crowd. " +
				"She's open to connecting. Do you wanna go find her?",
			ConfirmLabel: "Yes, start tracking",
			DeclineLabel: "No",
		},
	}
}

// LoadGuidanceConfig 从 YAML 文件加载引导配置
func LoadGuidanceConfig(filePath string) (*GuidanceConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read guidance config file: %w", err)
	}
	return ParseGuidanceConfig(data)
}

// ParseGuidanceConfig 解析 YAML 字节
// 未填写的字段使用默认值
func ParseGuidanceConfig(data []byte) (*GuidanceConfig, error) {
	config := DefaultGuidanceConfig()
	config.Steps = nil

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse guidance YAML: %w", err)
	}

	if err := validateGuidanceConfig(config); err != nil {
		return nil, fmt.Errorf("invalid guidance config: %w", err)
	}

	return config, nil
}

// Script 将配置中的步骤转换为组件使用的 Step 列表
func (c *GuidanceConfig) Script() ([]components.Step, error) {
	if len(c.Steps) == 0 {
		return nil, ErrEmptyScript
	}

	steps := make([]components.Step, 0, len(c.Steps))
	for i, sc := range c.Steps {
		switch {
		case sc.Message != "" && sc.Direction != "":
			return nil, fmt.Errorf("step %d: message and direction are mutually exclusive", i)
		case sc.Message != "":
			steps = append(steps, components.MessageStep(sc.Message))
		case sc.Direction != "":
			dir, err := components.ParseDirection(sc.Direction)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			steps = append(steps, components.DirectionStep(dir))
		default:
			return nil, fmt.Errorf("step %d: either message or direction is required", i)
		}
	}
	return steps, nil
}

// ApproachDirection 返回触发距离倒计时的方向
func (c *GuidanceConfig) ApproachDirection() components.Direction {
	dir, err := components.ParseDirection(c.Distance.ApproachDirection)
	if err != nil {
		return components.DirectionTop
	}
	return dir
}

// InstantDirections 返回不做渐变的方向集合
func (c *GuidanceConfig) InstantDirections() map[components.Direction]bool {
	result := make(map[components.Direction]bool, len(c.Cue.InstantDirections))
	for _, name := range c.Cue.InstantDirections {
		if dir, err := components.ParseDirection(name); err == nil {
			result[dir] = true
		}
	}
	return result
}

// validateGuidanceConfig 验证配置的有效性
func validateGuidanceConfig(config *GuidanceConfig) error {
	if _, err := config.Script(); err != nil {
		return err
	}

	if config.Tap.Cooldown < 0 {
		return fmt.Errorf("tap.cooldown must be >= 0, got %v", config.Tap.Cooldown)
	}

	if config.Cue.FadeIn < 0 || config.Cue.Hold < 0 || config.Cue.FadeOut < 0 {
		return fmt.Errorf("cue durations must be >= 0")
	}
	if config.Cue.Total() <= 0 {
		return fmt.Errorf("cue total duration must be > 0")
	}
	switch config.Cue.Easing {
	case "", "linear", "easeInOutCubic", "easeOutCubic":
	default:
		return fmt.Errorf("unknown cue easing %q", config.Cue.Easing)
	}
	for _, name := range config.Cue.InstantDirections {
		if _, err := components.ParseDirection(name); err != nil {
			return fmt.Errorf("cue.instantDirections: %w", err)
		}
	}

	d := config.Distance
	if d.Ticks <= 0 {
		return fmt.Errorf("distance.ticks must be > 0, got %d", d.Ticks)
	}
	if d.TickInterval <= 0 {
		return fmt.Errorf("distance.tickInterval must be > 0, got %v", d.TickInterval)
	}
	if d.LeadDelay < 0 {
		return fmt.Errorf("distance.leadDelay must be >= 0, got %v", d.LeadDelay)
	}
	if d.Initial < d.Floor {
		return fmt.Errorf("distance.initial (%v) must be >= distance.floor (%v)", d.Initial, d.Floor)
	}
	if _, err := components.ParseDirection(d.ApproachDirection); err != nil {
		return fmt.Errorf("distance.approachDirection: %w", err)
	}

	if config.Message.DisplayDuration <= 0 {
		return fmt.Errorf("message.displayDuration must be > 0, got %v", config.Message.DisplayDuration)
	}

	return nil
}
