package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Role 最近一次选择的身份
type Role string

const (
	RoleNone    Role = ""
	RoleSharer  Role = "share"
	RoleTracker Role = "track"
)

// AppSettings 全局应用设置
type AppSettings struct {
	// 位置存储服务地址，为空时使用进程内存储
	StoreURL string `yaml:"storeUrl"`

	// 指引提示音
	CueSoundEnabled bool    `yaml:"cueSoundEnabled"`
	Volume          float64 `yaml:"volume"` // 0.0 ~ 1.0

	LastRole Role `yaml:"lastRole"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *AppSettings {
	return &AppSettings{
		StoreURL:        "",
		CueSoundEnabled: true,
		Volume:          0.6,
		LastRole:        RoleNone,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *AppSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方统一处理，加载失败只记录日志
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 缺省字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *AppSettings {
	return sm.settings
}

// SetStoreURL 设置位置存储服务地址
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetStoreURL(url string) {
	sm.settings.StoreURL = url
}

// SetCueSoundEnabled 设置提示音开关
func (sm *SettingsManager) SetCueSoundEnabled(enabled bool) {
	sm.settings.CueSoundEnabled = enabled
}

// SetVolume 设置提示音音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetVolume(volume float64) {
	sm.settings.Volume = clampVolume(volume)
}

// SetLastRole 记录最近一次选择的身份
func (sm *SettingsManager) SetLastRole(role Role) {
	sm.settings.LastRole = role
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
