package scenes

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/location"
	"github.com/decker502/arpathfinder/pkg/store"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Env 所有场景共享的依赖，由 app.NewApp 组装
type Env struct {
	ResourceManager *game.ResourceManager
	SceneManager    *game.SceneManager
	Settings        *game.SettingsManager
	Audio           *game.AudioManager

	// Guidance 引导脚本与时间参数
	Guidance *config.GuidanceConfig
	// Store 位置存储（内存或 HTTP）
	Store store.Store
	// Capabilities 相机 / 定位权限
	Capabilities capability.Provider

	// NewPositionSource 每次进入共享场景时创建位置来源
	NewPositionSource func() location.PositionSource
	// ShareInterval 共享端上报间隔，<= 0 时使用默认值
	ShareInterval time.Duration
	// Rand 生成共享码的随机源，nil 时使用全局随机源
	Rand *rand.Rand
}

// rememberRole 记录最近一次选择的身份
func (env *Env) rememberRole(role game.Role) {
	if env.Settings == nil {
		return
	}
	env.Settings.SetLastRole(role)
	if err := env.Settings.Save(); err != nil {
		// 设置保存失败不影响流程
		log.Printf("[Scenes] Failed to save last role: %v", err)
	}
}
