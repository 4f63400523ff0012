// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/embedded"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/location"
	"github.com/decker502/arpathfinder/pkg/scenes"
	"github.com/decker502/arpathfinder/pkg/store"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 启动模式
const (
	// ModeRoleSelect 从身份选择开始（默认）
	ModeRoleSelect = "role"
	// ModeGuidance 直接进入引导画面
	ModeGuidance = "ar"
)

// 模拟位置来源的原点（河内老城区）
const (
	simulatedOriginLat = 21.0285
	simulatedOriginLng = 105.8542
	simulatedStepMeter = 1.5
)

// guidanceConfigPath 嵌入的引导配置
const guidanceConfigPath = "data/guidance.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Mode 启动模式："role"（默认）或 "ar"
	Mode string
	// StoreURL 位置存储服务地址，为空时使用设置中的地址，仍为空则使用进程内存储
	StoreURL string
	// Code 引导模式下追踪的共享码（可为空）
	Code string
	// GuidanceConfigPath 从磁盘加载引导配置（为空时使用嵌入的配置）
	GuidanceConfigPath string
	// DenyCamera / DenyLocation 模拟用户拒绝权限
	DenyCamera   bool
	DenyLocation bool
	// PermissionDelay 模拟权限弹窗的等待时间
	PermissionDelay time.Duration
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// validateConfig 校验启动配置
func validateConfig(cfg *Config) error {
	switch cfg.Mode {
	case "":
		cfg.Mode = ModeRoleSelect
	case ModeRoleSelect, ModeGuidance:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", cfg.Mode, ModeRoleSelect, ModeGuidance)
	}

	if cfg.Code != "" {
		c, err := code.Parse(cfg.Code)
		if err != nil {
			return fmt.Errorf("invalid code: %w", err)
		}
		cfg.Code = c
	}
	if cfg.PermissionDelay < 0 {
		return fmt.Errorf("permission delay must be >= 0, got %v", cfg.PermissionDelay)
	}
	return nil
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入资源；
// 未初始化时使用内置默认引导配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	guidance, err := loadGuidanceConfig(cfg.GuidanceConfigPath)
	if err != nil {
		return nil, fmt.Errorf("引导配置加载失败: %w", err)
	}

	resourceManager, err := game.NewResourceManager()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	settingsManager := openSettings()
	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settingsManager)
	log.Printf("[App] AudioManager initialized")

	storeURL := cfg.StoreURL
	if storeURL == "" {
		storeURL = settingsManager.GetSettings().StoreURL
	} else {
		settingsManager.SetStoreURL(storeURL)
	}

	sceneManager := game.NewSceneManager()
	env := &scenes.Env{
		ResourceManager: resourceManager,
		SceneManager:    sceneManager,
		Settings:        settingsManager,
		Audio:           audioManager,
		Guidance:        guidance,
		Store:           newStore(storeURL),
		Capabilities:    newCapabilities(cfg),
		NewPositionSource: func() location.PositionSource {
			return location.NewSimulatedSource(simulatedOriginLat, simulatedOriginLng, simulatedStepMeter, uint64(time.Now().UnixNano()))
		},
		ShareInterval: location.DefaultShareInterval,
	}

	// 根据配置决定启动场景
	if cfg.Mode == ModeGuidance {
		guidanceScene, err := scenes.NewGuidanceScene(env, cfg.Code)
		if err != nil {
			return nil, err
		}
		log.Printf("[App] Starting in guidance mode (code=%q)", cfg.Code)
		sceneManager.SwitchTo(guidanceScene)
	} else {
		sceneManager.SwitchTo(scenes.NewRoleSelectScene(env))
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// loadGuidanceConfig 优先磁盘文件，其次嵌入资源，最后内置默认值
func loadGuidanceConfig(path string) (*config.GuidanceConfig, error) {
	if path != "" {
		return config.LoadGuidanceConfig(path)
	}
	if !embedded.IsInitialized() {
		log.Printf("[Config] Embedded data not initialized, using built-in guidance config")
		return config.DefaultGuidanceConfig(), nil
	}
	data, err := embedded.ReadFile(guidanceConfigPath)
	if err != nil {
		log.Printf("[Config] Failed to read %s: %v (using built-in guidance config)", guidanceConfigPath, err)
		return config.DefaultGuidanceConfig(), nil
	}
	cfg, err := config.ParseGuidanceConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", guidanceConfigPath, err)
	}
	log.Printf("[Config] Loaded %s (%d steps)", guidanceConfigPath, len(cfg.Steps))
	return cfg, nil
}

// openSettings 打开持久化设置，失败时降级为内存设置
func openSettings() *game.SettingsManager {
	var manager *gdata.Manager
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage directory unavailable: %v", err)
	} else if m, err := gdata.Open(gdata.Config{AppName: "arpathfinder"}); err != nil {
		log.Printf("[App] Warning: Failed to open gdata: %v (settings will not persist)", err)
	} else {
		manager = m
		if dir := utils.StoragePath(); dir != "" {
			log.Printf("[App] Settings directory: %s", dir)
		}
	}

	sm, err := game.NewSettingsManager(manager)
	if err != nil {
		log.Printf("[App] Warning: %v (using in-memory settings)", err)
		sm, _ = game.NewSettingsManager(nil)
	}
	return sm
}

// newStore 有服务地址时使用 HTTP 存储，否则使用进程内存储
func newStore(storeURL string) store.Store {
	if storeURL == "" {
		log.Printf("[App] Using in-process location store")
		return store.NewMemoryStore()
	}
	log.Printf("[App] Using location store at %s", storeURL)
	return store.NewHTTPStore(storeURL, &http.Client{Timeout: store.DefaultWatchTimeout + 10*time.Second})
}

// newCapabilities 模拟权限请求
func newCapabilities(cfg Config) capability.Provider {
	camera, loc := capability.Granted, capability.Granted
	if cfg.DenyCamera {
		camera = capability.Denied
	}
	if cfg.DenyLocation {
		loc = capability.Denied
	}
	return capability.NewStaticProvider(camera, loc, cfg.PermissionDelay)
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	utils.UpdateLastTouchPosition()

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（竖屏手机）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Close 退出当前场景（释放会话、停止共享）并保存设置
func (a *App) Close() {
	a.sceneManager.Shutdown()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
