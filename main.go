package main

import (
	"flag"
	"log"
	"time"

	"github.com/decker502/arpathfinder/pkg/app"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose         = flag.Bool("verbose", false, "显示详细日志")
	mode            = flag.String("mode", app.ModeRoleSelect, `启动模式："role"（身份选择）或 "ar"（直接进入引导画面）`)
	storeURL        = flag.String("store", "", "位置存储服务地址（如 http://localhost:8787），为空时使用进程内存储")
	trackCode       = flag.String("code", "", "引导模式下追踪的共享码")
	guidanceConfig  = flag.String("config", "", "引导配置文件路径（为空时使用内置 data/guidance.yaml）")
	denyCamera      = flag.Bool("deny-camera", false, "模拟拒绝相机权限")
	denyLocation    = flag.Bool("deny-location", false, "模拟拒绝定位权限")
	permissionDelay = flag.Duration("permission-delay", 300*time.Millisecond, "模拟权限弹窗的等待时间")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:            *verbose,
		Mode:               *mode,
		StoreURL:           *storeURL,
		Code:               *trackCode,
		GuidanceConfigPath: *guidanceConfig,
		DenyCamera:         *denyCamera,
		DenyLocation:       *denyLocation,
		PermissionDelay:    *permissionDelay,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("AR Pathfinder")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
