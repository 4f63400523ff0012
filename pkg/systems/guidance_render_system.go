package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	cameraSkyColor    = color.RGBA{R: 38, G: 50, B: 56, A: 255}
	cameraFloorColor  = color.RGBA{R: 55, G: 71, B: 79, A: 255}
	cameraGridColor   = color.RGBA{R: 120, G: 144, B: 156, A: 90}
	cueArrowColor     = color.RGBA{R: 0, G: 230, B: 118, A: 255}
	cueGlowColor      = color.RGBA{R: 105, G: 240, B: 174, A: 90}
	bubbleColor       = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	bubbleTextColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	distanceTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hintTextColor     = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	statusTextColor   = color.RGBA{R: 207, G: 216, B: 220, A: 255}
)

// cameraGridSpeed 地面网格的滚动速度（像素/秒）
const cameraGridSpeed = 24.0

// GuidanceRenderSystem 引导画面渲染
// 只读取 GuidanceSnapshot，不修改引擎状态
type GuidanceRenderSystem struct {
	resourceManager *game.ResourceManager
	hintText        string
}

// NewGuidanceRenderSystem 创建引导画面渲染系统
func NewGuidanceRenderSystem(rm *game.ResourceManager) *GuidanceRenderSystem {
	return &GuidanceRenderSystem{
		resourceManager: rm,
		hintText:        "Tap anywhere to start",
	}
}

// Draw 绘制相机背景、方向提示、消息和距离
func (s *GuidanceRenderSystem) Draw(screen *ebiten.Image, snap GuidanceSnapshot) {
	s.DrawCameraBackdrop(screen, snap.Now)

	if snap.CueActive {
		s.drawCue(screen, snap.CueDirection, snap.CueIntensity)
	}
	if snap.MessageVisible {
		s.drawMessage(screen, snap.Message)
	}
	if snap.Started || snap.DistanceActive {
		s.drawDistance(screen, snap.MetersRemaining)
	}
	if !snap.Started && !snap.NotificationVisible && s.resourceManager != nil {
		drawCenteredText(screen, s.hintText, s.resourceManager.Font(config.FontSizeBody),
			config.ScreenWidth/2.0, config.MessageBubbleY, hintTextColor)
	}
}

// DrawCameraBackdrop 模拟相机取景：天空 + 向远处收敛的地面网格
func (s *GuidanceRenderSystem) DrawCameraBackdrop(screen *ebiten.Image, now float64) {
	w, h := float32(config.ScreenWidth), float32(config.ScreenHeight)
	horizon := h * 0.45
	vector.DrawFilledRect(screen, 0, 0, w, horizon, cameraSkyColor, false)
	vector.DrawFilledRect(screen, 0, horizon, w, h-horizon, cameraFloorColor, false)

	vanishX := w / 2
	for i := -6; i <= 6; i++ {
		x := vanishX + float32(i)*w/4
		vector.StrokeLine(screen, vanishX, horizon, x, h, 1, cameraGridColor, true)
	}

	// 横线按透视间距分布，随时间向观察者移动
	offset := math.Mod(now*cameraGridSpeed, 40) / 40
	for i := 0; i < 10; i++ {
		t := (float64(i) + offset) / 10
		y := horizon + float32(t*t)*(h-horizon)
		vector.StrokeLine(screen, 0, y, w, y, 1, cameraGridColor, true)
	}
}

// drawCue 绘制带发光的方向箭头
func (s *GuidanceRenderSystem) drawCue(screen *ebiten.Image, dir components.Direction, intensity float64) {
	if intensity <= 0 {
		return
	}
	cx, cy := config.CueArrowCenter(int(dir))

	// 发光：由外到内叠加的同心圆
	for i := 3; i >= 1; i-- {
		r := config.CueGlowRadius * intensity * float64(i) / 3
		fillCircle(screen, cx, cy, r, withAlpha(cueGlowColor, intensity))
	}

	half := config.CueArrowSize / 2
	arrow := [][2]float64{
		{cx, cy - half},             // 箭头尖端
		{cx + half, cy},             // 右翼
		{cx + half*0.35, cy},        // 右内角
		{cx + half*0.35, cy + half}, // 右下
		{cx - half*0.35, cy + half}, // 左下
		{cx - half*0.35, cy},        // 左内角
		{cx - half, cy},             // 左翼
	}
	arrow = rotatePoints(arrow, cx, cy, dir.RotationDegrees())

	// 箭头不是凸多边形，拆成三角形头部和矩形杆
	fillPolygon(screen, [][2]float64{arrow[0], arrow[1], arrow[6]}, withAlpha(cueArrowColor, intensity))
	fillPolygon(screen, [][2]float64{arrow[2], arrow[3], arrow[4], arrow[5]}, withAlpha(cueArrowColor, intensity))
}

// drawMessage 绘制居中的消息气泡
func (s *GuidanceRenderSystem) drawMessage(screen *ebiten.Image, message string) {
	if s.resourceManager == nil || message == "" {
		return
	}
	face := s.resourceManager.Font(config.FontSizeBody)
	maxWidth := config.ScreenWidth - 2*config.FormMarginX - 2*config.MessageBubblePadding
	lines := utils.WrapText(message, face, maxWidth)

	lineHeight := config.FontSizeBody * 1.4
	bubbleW := config.ScreenWidth - 2*config.FormMarginX
	bubbleH := float64(len(lines))*lineHeight + 2*config.MessageBubblePadding
	x := float64(config.FormMarginX)
	y := config.MessageBubbleY - bubbleH/2

	fillRoundedRect(screen, x, y, bubbleW, bubbleH, 14, bubbleColor)
	drawTextLines(screen, lines, face, config.ScreenWidth/2.0, y+config.MessageBubblePadding, lineHeight, text.AlignCenter, bubbleTextColor)
}

// drawDistance 绘制剩余距离
func (s *GuidanceRenderSystem) drawDistance(screen *ebiten.Image, meters float64) {
	if s.resourceManager == nil {
		return
	}
	drawCenteredText(screen, FormatDistance(meters), s.resourceManager.BoldFont(config.FontSizeDistance),
		config.ScreenWidth/2.0, config.DistanceLabelY, distanceTextColor)
}

// DrawStatusLine 在距离读数下方绘制一行状态文字（如好友位置更新时间）
func (s *GuidanceRenderSystem) DrawStatusLine(screen *ebiten.Image, status string) {
	if s.resourceManager == nil || status == "" {
		return
	}
	drawCenteredText(screen, status, s.resourceManager.Font(config.FontSizeSmall),
		config.ScreenWidth/2.0, config.DistanceLabelY+config.FontSizeDistance, statusTextColor)
}

// FormatDistance 距离读数文本（保留一位小数）
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.1f m", meters)
}
