package systems

import (
	"image/color"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	dialogOverlayColor = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	dialogPanelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dialogTitleColor   = color.RGBA{R: 33, G: 33, B: 33, A: 255}
	dialogMessageColor = color.RGBA{R: 66, G: 66, B: 66, A: 255}
)

// dialogCornerRadius 对话框圆角
const dialogCornerRadius = 16.0

// DialogRenderSystem 对话框渲染系统
//
// 职责：
//   - 渲染半透明遮罩（覆盖整个屏幕）
//   - 渲染对话框面板、标题和正文（自动换行）
//   - 渲染对话框按钮（取消按钮使用次要配色）
type DialogRenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
}

// NewDialogRenderSystem 创建对话框渲染系统
func NewDialogRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *DialogRenderSystem {
	return &DialogRenderSystem{
		entityManager:   em,
		resourceManager: rm,
	}
}

// Draw 渲染所有可见对话框
// ID 小的先渲染（在底层），ID 大的后渲染（在上层）
func (s *DialogRenderSystem) Draw(screen *ebiten.Image) {
	overlayDrawn := false
	for _, entityID := range ecs.GetEntitiesWith2[*components.DialogComponent, *components.PositionComponent](s.entityManager) {
		dialog, _ := ecs.GetComponent[*components.DialogComponent](s.entityManager, entityID)
		if !dialog.IsVisible {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 遮罩只绘制一次
		if !overlayDrawn {
			vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy()), dialogOverlayColor, false)
			overlayDrawn = true
		}
		s.drawDialog(screen, dialog, pos)
	}
}

// drawDialog 绘制单个对话框
func (s *DialogRenderSystem) drawDialog(screen *ebiten.Image, dialog *components.DialogComponent, pos *components.PositionComponent) {
	fillRoundedRect(screen, pos.X, pos.Y, dialog.Width, dialog.Height, dialogCornerRadius, dialogPanelColor)

	if s.resourceManager != nil {
		y := pos.Y + config.DialogPadding
		textWidth := dialog.Width - 2*config.DialogPadding
		centerX := pos.X + dialog.Width/2

		if dialog.Title != "" {
			titleFace := s.resourceManager.BoldFont(config.FontSizeTitle)
			drawTextLines(screen, []string{dialog.Title}, titleFace, centerX, y, config.FontSizeTitle*1.5, text.AlignCenter, dialogTitleColor)
			y += config.FontSizeTitle * 1.5
		}

		bodyFace := s.resourceManager.Font(config.FontSizeBody)
		lines := utils.WrapText(dialog.Message, bodyFace, textWidth)
		drawTextLines(screen, lines, bodyFace, centerX, y, config.DialogLineHeight, text.AlignCenter, dialogMessageColor)
	}

	for i := range dialog.Buttons {
		s.drawDialogButton(screen, &dialog.Buttons[i], pos)
	}
}

// drawDialogButton 绘制对话框按钮（坐标相对于对话框左上角）
func (s *DialogRenderSystem) drawDialogButton(screen *ebiten.Image, btn *components.DialogButton, pos *components.PositionComponent) {
	style := components.ButtonStylePrimary
	if btn.IsCancel {
		style = components.ButtonStyleSecondary
	}
	palette := buttonPalettes[style]
	fill := buttonFillColor(palette, btn.State, true)

	x, y := pos.X+btn.X, pos.Y+btn.Y
	fillRoundedRect(screen, x, y, btn.Width, btn.Height, buttonCornerRadius, fill)

	if s.resourceManager != nil {
		face := s.resourceManager.BoldFont(config.FontSizeBody)
		drawCenteredText(screen, btn.Label, face, x+btn.Width/2, y+btn.Height/2, palette.text)
	}
}
