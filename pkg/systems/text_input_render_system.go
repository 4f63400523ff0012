package systems

import (
	"image/color"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	inputBackgroundColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	inputBorderColor      = color.RGBA{R: 189, G: 189, B: 189, A: 255}
	inputFocusBorderColor = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	inputTextColor        = color.RGBA{R: 33, G: 33, B: 33, A: 255}
	inputPlaceholderColor = color.RGBA{R: 158, G: 158, B: 158, A: 255}
)

// inputPaddingX 输入框文字左边距
const inputPaddingX = 16.0

// TextInputRenderSystem 文本输入框渲染系统
// 负责绘制输入框边框、背景、文本和光标
type TextInputRenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
}

// NewTextInputRenderSystem 创建文本输入框渲染系统
func NewTextInputRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *TextInputRenderSystem {
	return &TextInputRenderSystem{entityManager: em, resourceManager: rm}
}

// Draw 绘制所有文本输入框
func (s *TextInputRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager) {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.DrawInputBox(screen, input, pos)
	}
}

// DrawInputBox 绘制单个输入框
func (s *TextInputRenderSystem) DrawInputBox(screen *ebiten.Image, input *components.TextInputComponent, pos *components.PositionComponent) {
	border := inputBorderColor
	if input.IsFocused {
		border = inputFocusBorderColor
	}
	fillRoundedRect(screen, pos.X-2, pos.Y-2, input.Width+4, input.Height+4, 12, border)
	fillRoundedRect(screen, pos.X, pos.Y, input.Width, input.Height, 10, inputBackgroundColor)

	if s.resourceManager == nil {
		return
	}
	face := s.resourceManager.BoldFont(config.FontSizeTitle)
	textX := pos.X + inputPaddingX
	textY := pos.Y + input.Height/2

	if input.Text == "" && input.Placeholder != "" {
		s.drawText(screen, face, input.Placeholder, textX, textY, inputPlaceholderColor)
	} else {
		s.drawText(screen, face, input.Text, textX, textY, inputTextColor)
	}

	if input.IsFocused && input.CursorVisible {
		runes := []rune(input.Text)
		cursor := input.CursorPosition
		if cursor > len(runes) {
			cursor = len(runes)
		}
		w := 0.0
		if cursor > 0 {
			w, _ = text.Measure(string(runes[:cursor]), face, 0)
		}
		cursorX := textX + w + 1
		fillPolygon(screen, [][2]float64{
			{cursorX, textY - input.Height/4},
			{cursorX + 2, textY - input.Height/4},
			{cursorX + 2, textY + input.Height/4},
			{cursorX, textY + input.Height/4},
		}, inputFocusBorderColor)
	}
}

func (s *TextInputRenderSystem) drawText(screen *ebiten.Image, face *text.GoTextFace, str string, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignStart
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}
