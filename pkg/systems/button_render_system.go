package systems

import (
	"image/color"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// buttonPalette 按钮配色（常态 / 悬停 / 按下）
type buttonPalette struct {
	normal, hovered, pressed, text color.RGBA
}

var buttonPalettes = map[components.ButtonStyle]buttonPalette{
	components.ButtonStylePrimary: {
		normal:  color.RGBA{R: 33, G: 150, B: 243, A: 255},
		hovered: color.RGBA{R: 66, G: 165, B: 245, A: 255},
		pressed: color.RGBA{R: 25, G: 118, B: 210, A: 255},
		text:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	},
	components.ButtonStyleSuccess: {
		normal:  color.RGBA{R: 76, G: 175, B: 80, A: 255},
		hovered: color.RGBA{R: 102, G: 187, B: 106, A: 255},
		pressed: color.RGBA{R: 56, G: 142, B: 60, A: 255},
		text:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	},
	components.ButtonStyleSecondary: {
		normal:  color.RGBA{R: 224, G: 224, B: 224, A: 255},
		hovered: color.RGBA{R: 238, G: 238, B: 238, A: 255},
		pressed: color.RGBA{R: 189, G: 189, B: 189, A: 255},
		text:    color.RGBA{R: 33, G: 33, B: 33, A: 255},
	},
	components.ButtonStyleGlass: {
		normal:  color.RGBA{R: 0, G: 0, B: 0, A: 110},
		hovered: color.RGBA{R: 0, G: 0, B: 0, A: 150},
		pressed: color.RGBA{R: 0, G: 0, B: 0, A: 190},
		text:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	},
}

var buttonDisabledColor = color.RGBA{R: 158, G: 158, B: 158, A: 255}

// buttonCornerRadius 按钮圆角
const buttonCornerRadius = 10.0

// ButtonRenderSystem 按钮渲染系统
// 负责渲染所有按钮实体（矢量圆角矩形 + 居中文字）
type ButtonRenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager:   em,
		resourceManager: rm,
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	for _, entityID := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager) {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	palette := buttonPalettes[button.Style]
	fill := buttonFillColor(palette, button.State, button.Enabled)
	fillRoundedRect(screen, pos.X, pos.Y, button.Width, button.Height, buttonCornerRadius, fill)

	if s.resourceManager != nil {
		face := s.resourceManager.BoldFont(config.FontSizeBody)
		drawCenteredText(screen, button.Text, face, pos.X+button.Width/2, pos.Y+button.Height/2, palette.text)
	}
}

// buttonFillColor 根据状态选择填充色
func buttonFillColor(p buttonPalette, state components.UIState, enabled bool) color.RGBA {
	if !enabled || state == components.UIDisabled {
		return buttonDisabledColor
	}
	switch state {
	case components.UIHovered:
		return p.hovered
	case components.UIClicked:
		return p.pressed
	default:
		return p.normal
	}
}
