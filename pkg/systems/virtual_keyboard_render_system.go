package systems

import (
	"image/color"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 虚拟键盘视觉常量
var (
	// 键盘背景颜色
	keyboardBackgroundColor = color.RGBA{R: 209, G: 212, B: 217, A: 255}

	// 按键正常状态颜色
	keyNormalColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// 按键按下状态颜色
	keyPressedColor = color.RGBA{R: 180, G: 184, B: 190, A: 255}

	// 特殊按键颜色（Del, 123/ABC）
	keySpecialColor = color.RGBA{R: 171, G: 177, B: 186, A: 255}

	// 确定按键颜色
	keyDoneColor = color.RGBA{R: 33, G: 150, B: 243, A: 255}

	// 按键文字颜色
	keyTextColor     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	keyDoneTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// 虚拟键盘字体大小
const virtualKeyboardFontSize = 20.0

// VirtualKeyboardRenderSystem 虚拟键盘渲染系统
type VirtualKeyboardRenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager
}

// NewVirtualKeyboardRenderSystem 创建虚拟键盘渲染系统
func NewVirtualKeyboardRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *VirtualKeyboardRenderSystem {
	return &VirtualKeyboardRenderSystem{
		entityManager:   em,
		resourceManager: rm,
	}
}

// Draw 渲染虚拟键盘
func (s *VirtualKeyboardRenderSystem) Draw(screen *ebiten.Image) {
	for _, kbEntity := range ecs.GetEntitiesWith1[*components.VirtualKeyboardComponent](s.entityManager) {
		kb, ok := ecs.GetComponent[*components.VirtualKeyboardComponent](s.entityManager, kbEntity)
		if !ok || !kb.IsVisible {
			continue
		}
		s.drawKeyboard(screen, kb)
	}
}

// drawKeyboard 绘制键盘背景和所有按键
func (s *VirtualKeyboardRenderSystem) drawKeyboard(screen *ebiten.Image, kb *components.VirtualKeyboardComponent) {
	top, bottom := entities.KeyboardBounds(kb)
	vector.DrawFilledRect(screen, 0, float32(top), float32(kb.ScreenWidth), float32(bottom-top), keyboardBackgroundColor, true)

	for _, key := range entities.GetAllKeys(kb) {
		s.drawKey(screen, kb, key)
	}
}

// drawKey 绘制单个按键
func (s *VirtualKeyboardRenderSystem) drawKey(screen *ebiten.Image, kb *components.VirtualKeyboardComponent, key components.KeyInfo) {
	bg := s.getKeyBackgroundColor(kb, key)
	fillRoundedRect(screen, key.X, key.Y, key.Width, key.Height, 6, bg)

	if s.resourceManager == nil || key.Label == "" {
		return
	}
	clr := keyTextColor
	if key.Action == "DONE" {
		clr = keyDoneTextColor
	}
	face := s.resourceManager.Font(virtualKeyboardFontSize)
	drawCenteredText(screen, key.Label, face, key.X+key.Width/2, key.Y+key.Height/2, clr)
}

// getKeyBackgroundColor 获取按键背景颜色
func (s *VirtualKeyboardRenderSystem) getKeyBackgroundColor(kb *components.VirtualKeyboardComponent, key components.KeyInfo) color.RGBA {
	if kb.PressedKey == key.Action {
		return keyPressedColor
	}
	switch key.Action {
	case "DONE":
		return keyDoneColor
	case "123", "ABC", "BACKSPACE":
		return keySpecialColor
	default:
		return keyNormalColor
	}
}
