package entities

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// 虚拟键盘布局常量（相对于 390×844 逻辑分辨率）
const (
	VirtualKeyboardKeyWidth  = 33.0 // 标准按键宽度
	VirtualKeyboardKeyHeight = 46.0 // 按键高度
	VirtualKeyboardSpacing   = 5.0  // 按键间距
	VirtualKeyboardPadding   = 10.0 // 键盘边距
)

// NewVirtualKeyboardEntity 创建虚拟键盘实体
// 仅在移动端创建，桌面端不需要虚拟键盘
//
// 参数：
//   - em: 实体管理器
//   - screenWidth: 屏幕宽度
//   - screenHeight: 屏幕高度
//   - target: 绑定的输入框实体
//
// 返回：
//   - ecs.EntityID: 虚拟键盘实体ID（初始可见）
func NewVirtualKeyboardEntity(em *ecs.EntityManager, screenWidth, screenHeight float64, target ecs.EntityID) ecs.EntityID {
	entity := em.CreateEntity()

	rows := float64(len(components.KeyboardLayoutLetters))
	keyboardHeight := rows*VirtualKeyboardKeyHeight + (rows-1)*VirtualKeyboardSpacing
	keyboardY := screenHeight - keyboardHeight - VirtualKeyboardPadding*3

	ecs.AddComponent(em, entity, &components.VirtualKeyboardComponent{
		IsVisible:         true,
		TargetInputEntity: target,
		KeyWidth:          VirtualKeyboardKeyWidth,
		KeyHeight:         VirtualKeyboardKeyHeight,
		KeySpacing:        VirtualKeyboardSpacing,
		KeyboardY:         keyboardY,
		KeyboardX:         VirtualKeyboardPadding,
		ScreenWidth:       screenWidth,
		ScreenHeight:      screenHeight,
	})

	ecs.AddComponent(em, entity, &components.UIComponent{})

	log.Printf("[VirtualKeyboardFactory] Created virtual keyboard entity (ID=%d, keyboardY=%.1f)", entity, keyboardY)

	return entity
}

// currentLayout 返回当前模式下的按键布局
func currentLayout(kb *components.VirtualKeyboardComponent) [][]string {
	if kb.NumericMode {
		return components.KeyboardLayoutNumeric
	}
	return components.KeyboardLayoutLetters
}

// CalculateKeyboardLayout 计算当前模式下的键盘布局
// 返回所有按键的位置和尺寸信息
//
// 参数：
//   - kb: 虚拟键盘组件
//
// 返回：
//   - [][]KeyInfo: 二维数组，每行的按键信息
func CalculateKeyboardLayout(kb *components.VirtualKeyboardComponent) [][]components.KeyInfo {
	layout := currentLayout(kb)
	result := make([][]components.KeyInfo, len(layout))

	rowY := kb.KeyboardY

	for rowIdx, row := range layout {
		rowKeys := make([]components.KeyInfo, len(row))

		// 计算这一行的总宽度（用于居中）
		totalWidth := 0.0
		for _, keyAction := range row {
			totalWidth += kb.KeyWidth * components.GetKeyWidthFactor(keyAction)
		}
		totalWidth += float64(len(row)-1) * kb.KeySpacing

		keyX := (kb.ScreenWidth - totalWidth) / 2

		for keyIdx, keyAction := range row {
			widthFactor := components.GetKeyWidthFactor(keyAction)
			keyWidth := kb.KeyWidth * widthFactor

			rowKeys[keyIdx] = components.KeyInfo{
				Label:       components.GetKeyLabel(keyAction),
				Action:      keyAction,
				X:           keyX,
				Y:           rowY,
				Width:       keyWidth,
				Height:      kb.KeyHeight,
				WidthFactor: widthFactor,
			}

			keyX += keyWidth + kb.KeySpacing
		}

		result[rowIdx] = rowKeys
		rowY += kb.KeyHeight + kb.KeySpacing
	}

	return result
}

// GetAllKeys 获取当前布局的所有按键（扁平化列表）
func GetAllKeys(kb *components.VirtualKeyboardComponent) []components.KeyInfo {
	var allKeys []components.KeyInfo
	for _, row := range CalculateKeyboardLayout(kb) {
		allKeys = append(allKeys, row...)
	}
	return allKeys
}

// KeyboardBounds 返回键盘背景区域的上下边界
// 背景高度固定按字母布局计算，切换数字模式时背景不跳动
func KeyboardBounds(kb *components.VirtualKeyboardComponent) (top, bottom float64) {
	rows := float64(len(components.KeyboardLayoutLetters))
	top = kb.KeyboardY - VirtualKeyboardPadding
	bottom = kb.KeyboardY + rows*(kb.KeyHeight+kb.KeySpacing) + VirtualKeyboardPadding
	return top, bottom
}
