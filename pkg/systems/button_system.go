package systems

import (
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针释放（触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	pressed, x, y := utils.GetPointerState()
	released, rx, ry := utils.IsPointerJustReleased()
	if released {
		// 触摸释放时没有当前位置，使用最后的触摸位置
		x, y = rx, ry
	}
	s.Process(float64(x), float64(y), pressed, released)
}

// Process 根据指针状态更新所有按钮
// 返回: 本次释放是否触发了某个按钮
func (s *ButtonSystem) Process(x, y float64, pressed, released bool) bool {
	clicked := false
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 禁用状态不响应交互
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !s.isPointerInButton(x, y, pos.X, pos.Y, button.Width, button.Height) {
			button.State = components.UINormal
			continue
		}

		switch {
		case released:
			// 释放时执行
			if button.OnClick != nil && !clicked {
				button.OnClick()
				clicked = true
			}
			button.State = components.UIHovered
		case pressed:
			button.State = components.UIClicked
		default:
			button.State = components.UIHovered
		}
	}

	return clicked
}

// isPointerInButton 检测指针是否在按钮范围内
func (s *ButtonSystem) isPointerInButton(x, y, buttonX, buttonY, buttonWidth, buttonHeight float64) bool {
	return x >= buttonX &&
		x <= buttonX+buttonWidth &&
		y >= buttonY &&
		y <= buttonY+buttonHeight
}
