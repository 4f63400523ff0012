package systems

import (
	"log"
	"sort"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DialogInputSystem 对话框输入系统
// 负责处理对话框的用户交互
//
// 职责：
//   - 更新按钮悬停/按下状态
//   - 检测指针释放，触发按钮回调
//   - 检测 ESC 键，触发取消按钮
//   - 可见对话框吞掉所有点击（模态）
type DialogInputSystem struct {
	entityManager *ecs.EntityManager

	// consumedThisFrame 本帧输入是否被对话框消费
	consumedThisFrame bool
}

// NewDialogInputSystem 创建对话框输入系统
func NewDialogInputSystem(em *ecs.EntityManager) *DialogInputSystem {
	return &DialogInputSystem{
		entityManager: em,
	}
}

// Update 更新对话框输入处理
func (s *DialogInputSystem) Update(deltaTime float64) {
	s.consumedThisFrame = false

	pressed, x, y := utils.GetPointerState()
	s.UpdateHover(float64(x), float64(y), pressed)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if s.HandleEscape() {
			s.consumedThisFrame = true
			return
		}
	}

	if released, rx, ry := utils.IsPointerJustReleased(); released {
		if s.HandleRelease(float64(rx), float64(ry)) {
			s.consumedThisFrame = true
		}
	}

	// 按下也算被消费，避免下层在同一次点击的按下帧做出反应
	if justPressed, _, _ := utils.IsPointerJustPressed(); justPressed && s.HasVisibleDialog() {
		s.consumedThisFrame = true
	}
}

// ConsumedInput 本帧输入是否被对话框消费
func (s *DialogInputSystem) ConsumedInput() bool {
	return s.consumedThisFrame
}

// topDialog 返回最上层（ID 最大）的可见对话框
func (s *DialogInputSystem) topDialog() (ecs.EntityID, *components.DialogComponent, *components.PositionComponent, bool) {
	dialogEntities := ecs.GetEntitiesWith2[*components.DialogComponent, *components.PositionComponent](s.entityManager)
	sort.Slice(dialogEntities, func(i, j int) bool {
		return dialogEntities[i] > dialogEntities[j]
	})

	for _, entityID := range dialogEntities {
		dialogComp, ok := ecs.GetComponent[*components.DialogComponent](s.entityManager, entityID)
		if !ok || !dialogComp.IsVisible {
			continue
		}
		posComp, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		if !ok {
			continue
		}
		return entityID, dialogComp, posComp, true
	}
	return 0, nil, nil, false
}

// HasVisibleDialog 是否有可见的对话框
func (s *DialogInputSystem) HasVisibleDialog() bool {
	_, _, _, ok := s.topDialog()
	return ok
}

// HandleRelease 处理一次指针释放
// 返回: 是否被对话框消费（有可见对话框时总是消费）
func (s *DialogInputSystem) HandleRelease(x, y float64) bool {
	entityID, dialogComp, posComp, ok := s.topDialog()
	if !ok {
		return false
	}

	clickedButton := s.getClickedButton(x, y, dialogComp, posComp.X, posComp.Y)
	if clickedButton != nil {
		log.Printf("[DialogInputSystem] 点击了对话框 %d 的按钮 '%s'", entityID, clickedButton.Label)
		if clickedButton.OnClick != nil {
			clickedButton.OnClick()
		}
		return true
	}

	log.Printf("[DialogInputSystem] 点击未命中按钮，对话框 %d 吞掉本次点击", entityID)
	return true
}

// HandleEscape ESC 键触发最上层对话框的取消按钮
// 返回: 是否有对话框响应
func (s *DialogInputSystem) HandleEscape() bool {
	_, dialogComp, _, ok := s.topDialog()
	if !ok {
		return false
	}

	for i := range dialogComp.Buttons {
		btn := &dialogComp.Buttons[i]
		if btn.IsCancel {
			log.Printf("[DialogInputSystem] ESC → '%s'", btn.Label)
			if btn.OnClick != nil {
				btn.OnClick()
			}
			return true
		}
	}
	return true
}

// UpdateHover 更新最上层对话框按钮的悬停/按下状态
func (s *DialogInputSystem) UpdateHover(x, y float64, pressed bool) {
	_, dialogComp, posComp, ok := s.topDialog()
	if !ok {
		return
	}

	hovered := s.getClickedButton(x, y, dialogComp, posComp.X, posComp.Y)
	for i := range dialogComp.Buttons {
		btn := &dialogComp.Buttons[i]
		switch {
		case btn != hovered:
			btn.State = components.UINormal
		case pressed:
			btn.State = components.UIClicked
		default:
			btn.State = components.UIHovered
		}
	}
}

// getClickedButton 获取指针所在的按钮（如果有）
func (s *DialogInputSystem) getClickedButton(x, y float64, dialog *components.DialogComponent, dialogX, dialogY float64) *components.DialogButton {
	for i := range dialog.Buttons {
		btn := &dialog.Buttons[i]
		btnX := dialogX + btn.X
		btnY := dialogY + btn.Y

		if x >= btnX &&
			x <= btnX+btn.Width &&
			y >= btnY &&
			y <= btnY+btn.Height {
			return btn
		}
	}

	return nil
}
