package systems

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/utils"
)

// 按键高亮持续时间（秒）
const keyPressHighlightDuration = 0.1

// VirtualKeyboardSystem 虚拟键盘系统
// 处理虚拟键盘的触摸输入，把字符写入目标输入框
type VirtualKeyboardSystem struct {
	entityManager *ecs.EntityManager
	textInput     *TextInputSystem
}

// NewVirtualKeyboardSystem 创建虚拟键盘系统
// 字符插入和删除复用 TextInputSystem 的规则（过滤、大写、长度限制）
func NewVirtualKeyboardSystem(em *ecs.EntityManager, textInput *TextInputSystem) *VirtualKeyboardSystem {
	return &VirtualKeyboardSystem{
		entityManager: em,
		textInput:     textInput,
	}
}

// Update 更新虚拟键盘系统
func (s *VirtualKeyboardSystem) Update(deltaTime float64) {
	justPressed, x, y := utils.IsPointerJustPressed()

	for _, kbEntity := range ecs.GetEntitiesWith1[*components.VirtualKeyboardComponent](s.entityManager) {
		kb, ok := ecs.GetComponent[*components.VirtualKeyboardComponent](s.entityManager, kbEntity)
		if !ok {
			continue
		}

		// 每帧开始时重置输入消费状态
		kb.InputConsumedThisFrame = false

		// 更新按键高亮计时器
		if kb.PressedKey != "" {
			kb.PressedTimer -= deltaTime
			if kb.PressedTimer <= 0 {
				kb.PressedKey = ""
				kb.PressedTimer = 0
			}
		}

		if justPressed {
			s.HandlePress(kb, float64(x), float64(y))
		}
	}
}

// HandlePress 处理一次按下
// 键盘不可见时，只有点击目标输入框才会重新打开键盘
func (s *VirtualKeyboardSystem) HandlePress(kb *components.VirtualKeyboardComponent, x, y float64) {
	if !kb.IsVisible {
		s.checkInputBoxClick(kb, x, y)
		return
	}

	// 键盘可见时，阻断所有点击事件传递到下层
	kb.InputConsumedThisFrame = true

	if !s.isPointInKeyboardArea(kb, x, y) {
		// 点在输入框上保持键盘打开，其它位置关闭键盘
		if !s.isPointInTargetInput(kb, x, y) {
			log.Printf("[VirtualKeyboardSystem] Click outside keyboard area, closing keyboard")
			kb.IsVisible = false
		}
		return
	}

	key := s.hitTestKey(kb, x, y)
	if key == nil {
		return
	}
	s.handleKeyPress(kb, key.Action)
	kb.PressedKey = key.Action
	kb.PressedTimer = keyPressHighlightDuration
}

// checkInputBoxClick 检测是否点击了输入框，以重新显示键盘
func (s *VirtualKeyboardSystem) checkInputBoxClick(kb *components.VirtualKeyboardComponent, x, y float64) {
	if !s.isPointInTargetInput(kb, x, y) {
		return
	}
	inputComp, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, kb.TargetInputEntity)
	if !ok {
		return
	}
	kb.IsVisible = true
	kb.InputConsumedThisFrame = true
	inputComp.IsFocused = true
	log.Printf("[VirtualKeyboardSystem] Input box clicked, reopening keyboard")
}

func (s *VirtualKeyboardSystem) isPointInTargetInput(kb *components.VirtualKeyboardComponent, x, y float64) bool {
	if kb.TargetInputEntity == 0 {
		return false
	}
	inputComp, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, kb.TargetInputEntity)
	if !ok {
		return false
	}
	inputPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, kb.TargetInputEntity)
	if !ok {
		return false
	}
	return x >= inputPos.X && x <= inputPos.X+inputComp.Width &&
		y >= inputPos.Y && y <= inputPos.Y+inputComp.Height
}

// hitTestKey 检测点击位置对应的按键
func (s *VirtualKeyboardSystem) hitTestKey(kb *components.VirtualKeyboardComponent, x, y float64) *components.KeyInfo {
	allKeys := entities.GetAllKeys(kb)
	for i := range allKeys {
		key := &allKeys[i]
		if x >= key.X && x <= key.X+key.Width &&
			y >= key.Y && y <= key.Y+key.Height {
			return key
		}
	}
	return nil
}

// isPointInKeyboardArea 检查点是否在键盘区域内（包括背景边距）
func (s *VirtualKeyboardSystem) isPointInKeyboardArea(kb *components.VirtualKeyboardComponent, x, y float64) bool {
	top, bottom := entities.KeyboardBounds(kb)
	return y >= top && y <= bottom && x >= 0 && x <= kb.ScreenWidth
}

// handleKeyPress 处理按键按下事件
func (s *VirtualKeyboardSystem) handleKeyPress(kb *components.VirtualKeyboardComponent, action string) {
	if kb.TargetInputEntity == 0 {
		log.Printf("[VirtualKeyboardSystem] No target input entity")
		return
	}

	targetInput, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, kb.TargetInputEntity)
	if !ok {
		log.Printf("[VirtualKeyboardSystem] Target input entity has no TextInputComponent")
		return
	}

	switch action {
	case "BACKSPACE":
		s.textInput.DeleteCharBefore(targetInput)

	case "DONE":
		kb.IsVisible = false
		targetInput.IsFocused = false
		s.textInput.Submit(targetInput)

	case "123":
		kb.NumericMode = true

	case "ABC":
		kb.NumericMode = false

	default:
		s.textInput.InsertText(targetInput, action)
	}
}

// ShowKeyboard 显示虚拟键盘并绑定到目标输入框
func (s *VirtualKeyboardSystem) ShowKeyboard(targetEntity ecs.EntityID) {
	for _, kbEntity := range ecs.GetEntitiesWith1[*components.VirtualKeyboardComponent](s.entityManager) {
		kb, ok := ecs.GetComponent[*components.VirtualKeyboardComponent](s.entityManager, kbEntity)
		if !ok {
			continue
		}
		kb.IsVisible = true
		kb.TargetInputEntity = targetEntity
		kb.NumericMode = false
		log.Printf("[VirtualKeyboardSystem] Keyboard shown for entity %d", targetEntity)
	}
}

// ConsumeInput 检查本帧输入是否被虚拟键盘消费
// 如果返回 true，其他系统应该跳过处理本帧的点击事件
func (s *VirtualKeyboardSystem) ConsumeInput() bool {
	for _, kbEntity := range ecs.GetEntitiesWith1[*components.VirtualKeyboardComponent](s.entityManager) {
		kb, ok := ecs.GetComponent[*components.VirtualKeyboardComponent](s.entityManager, kbEntity)
		if ok && kb.InputConsumedThisFrame {
			return true
		}
	}
	return false
}
