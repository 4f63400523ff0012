package systems

import (
	"log"
	"unicode"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cursorBlinkInterval 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// TextInputSystem 文本输入系统
// 处理追踪码输入框的键盘输入、光标闪烁等逻辑
type TextInputSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextInputSystem 创建文本输入系统
func NewTextInputSystem(em *ecs.EntityManager) *TextInputSystem {
	return &TextInputSystem{
		entityManager: em,
	}
}

// Update 更新文本输入系统
func (s *TextInputSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)

	for _, entityID := range entities {
		input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		if !ok {
			continue
		}

		// 只处理获得焦点的输入框
		if !input.IsFocused {
			input.CursorVisible = false
			continue
		}

		s.UpdateCursorBlink(input, deltaTime)

		// 移动端：跳过物理键盘输入，由 VirtualKeyboardSystem 处理
		if utils.IsMobile() {
			continue
		}

		s.handleKeyboardInput(input)
	}
}

// UpdateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) UpdateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= cursorBlinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// handleKeyboardInput 处理桌面端键盘输入
func (s *TextInputSystem) handleKeyboardInput(input *components.TextInputComponent) {
	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		s.InsertText(input, string(runes))
	}

	// 第1帧立即响应，之后每隔3帧响应一次（按住连续删除）
	backspaceDuration := inpututil.KeyPressDuration(ebiten.KeyBackspace)
	if backspaceDuration == 1 || (backspaceDuration >= 30 && backspaceDuration%3 == 0) {
		s.DeleteCharBefore(input)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && input.CursorPosition > 0 {
		input.CursorPosition--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && input.CursorPosition < len([]rune(input.Text)) {
		input.CursorPosition++
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.Submit(input)
	}
}

// InsertText 在光标位置插入文本
// 只接受字母和数字；UpperCase 时转为大写；超过 MaxLength 的部分被截断
func (s *TextInputSystem) InsertText(input *components.TextInputComponent, text string) {
	filtered := make([]rune, 0, len(text))
	for _, r := range text {
		if input.UpperCase {
			r = unicode.ToUpper(r)
		}
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return
	}

	runes := []rune(input.Text)
	if input.MaxLength > 0 {
		room := input.MaxLength - len(runes)
		if room <= 0 {
			log.Printf("[TextInputSystem] 达到最大长度限制 (%d 字符)", input.MaxLength)
			return
		}
		if len(filtered) > room {
			filtered = filtered[:room]
		}
	}

	if input.CursorPosition > len(runes) {
		input.CursorPosition = len(runes)
	}

	result := make([]rune, 0, len(runes)+len(filtered))
	result = append(result, runes[:input.CursorPosition]...)
	result = append(result, filtered...)
	result = append(result, runes[input.CursorPosition:]...)

	input.Text = string(result)
	input.CursorPosition += len(filtered)
	input.CursorBlinkTimer = 0
	input.CursorVisible = true
}

// DeleteCharBefore 删除光标前的字符（退格）
func (s *TextInputSystem) DeleteCharBefore(input *components.TextInputComponent) {
	if input.CursorPosition == 0 {
		return
	}

	runes := []rune(input.Text)
	if input.CursorPosition > len(runes) {
		input.CursorPosition = len(runes)
	}
	before := runes[:input.CursorPosition-1]
	after := runes[input.CursorPosition:]

	input.Text = string(append(append([]rune{}, before...), after...))
	input.CursorPosition--
	input.CursorBlinkTimer = 0
	input.CursorVisible = true
}

// Submit 提交输入内容
func (s *TextInputSystem) Submit(input *components.TextInputComponent) {
	log.Printf("[TextInputSystem] Submit %q", input.Text)
	if input.OnSubmit != nil {
		input.OnSubmit(input.Text)
	}
}
