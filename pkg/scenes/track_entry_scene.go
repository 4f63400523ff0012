package scenes

import (
	"errors"
	"log"

	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/systems"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// trackInputY 追踪码输入框的 Y 坐标
const trackInputY = 300.0

// TrackEntryScene 追踪端：输入朋友的共享码
//
// 共享码不合法时弹出提示并停留在本场景；合法时进入引导场景。
// 移动端显示虚拟键盘，桌面端直接使用物理键盘。
type TrackEntryScene struct {
	env           *Env
	entityManager *ecs.EntityManager
	ui            *uiLayer

	textInput      *systems.TextInputSystem
	textInputDraw  *systems.TextInputRenderSystem
	keyboard       *systems.VirtualKeyboardSystem
	keyboardDraw   *systems.VirtualKeyboardRenderSystem
	inputEntity    ecs.EntityID
	keyboardEntity ecs.EntityID

	errorDialog ecs.EntityID
}

// NewTrackEntryScene 创建共享码输入场景
func NewTrackEntryScene(env *Env) *TrackEntryScene {
	return newTrackEntryScene(env, utils.IsMobile())
}

func newTrackEntryScene(env *Env, withKeyboard bool) *TrackEntryScene {
	em := ecs.NewEntityManager()
	s := &TrackEntryScene{
		env:           env,
		entityManager: em,
		ui:            newUILayer(em, env.ResourceManager),
		textInput:     systems.NewTextInputSystem(em),
		textInputDraw: systems.NewTextInputRenderSystem(em, env.ResourceManager),
	}

	x, w, h := config.FormMarginX, config.FormButtonWidth(), config.FormButtonHeight
	s.inputEntity = entities.NewCodeInputEntity(em, x, trackInputY, w, config.FormInputHeight, code.Length, func(text string) {
		s.Submit(text)
	})

	// 虚拟键盘占据屏幕下半部分，按钮放在输入框下方
	buttonY := trackInputY + config.FormInputHeight + config.FormButtonSpacing*2
	entities.NewButton(em, x, buttonY, w, h, "Start tracking", components.ButtonStyleSuccess, func() {
		s.Submit(s.Text())
	})
	entities.NewButton(em, x, buttonY+h+config.FormButtonSpacing, w, h, "Back", components.ButtonStyleSecondary, s.back)

	if withKeyboard {
		s.keyboard = systems.NewVirtualKeyboardSystem(em, s.textInput)
		s.keyboardDraw = systems.NewVirtualKeyboardRenderSystem(em, env.ResourceManager)
		s.keyboardEntity = entities.NewVirtualKeyboardEntity(em, config.ScreenWidth, config.ScreenHeight, s.inputEntity)
	}

	log.Printf("[TrackEntryScene] Created (virtual keyboard=%v)", withKeyboard)
	return s
}

// Text 输入框当前内容
func (s *TrackEntryScene) Text() string {
	input, ok := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.inputEntity)
	if !ok {
		return ""
	}
	return input.Text
}

// Submit 校验共享码，合法时进入引导场景
// 返回: 是否发起了场景切换
func (s *TrackEntryScene) Submit(input string) bool {
	c, err := code.Parse(input)
	if err != nil {
		log.Printf("[TrackEntryScene] Rejected code %q: %v", input, err)
		s.showError(err)
		return false
	}

	scene, err := NewGuidanceScene(s.env, c)
	if err != nil {
		log.Printf("[TrackEntryScene] Failed to create guidance scene: %v", err)
		s.showError(err)
		return false
	}
	s.env.rememberRole(game.RoleTracker)
	s.env.SceneManager.RequestSwitch(scene)
	return true
}

// showError 弹出错误提示（同一时刻只有一个）
func (s *TrackEntryScene) showError(err error) {
	s.dismissError()
	s.errorDialog = entities.NewDialogEntity(s.entityManager, "Check the code", codeErrorMessage(err),
		[]entities.DialogChoice{{Label: "OK", OnClick: s.dismissError, IsCancel: true}}, true)
}

func (s *TrackEntryScene) dismissError() {
	if s.errorDialog == 0 {
		return
	}
	if dialog, ok := ecs.GetComponent[*components.DialogComponent](s.entityManager, s.errorDialog); ok {
		dialog.IsVisible = false
	}
	s.entityManager.DestroyEntity(s.errorDialog)
	s.errorDialog = 0
}

// ErrorVisible 是否正在显示错误提示
func (s *TrackEntryScene) ErrorVisible() bool {
	return s.ui.dialogs.HasVisibleDialog()
}

// codeErrorMessage 面向用户的共享码错误说明
func codeErrorMessage(err error) string {
	switch {
	case errors.Is(err, code.ErrInvalidLength):
		return "A code has exactly 6 characters."
	case errors.Is(err, code.ErrInvalidCharacter):
		return "A code only uses the letters A-Z and the digits 0-9."
	default:
		return "Tracking could not start. Please try again."
	}
}

func (s *TrackEntryScene) back() {
	s.env.SceneManager.RequestSwitch(NewRoleSelectScene(s.env))
}

// Update 输入优先级：错误提示 > 虚拟键盘 > 输入框与按钮
func (s *TrackEntryScene) Update(deltaTime float64) {
	defer s.entityManager.RemoveMarkedEntities()

	if s.ui.dialogs.HasVisibleDialog() {
		s.ui.update(deltaTime)
		return
	}

	if s.keyboard != nil {
		s.keyboard.Update(deltaTime)
		if s.keyboard.ConsumeInput() {
			return
		}
	}

	s.textInput.Update(deltaTime)
	s.ui.update(deltaTime)
}

// Draw 绘制说明、输入框、按钮和虚拟键盘
func (s *TrackEntryScene) Draw(screen *ebiten.Image) {
	screen.Fill(formBackgroundColor)
	rm := s.env.ResourceManager
	cx := config.ScreenWidth / 2.0

	drawLabel(screen, fontOf(rm, config.FontSizeTitle, true), "Find a friend", cx, 160, formTitleColor)
	drawWrapped(screen, fontOf(rm, config.FontSizeBody, false),
		"Enter the 6-character code your friend is sharing.",
		cx, 210, config.FormButtonWidth(), formSubtitleColor)

	s.textInputDraw.Draw(screen)
	s.ui.drawButtons(screen)
	if s.keyboardDraw != nil {
		s.keyboardDraw.Draw(screen)
	}
	s.ui.drawDialogs(screen)
}
