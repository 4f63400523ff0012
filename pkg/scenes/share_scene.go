package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/location"
	"github.com/hajimehoshi/ebiten/v2"
)

// ShareScene 共享端：显示共享码并持续上报位置
//
// 进入场景时生成共享码并启动 Sharer，离开场景时停止上报。
type ShareScene struct {
	env           *Env
	entityManager *ecs.EntityManager
	ui            *uiLayer

	sharer *location.Sharer
	code   string
	err    error
}

// NewShareScene 创建共享场景（OnEnter 时才开始上报）
func NewShareScene(env *Env) *ShareScene {
	em := ecs.NewEntityManager()
	s := &ShareScene{
		env:           env,
		entityManager: em,
		ui:            newUILayer(em, env.ResourceManager),
	}

	x, w, h := config.FormMarginX, config.FormButtonWidth(), config.FormButtonHeight
	entities.NewButton(em, x, formButtonY(0), w, h, "Back", components.ButtonStyleSecondary, s.back)
	entities.NewButton(em, x, formButtonY(1), w, h, "New code", components.ButtonStyleGlass, s.regenerate)
	return s
}

// OnEnter 生成共享码并开始上报
func (s *ShareScene) OnEnter() {
	var source location.PositionSource
	if s.env.NewPositionSource != nil {
		source = s.env.NewPositionSource()
	}
	if source == nil || s.env.Store == nil {
		s.err = fmt.Errorf("location sharing is not configured")
		log.Printf("[ShareScene] %v", s.err)
		return
	}
	s.sharer = location.NewSharer(s.env.Store, source, s.env.ShareInterval)
	s.regenerate()
}

// OnExit 停止上报
func (s *ShareScene) OnExit() {
	if s.sharer != nil {
		s.sharer.Stop()
	}
}

// regenerate 换一个新的共享码，旧码不再更新
func (s *ShareScene) regenerate() {
	if s.sharer == nil {
		return
	}
	c := code.Generate(s.env.Rand)
	if err := s.sharer.SetCode(c); err != nil {
		s.err = err
		log.Printf("[ShareScene] Failed to share with code %s: %v", c, err)
		return
	}
	s.code = c
	s.err = nil
	log.Printf("[ShareScene] Sharing with code %s", c)
}

func (s *ShareScene) back() {
	s.env.SceneManager.RequestSwitch(NewRoleSelectScene(s.env))
}

// Code 当前共享码
func (s *ShareScene) Code() string {
	return s.code
}

// Sharer 共享端（场景未进入时为 nil）
func (s *ShareScene) Sharer() *location.Sharer {
	return s.sharer
}

// Update 处理按钮输入
func (s *ShareScene) Update(deltaTime float64) {
	s.ui.update(deltaTime)
}

// Draw 绘制共享码与上报状态
func (s *ShareScene) Draw(screen *ebiten.Image) {
	screen.Fill(formBackgroundColor)
	rm := s.env.ResourceManager
	cx := config.ScreenWidth / 2.0

	drawLabel(screen, fontOf(rm, config.FontSizeTitle, true), "Your code", cx, 160, formTitleColor)
	drawWrapped(screen, fontOf(rm, config.FontSizeBody, false),
		"Tell your friend this code. They can follow the arrows to find you.",
		cx, 210, config.FormButtonWidth(), formSubtitleColor)

	if s.code != "" {
		drawLabel(screen, fontOf(rm, config.FontSizeCode, true), s.code, cx, 340, formTitleColor)
	}

	switch {
	case s.err != nil:
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), s.err.Error(), cx, 420, formErrorColor)
	case s.sharer != nil && s.sharer.WatchErr() != nil:
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), "Location updates stopped", cx, 420, formErrorColor)
	case s.sharer != nil:
		status := fmt.Sprintf("%d updates shared", s.sharer.SharedCount())
		if failed := s.sharer.FailureCount(); failed > 0 {
			status += fmt.Sprintf(", %d failed", failed)
		}
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), status, cx, 420, formSubtitleColor)
	}

	s.ui.drawButtons(screen)
	s.ui.drawDialogs(screen)
}
