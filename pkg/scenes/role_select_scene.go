package scenes

import (
	"log"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// RoleSelectScene 身份选择：共享自己的位置，或者追踪朋友
type RoleSelectScene struct {
	env           *Env
	entityManager *ecs.EntityManager
	ui            *uiLayer

	shareButton ecs.EntityID
	trackButton ecs.EntityID
	demoButton  ecs.EntityID

	// errorMessage 进入引导场景失败时的提示
	errorMessage string
}

// NewRoleSelectScene 创建身份选择场景
func NewRoleSelectScene(env *Env) *RoleSelectScene {
	em := ecs.NewEntityManager()
	s := &RoleSelectScene{
		env:           env,
		entityManager: em,
		ui:            newUILayer(em, env.ResourceManager),
	}

	x, w, h := config.FormMarginX, config.FormButtonWidth(), config.FormButtonHeight
	s.demoButton = entities.NewButton(em, x, formButtonY(0), w, h, "Try the guidance demo", components.ButtonStyleGlass, s.startDemo)
	s.trackButton = entities.NewButton(em, x, formButtonY(1), w, h, "Find a friend", components.ButtonStyleSuccess, s.chooseTrack)
	s.shareButton = entities.NewButton(em, x, formButtonY(2), w, h, "Share my location", components.ButtonStylePrimary, s.chooseShare)

	log.Printf("[RoleSelectScene] Created (last role=%q)", s.lastRole())
	return s
}

func (s *RoleSelectScene) lastRole() game.Role {
	if s.env.Settings == nil {
		return game.RoleNone
	}
	return s.env.Settings.GetSettings().LastRole
}

func (s *RoleSelectScene) chooseShare() {
	s.env.rememberRole(game.RoleSharer)
	s.env.SceneManager.RequestSwitch(NewShareScene(s.env))
}

func (s *RoleSelectScene) chooseTrack() {
	s.env.rememberRole(game.RoleTracker)
	s.env.SceneManager.RequestSwitch(NewTrackEntryScene(s.env))
}

// startDemo 不订阅任何共享码，直接进入引导画面
func (s *RoleSelectScene) startDemo() {
	scene, err := NewGuidanceScene(s.env, "")
	if err != nil {
		log.Printf("[RoleSelectScene] Failed to create guidance scene: %v", err)
		s.errorMessage = "Guidance is unavailable right now."
		return
	}
	s.env.SceneManager.RequestSwitch(scene)
}

// Update 处理按钮输入
func (s *RoleSelectScene) Update(deltaTime float64) {
	s.ui.update(deltaTime)
}

// Draw 绘制标题与按钮
func (s *RoleSelectScene) Draw(screen *ebiten.Image) {
	screen.Fill(formBackgroundColor)
	rm := s.env.ResourceManager

	cx := config.ScreenWidth / 2.0
	drawLabel(screen, fontOf(rm, config.FontSizeTitle, true), "AR Pathfinder", cx, 180, formTitleColor)
	drawWrapped(screen, fontOf(rm, config.FontSizeBody, false),
		"Share where you are, or follow the arrows to a friend who shared a code with you.",
		cx, 240, config.FormButtonWidth(), formSubtitleColor)

	switch s.lastRole() {
	case game.RoleSharer:
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), "Last time you shared your location", cx, 340, formSubtitleColor)
	case game.RoleTracker:
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), "Last time you tracked a friend", cx, 340, formSubtitleColor)
	}
	if s.errorMessage != "" {
		drawLabel(screen, fontOf(rm, config.FontSizeSmall, false), s.errorMessage, cx, 370, formErrorColor)
	}

	s.ui.drawButtons(screen)
	s.ui.drawDialogs(screen)
}
