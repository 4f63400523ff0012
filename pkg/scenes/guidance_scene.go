package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
	"github.com/decker502/arpathfinder/pkg/session"
	"github.com/decker502/arpathfinder/pkg/store"
	"github.com/decker502/arpathfinder/pkg/systems"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var deniedBackgroundColor = color.RGBA{R: 33, G: 33, B: 33, A: 255}

// GuidanceScene 相机叠加引导画面
//
// 场景的挂载期就是会话的挂载期：OnEnter 挂载会话（请求权限、订阅好友位置），
// OnExit 卸载会话（取消全部计时器、释放订阅）。
type GuidanceScene struct {
	env           *Env
	entityManager *ecs.EntityManager
	ui            *uiLayer
	render        *systems.GuidanceRenderSystem

	session      *session.Session
	promptEntity ecs.EntityID
	exitButton   ecs.EntityID
	deniedButton ecs.EntityID

	// now 好友位置"多久之前"的时间来源
	now func() time.Time
}

// NewGuidanceScene 创建引导场景
// trackCode 为空时不订阅好友位置（纯演示）
func NewGuidanceScene(env *Env, trackCode string) (*GuidanceScene, error) {
	em := ecs.NewEntityManager()

	var st store.Store
	if trackCode != "" {
		st = env.Store
	}
	sess, err := session.New(em, env.Guidance, session.Options{
		Provider: env.Capabilities,
		Store:    st,
		Code:     trackCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create guidance session: %w", err)
	}

	s := &GuidanceScene{
		env:           env,
		entityManager: em,
		ui:            newUILayer(em, env.ResourceManager),
		render:        systems.NewGuidanceRenderSystem(env.ResourceManager),
		session:       sess,
		now:           time.Now,
	}

	s.promptEntity = entities.NewOnboardingPromptEntity(em, env.Guidance.Onboarding, sess.Confirm, sess.Decline)
	sess.Engine.Sequence.SetPromptEntity(s.promptEntity)
	sess.Engine.Sequence.SetOnStepDispatched(s.onStepDispatched)

	s.exitButton = entities.NewButton(em, 16, 16, config.ExitButtonSize, config.ExitButtonSize, "X", components.ButtonStyleGlass, s.Exit)

	return s, nil
}

// OnEnter 挂载会话
func (s *GuidanceScene) OnEnter() {
	s.session.Mount(context.Background())
}

// OnExit 卸载会话
func (s *GuidanceScene) OnExit() {
	s.session.Unmount()
}

// Session 当前会话
func (s *GuidanceScene) Session() *session.Session {
	return s.session
}

// Exit 返回身份选择
func (s *GuidanceScene) Exit() {
	log.Printf("[GuidanceScene] Exit requested")
	s.env.SceneManager.RequestSwitch(NewRoleSelectScene(s.env))
}

// onStepDispatched 方向步骤播放提示音
func (s *GuidanceScene) onStepDispatched(index int, step components.Step) {
	if step.Kind != components.StepDirection || s.env.Audio == nil {
		return
	}
	s.env.Audio.PlayCue(step.Direction)
}

// HandleTap 画面上的一次点击（不在按钮或对话框上）
func (s *GuidanceScene) HandleTap() bool {
	return s.session.Tap()
}

// advance 处理后台事件并推进会话时钟
func (s *GuidanceScene) advance(deltaTime float64) {
	s.session.Update(deltaTime)

	if s.session.State() == session.StateDenied && s.deniedButton == 0 {
		x, w, h := config.FormMarginX, config.FormButtonWidth(), config.FormButtonHeight
		s.deniedButton = entities.NewButton(s.entityManager, x, formButtonY(0), w, h, "Go back", components.ButtonStylePrimary, s.Exit)
	}
}

// Update 推进会话，然后按 对话框 > 按钮 > 画面点击 的优先级处理输入
func (s *GuidanceScene) Update(deltaTime float64) {
	s.advance(deltaTime)

	if s.ui.update(deltaTime) {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Exit()
		return
	}

	released, _, _ := utils.IsPointerJustReleased()
	if released || utils.IsTapKeyJustPressed() {
		s.HandleTap()
	}
}

// Draw 按会话状态绘制加载、拒绝或引导画面
func (s *GuidanceScene) Draw(screen *ebiten.Image) {
	rm := s.env.ResourceManager
	cx := config.ScreenWidth / 2.0

	switch s.session.State() {
	case session.StateLoading:
		s.render.DrawCameraBackdrop(screen, 0)
		drawLabel(screen, fontOf(rm, config.FontSizeBody, false), "Requesting camera and location access...", cx, config.ScreenHeight/2.0, formTitleColor)

	case session.StateDenied:
		screen.Fill(deniedBackgroundColor)
		drawLabel(screen, fontOf(rm, config.FontSizeTitle, true), "Access needed", cx, 260, formTitleColor)
		drawWrapped(screen, fontOf(rm, config.FontSizeBody, false),
			"Guidance needs both the camera and your location. Allow them in your settings and try again.",
			cx, 320, config.FormButtonWidth(), formSubtitleColor)

	case session.StateReady:
		s.render.Draw(screen, s.session.Engine.Snapshot())
		s.render.DrawStatusLine(screen, s.friendStatus())
	}

	s.ui.drawButtons(screen)
	s.ui.drawDialogs(screen)
}

// friendStatus 好友位置状态行
func (s *GuidanceScene) friendStatus() string {
	if s.session.Code() == "" {
		return ""
	}
	rec, ok := s.session.FriendLocation()
	if !ok {
		return fmt.Sprintf("Waiting for %s to share...", s.session.Code())
	}
	age := s.now().Sub(time.UnixMilli(rec.Timestamp)).Round(time.Second)
	if age < 0 {
		age = 0
	}
	return fmt.Sprintf("%s at %.5f, %.5f (%s ago)", s.session.Code(), rec.Latitude, rec.Longitude, age)
}
