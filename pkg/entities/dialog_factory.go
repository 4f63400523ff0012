package entities

import (
	"math"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// DialogChoice 对话框按钮定义
type DialogChoice struct {
	Label    string
	OnClick  func()
	IsCancel bool // ESC 键触发
}

// NewDialogEntity 创建模态对话框实体（屏幕居中）
//
// 参数：
//   - em: 实体管理器
//   - title: 对话框标题（可为空）
//   - message: 对话框正文
//   - choices: 按钮列表，从上到下纵向排列
//   - visible: 初始是否可见
//
// 返回：
//   - 对话框实体ID
func NewDialogEntity(
	em *ecs.EntityManager,
	title string,
	message string,
	choices []DialogChoice,
	visible bool,
) ecs.EntityID {
	dialogWidth, bodyHeight := calculateDialogSize(title, message)

	// 按钮纵向排列在正文下方
	buttonsHeight := float64(len(choices))*config.DialogButtonHeight +
		float64(max(len(choices)-1, 0))*config.DialogButtonSpacing
	dialogHeight := config.DialogPadding + bodyHeight + config.DialogPadding + buttonsHeight + config.DialogPadding

	x := float64(config.ScreenWidth)/2 - dialogWidth/2
	y := float64(config.ScreenHeight)/2 - dialogHeight/2

	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: x,
		Y: y,
	})

	dialogButtons := make([]components.DialogButton, 0, len(choices))
	btnY := config.DialogPadding + bodyHeight + config.DialogPadding
	for _, choice := range choices {
		dialogButtons = append(dialogButtons, components.DialogButton{
			Label:    choice.Label,
			OnClick:  choice.OnClick,
			X:        config.DialogPadding,
			Y:        btnY,
			Width:    dialogWidth - 2*config.DialogPadding,
			Height:   config.DialogButtonHeight,
			IsCancel: choice.IsCancel,
			State:    components.UINormal,
		})
		btnY += config.DialogButtonHeight + config.DialogButtonSpacing
	}

	ecs.AddComponent(em, entity, &components.DialogComponent{
		Title:     title,
		Message:   message,
		Buttons:   dialogButtons,
		IsVisible: visible,
		Width:     dialogWidth,
		Height:    dialogHeight,
	})

	ecs.AddComponent(em, entity, &components.UIComponent{
		State: components.UINormal,
	})

	return entity
}

// NewOnboardingPromptEntity 创建开始引导前的确认提示（初始隐藏）
// 可见性由序列引擎通过 SetPromptEntity 同步
func NewOnboardingPromptEntity(em *ecs.EntityManager, onboarding config.OnboardingConfig, onConfirm, onDecline func()) ecs.EntityID {
	return NewDialogEntity(em, "", onboarding.Message, []DialogChoice{
		{Label: onboarding.ConfirmLabel, OnClick: onConfirm},
		{Label: onboarding.DeclineLabel, OnClick: onDecline, IsCancel: true},
	}, false)
}

// calculateDialogSize 估算对话框宽度和正文高度
// 渲染时按真实字体换行，这里用平均字宽估算行数
func calculateDialogSize(title, message string) (float64, float64) {
	width := config.DialogWidth
	textWidth := width - 2*config.DialogPadding

	// 平均字宽约为字号的一半
	charsPerLine := math.Max(1, math.Floor(textWidth/(config.FontSizeBody*0.5)))
	lines := math.Max(1, math.Ceil(float64(len([]rune(message)))/charsPerLine))

	height := lines * config.DialogLineHeight
	if title != "" {
		height += config.FontSizeTitle * 1.5
	}
	return width, height
}
