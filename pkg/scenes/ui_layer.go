package scenes

import (
	"image/color"

	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/systems"
	"github.com/decker502/arpathfinder/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	formBackgroundColor = color.RGBA{R: 18, G: 24, B: 38, A: 255}
	formTitleColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	formSubtitleColor   = color.RGBA{R: 176, G: 190, B: 197, A: 255}
	formErrorColor      = color.RGBA{R: 255, G: 138, B: 128, A: 255}
)

// uiLayer 表单类场景共用的按钮与对话框处理
//
// 输入优先级：可见对话框 > 按钮。对话框可见时按钮不响应。
type uiLayer struct {
	entityManager *ecs.EntityManager

	buttons      *systems.ButtonSystem
	dialogs      *systems.DialogInputSystem
	buttonRender *systems.ButtonRenderSystem
	dialogRender *systems.DialogRenderSystem
}

func newUILayer(em *ecs.EntityManager, rm *game.ResourceManager) *uiLayer {
	return &uiLayer{
		entityManager: em,
		buttons:       systems.NewButtonSystem(em),
		dialogs:       systems.NewDialogInputSystem(em),
		buttonRender:  systems.NewButtonRenderSystem(em, rm),
		dialogRender:  systems.NewDialogRenderSystem(em, rm),
	}
}

// update 处理本帧指针输入
// 返回: 本帧输入是否已被对话框或按钮消费
func (l *uiLayer) update(deltaTime float64) bool {
	l.dialogs.Update(deltaTime)
	if l.dialogs.ConsumedInput() || l.dialogs.HasVisibleDialog() {
		return true
	}

	pressed, x, y := utils.GetPointerState()
	released, rx, ry := utils.IsPointerJustReleased()
	if released {
		x, y = rx, ry
	}
	return l.buttons.Process(float64(x), float64(y), pressed, released)
}

// drawButtons 绘制所有按钮
func (l *uiLayer) drawButtons(screen *ebiten.Image) {
	l.buttonRender.Draw(screen)
}

// drawDialogs 绘制可见对话框（应在最后调用）
func (l *uiLayer) drawDialogs(screen *ebiten.Image) {
	l.dialogRender.Draw(screen)
}

// drawLabel 以 (cx, cy) 为中心绘制一行文字
func drawLabel(screen *ebiten.Image, face *text.GoTextFace, str string, cx, cy float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}

// drawWrapped 在 (cx, top) 下方居中绘制自动换行的段落
func drawWrapped(screen *ebiten.Image, face *text.GoTextFace, str string, cx, top, maxWidth float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	lineHeight := face.Size * 1.4
	for i, line := range utils.WrapText(str, face, maxWidth) {
		drawLabel(screen, face, line, cx, top+float64(i)*lineHeight, clr)
	}
}

// fontOf 从资源管理器取字体，rm 为 nil 时返回 nil（测试环境）
func fontOf(rm *game.ResourceManager, size float64, bold bool) *text.GoTextFace {
	if rm == nil {
		return nil
	}
	if bold {
		return rm.BoldFont(size)
	}
	return rm.Font(size)
}

// formButtonY 表单第 index 个按钮的 Y 坐标（自底部向上排列）
func formButtonY(index int) float64 {
	bottom := config.ScreenHeight - 48.0
	return bottom - float64(index+1)*config.FormButtonHeight - float64(index)*config.FormButtonSpacing
}
