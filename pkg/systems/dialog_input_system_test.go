package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
)

// newPromptFixture 创建一个可见的两按钮对话框
func newPromptFixture(t *testing.T) (*ecs.EntityManager, *DialogInputSystem, *components.DialogComponent, *components.PositionComponent, *[]string) {
	t.Helper()
	em := ecs.NewEntityManager()
	var clicks []string
	id := entities.NewDialogEntity(em, "", "Start tracking?", []entities.DialogChoice{
		{Label: "Yes", OnClick: func() { clicks = append(clicks, "yes") }},
		{Label: "No", OnClick: func() { clicks = append(clicks, "no") }, IsCancel: true},
	}, true)
	dialog, _ := ecs.GetComponent[*components.DialogComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	return em, NewDialogInputSystem(em), dialog, pos, &clicks
}

// buttonCenter 对话框按钮的屏幕中心
func buttonCenter(pos *components.PositionComponent, btn components.DialogButton) (float64, float64) {
	return pos.X + btn.X + btn.Width/2, pos.Y + btn.Y + btn.Height/2
}

// TestDialogInputHandleRelease 测试按钮命中与模态吞点击
func TestDialogInputHandleRelease(t *testing.T) {
	tests := []struct {
		name       string
		target     func(pos *components.PositionComponent, d *components.DialogComponent) (float64, float64)
		wantClicks []string
	}{
		{
			name: "点击确认按钮",
			target: func(pos *components.PositionComponent, d *components.DialogComponent) (float64, float64) {
				return buttonCenter(pos, d.Buttons[0])
			},
			wantClicks: []string{"yes"},
		},
		{
			name: "点击取消按钮",
			target: func(pos *components.PositionComponent, d *components.DialogComponent) (float64, float64) {
				return buttonCenter(pos, d.Buttons[1])
			},
			wantClicks: []string{"no"},
		},
		{
			name: "点击对话框外部被吞掉",
			target: func(pos *components.PositionComponent, d *components.DialogComponent) (float64, float64) {
				return 1, 1
			},
			wantClicks: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sys, dialog, pos, clicks := newPromptFixture(t)
			x, y := tt.target(pos, dialog)
			if !sys.HandleRelease(x, y) {
				t.Fatal("visible dialog must consume the release")
			}
			if len(*clicks) != len(tt.wantClicks) {
				t.Fatalf("clicks = %v, want %v", *clicks, tt.wantClicks)
			}
			for i := range tt.wantClicks {
				if (*clicks)[i] != tt.wantClicks[i] {
					t.Errorf("clicks[%d] = %q, want %q", i, (*clicks)[i], tt.wantClicks[i])
				}
			}
		})
	}
}

// TestDialogInputHidden 隐藏的对话框不拦截点击
func TestDialogInputHidden(t *testing.T) {
	_, sys, dialog, pos, clicks := newPromptFixture(t)
	dialog.IsVisible = false

	x, y := buttonCenter(pos, dialog.Buttons[0])
	if sys.HandleRelease(x, y) {
		t.Error("hidden dialog must not consume input")
	}
	if sys.HasVisibleDialog() {
		t.Error("HasVisibleDialog should be false")
	}
	if len(*clicks) != 0 {
		t.Errorf("hidden dialog fired %v", *clicks)
	}
}

// TestDialogInputEscape ESC 触发取消按钮
func TestDialogInputEscape(t *testing.T) {
	_, sys, _, _, clicks := newPromptFixture(t)
	if !sys.HandleEscape() {
		t.Fatal("HandleEscape should report handled")
	}
	if len(*clicks) != 1 || (*clicks)[0] != "no" {
		t.Errorf("clicks = %v, want [no]", *clicks)
	}
}

// TestDialogInputHover 悬停和按下状态
func TestDialogInputHover(t *testing.T) {
	_, sys, dialog, pos, _ := newPromptFixture(t)
	x, y := buttonCenter(pos, dialog.Buttons[0])

	sys.UpdateHover(x, y, false)
	if dialog.Buttons[0].State != components.UIHovered || dialog.Buttons[1].State != components.UINormal {
		t.Errorf("hover states = %v, %v", dialog.Buttons[0].State, dialog.Buttons[1].State)
	}
	sys.UpdateHover(x, y, true)
	if dialog.Buttons[0].State != components.UIClicked {
		t.Errorf("pressed state = %v", dialog.Buttons[0].State)
	}
}

// TestDialogInputTopmost 多个对话框时只有最上层响应
func TestDialogInputTopmost(t *testing.T) {
	em, sys, dialog, pos, clicks := newPromptFixture(t)
	var top []string
	entities.NewDialogEntity(em, "", "Error", []entities.DialogChoice{
		{Label: "OK", OnClick: func() { top = append(top, "ok") }, IsCancel: true},
	}, true)

	sys.HandleEscape()
	if len(top) != 1 || len(*clicks) != 0 {
		t.Errorf("escape should hit the top dialog only: top=%v bottom=%v", top, *clicks)
	}

	x, y := buttonCenter(pos, dialog.Buttons[0])
	sys.HandleRelease(x, y)
	if len(*clicks) != 0 {
		t.Error("lower dialog must not receive clicks while covered")
	}
}
