package scenes

import (
	"fmt"
	"testing"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/code"
	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/game"
)

// TestTrackEntrySubmit 合法的共享码进入引导，不合法的弹出提示并停留
func TestTrackEntrySubmit(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSwitch bool
		wantCode   string
	}{
		{name: "合法大写", input: "ABC123", wantSwitch: true, wantCode: "ABC123"},
		{name: "小写和空白被规范化", input: "  xy7k2p ", wantSwitch: true, wantCode: "XY7K2P"},
		{name: "长度不足", input: "ABC", wantSwitch: false},
		{name: "空输入", input: "", wantSwitch: false},
		{name: "非法字符", input: "ABC-12", wantSwitch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(t, capability.Granted, capability.Granted)
			scene := newTrackEntryScene(env, false)

			switched := scene.Submit(tt.input)
			if switched != tt.wantSwitch {
				t.Fatalf("Submit(%q) = %v, want %v", tt.input, switched, tt.wantSwitch)
			}

			if !tt.wantSwitch {
				if env.SceneManager.Pending() != nil {
					t.Error("invalid code must not switch scenes")
				}
				if !scene.ErrorVisible() {
					t.Error("invalid code should show the error prompt")
				}
				return
			}

			guidance, ok := env.SceneManager.Pending().(*GuidanceScene)
			if !ok {
				t.Fatalf("pending scene = %T", env.SceneManager.Pending())
			}
			if guidance.Session().Code() != tt.wantCode {
				t.Errorf("session code = %q, want %q", guidance.Session().Code(), tt.wantCode)
			}
			if scene.ErrorVisible() {
				t.Error("valid code should not show the error prompt")
			}
		})
	}
}

// TestTrackEntryErrorDismiss 确认按钮关闭提示，且同一时刻只有一个提示
func TestTrackEntryErrorDismiss(t *testing.T) {
	env, _ := newTestEnv(t, capability.Granted, capability.Granted)
	scene := newTrackEntryScene(env, false)

	scene.Submit("A")
	scene.Submit("B")
	scene.entityManager.RemoveMarkedEntities()

	dialogs := ecs.GetEntitiesWith1[*components.DialogComponent](scene.entityManager)
	if len(dialogs) != 1 {
		t.Fatalf("dialogs = %d, want 1", len(dialogs))
	}

	dialog, _ := ecs.GetComponent[*components.DialogComponent](scene.entityManager, dialogs[0])
	dialog.Buttons[0].OnClick()
	scene.entityManager.RemoveMarkedEntities()

	if scene.ErrorVisible() {
		t.Error("prompt still visible after OK")
	}
}

// TestTrackEntryRemembersRole 成功提交后记录身份
func TestTrackEntryRemembersRole(t *testing.T) {
	env, _ := newTestEnv(t, capability.Granted, capability.Granted)
	sm, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager: %v", err)
	}
	env.Settings = sm
	scene := newTrackEntryScene(env, false)

	if !scene.Submit("QWERTY") {
		t.Fatal("valid code rejected")
	}
	if got := env.Settings.GetSettings().LastRole; got != game.RoleTracker {
		t.Errorf("last role = %q, want %q", got, game.RoleTracker)
	}
}

// TestTrackEntryVirtualKeyboard 移动端创建绑定到输入框的虚拟键盘
func TestTrackEntryVirtualKeyboard(t *testing.T) {
	env, _ := newTestEnv(t, capability.Granted, capability.Granted)

	desktop := newTrackEntryScene(env, false)
	if desktop.keyboard != nil || desktop.keyboardEntity != 0 {
		t.Error("desktop scene should not create a virtual keyboard")
	}

	mobile := newTrackEntryScene(env, true)
	kb, ok := ecs.GetComponent[*components.VirtualKeyboardComponent](mobile.entityManager, mobile.keyboardEntity)
	if !ok {
		t.Fatal("mobile scene has no virtual keyboard")
	}
	if kb.TargetInputEntity != mobile.inputEntity || !kb.IsVisible {
		t.Errorf("keyboard target=%d visible=%v, want target=%d visible", kb.TargetInputEntity, kb.IsVisible, mobile.inputEntity)
	}
}

// TestCodeErrorMessage 每类错误都有对应说明
func TestCodeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"长度错误", fmt.Errorf("%w: got 3", code.ErrInvalidLength), "A code has exactly 6 characters."},
		{"字符错误", fmt.Errorf("%w: '-'", code.ErrInvalidCharacter), "A code only uses the letters A-Z and the digits 0-9."},
		{"其它错误", fmt.Errorf("boom"), "Tracking could not start. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeErrorMessage(tt.err); got != tt.want {
				t.Errorf("codeErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
