package entities

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// TestNewButton 测试按钮实体组件齐全
func TestNewButton(t *testing.T) {
	em := ecs.NewEntityManager()
	clicked := false
	id := NewButton(em, 10, 20, 100, 40, "分享位置", components.ButtonStylePrimary, func() { clicked = true })

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != 10 || pos.Y != 20 {
		t.Fatalf("unexpected position: %+v", pos)
	}
	btn, ok := ecs.GetComponent[*components.ButtonComponent](em, id)
	if !ok {
		t.Fatal("button component missing")
	}
	if !btn.Enabled || btn.State != components.UINormal {
		t.Errorf("button should start enabled and normal, got enabled=%v state=%v", btn.Enabled, btn.State)
	}
	btn.OnClick()
	if !clicked {
		t.Error("OnClick not wired")
	}
	if !ecs.HasComponent[*components.UIComponent](em, id) {
		t.Error("UIComponent missing")
	}
}

// TestNewCodeInputEntity 测试追踪码输入框默认属性
func TestNewCodeInputEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewCodeInputEntity(em, 0, 0, 300, 56, 6, nil)
	input, ok := ecs.GetComponent[*components.TextInputComponent](em, id)
	if !ok {
		t.Fatal("text input component missing")
	}
	if !input.IsFocused || !input.UpperCase || input.MaxLength != 6 {
		t.Errorf("unexpected defaults: %+v", input)
	}
}
