package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/ecs"
	"github.com/decker502/arpathfinder/pkg/entities"
)

// TestButtonSystemProcess 测试按钮状态机
func TestButtonSystemProcess(t *testing.T) {
	tests := []struct {
		name        string
		x, y        float64
		pressed     bool
		released    bool
		enabled     bool
		wantState   components.UIState
		wantClicked bool
	}{
		{name: "指针在外", x: 0, y: 0, enabled: true, wantState: components.UINormal},
		{name: "悬停", x: 150, y: 120, enabled: true, wantState: components.UIHovered},
		{name: "按下", x: 150, y: 120, pressed: true, enabled: true, wantState: components.UIClicked},
		{name: "释放触发点击", x: 150, y: 120, released: true, enabled: true, wantState: components.UIHovered, wantClicked: true},
		{name: "禁用不响应", x: 150, y: 120, released: true, enabled: false, wantState: components.UIDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			clicked := 0
			id := entities.NewButton(em, 100, 100, 100, 40, "Share", components.ButtonStylePrimary, func() { clicked++ })
			btn, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
			btn.Enabled = tt.enabled

			sys := NewButtonSystem(em)
			got := sys.Process(tt.x, tt.y, tt.pressed, tt.released)

			if got != tt.wantClicked || (clicked == 1) != tt.wantClicked {
				t.Errorf("clicked = %v (count %d), want %v", got, clicked, tt.wantClicked)
			}
			if btn.State != tt.wantState {
				t.Errorf("state = %v, want %v", btn.State, tt.wantState)
			}
		})
	}
}

// TestButtonSystemSingleClickPerRelease 重叠按钮一次释放只触发一个
func TestButtonSystemSingleClickPerRelease(t *testing.T) {
	em := ecs.NewEntityManager()
	count := 0
	entities.NewButton(em, 0, 0, 100, 100, "A", components.ButtonStylePrimary, func() { count++ })
	entities.NewButton(em, 0, 0, 100, 100, "B", components.ButtonStylePrimary, func() { count++ })

	NewButtonSystem(em).Process(50, 50, false, true)
	if count != 1 {
		t.Errorf("overlapping buttons fired %d times", count)
	}
}
