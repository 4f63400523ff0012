package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene and Lifecycle interfaces.
type MockScene struct {
	name         string
	updateCalled bool
	deltaTime    float64
	log          *[]string
	onUpdate     func()
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

func (m *MockScene) Draw(screen *ebiten.Image) {}

func (m *MockScene) OnEnter() { *m.log = append(*m.log, m.name+".enter") }
func (m *MockScene) OnExit()  { *m.log = append(*m.log, m.name+".exit") }

// plainScene 不实现 Lifecycle
type plainScene struct{ updates int }

func (p *plainScene) Update(float64)     { p.updates++ }
func (p *plainScene) Draw(*ebiten.Image) {}

// TestSceneManagerLifecycleOrder 旧场景先退出，新场景后进入
func TestSceneManagerLifecycleOrder(t *testing.T) {
	var events []string
	a := &MockScene{name: "a", log: &events}
	b := &MockScene{name: "b", log: &events}

	sm := NewSceneManager()
	sm.SwitchTo(a)
	sm.SwitchTo(b)
	sm.Shutdown()

	want := []string{"a.enter", "a.exit", "b.enter", "b.exit"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if sm.GetCurrentScene() != nil {
		t.Error("current scene should be nil after Shutdown")
	}
}

// TestSceneManagerRequestSwitch 延迟切换在本帧 Update 结束后生效
func TestSceneManagerRequestSwitch(t *testing.T) {
	var events []string
	sm := NewSceneManager()
	b := &MockScene{name: "b", log: &events}
	a := &MockScene{name: "a", log: &events}
	a.onUpdate = func() {
		sm.RequestSwitch(b)
		if sm.Pending() != b {
			t.Error("requested scene should be pending")
		}
		if sm.GetCurrentScene() != a {
			t.Error("switch must not happen during Update")
		}
	}

	sm.SwitchTo(a)
	sm.Update(0.016)

	if sm.GetCurrentScene() != b {
		t.Fatal("pending switch not applied")
	}
	if sm.Pending() != nil {
		t.Error("pending scene should be cleared after the switch")
	}
	if !a.updateCalled || a.deltaTime != 0.016 {
		t.Error("scene a not updated with delta")
	}
	if b.updateCalled {
		t.Error("scene b must not be updated in the same frame")
	}
}

// TestSceneManagerPlainScene 未实现 Lifecycle 的场景也能切换
func TestSceneManagerPlainScene(t *testing.T) {
	sm := NewSceneManager()
	p := &plainScene{}
	sm.SwitchTo(p)
	sm.Update(0.1)
	sm.Draw(nil)
	if p.updates != 1 {
		t.Errorf("updates = %d, want 1", p.updates)
	}
}
