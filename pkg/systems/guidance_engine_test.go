package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/components"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

// tapAfterCooldown 等待冷却结束后点击
func tapAfterCooldown(t *testing.T, e *GuidanceEngine) {
	t.Helper()
	runFor(e, 2.0)
	if !e.Tap() {
		t.Fatalf("tap at %.2fs should be accepted", e.Now())
	}
}

func TestGuidanceEngineInitialState(t *testing.T) {
	e, _ := newTestEngine()
	snap := e.Snapshot()

	if snap.CurrentIndex != 0 || snap.Started || snap.OnboardingAcknowledged || snap.NotificationVisible {
		t.Errorf("unexpected initial sequence state: %+v", snap)
	}
	if snap.StepCount != 8 {
		t.Errorf("expected 8 steps, got %d", snap.StepCount)
	}
	if snap.MetersRemaining != 25.0 || snap.DistanceActive {
		t.Errorf("unexpected initial distance: %v/%v", snap.MetersRemaining, snap.DistanceActive)
	}
	if snap.CueActive || snap.MessageVisible || snap.PendingTimers != 0 {
		t.Errorf("engine should start idle: %+v", snap)
	}
}

// TestGuidanceEngineDeclineFlow 点击 → 提示；拒绝 → 隐藏；再点击 → 再次提示（不推进）
func TestGuidanceEngineDeclineFlow(t *testing.T) {
	e, _ := newTestEngine()

	if !e.Tap() {
		t.Fatal("first tap should be accepted")
	}
	snap := e.Snapshot()
	if !snap.NotificationVisible || !snap.OnboardingAcknowledged || snap.Started {
		t.Fatalf("tap1 should reveal onboarding prompt, got %+v", snap)
	}

	e.Decline()
	snap = e.Snapshot()
	if snap.NotificationVisible || snap.Started || snap.OnboardingAcknowledged {
		t.Fatalf("decline should hide prompt and stay unstarted, got %+v", snap)
	}

	tapAfterCooldown(t, e)
	snap = e.Snapshot()
	if !snap.NotificationVisible {
		t.Error("tap after decline should reveal the prompt again")
	}
	if snap.CurrentIndex != 0 {
		t.Errorf("tap after decline must not advance, index=%d", snap.CurrentIndex)
	}
}

// TestGuidanceEngineConfirmFlow 点击 → 提示；确认 → 开始；冷却后点击 → 执行第一步
func TestGuidanceEngineConfirmFlow(t *testing.T) {
	e, _ := newTestEngine()

	e.Tap()
	e.Confirm()
	snap := e.Snapshot()
	if !snap.Started || snap.CurrentIndex != 0 || snap.NotificationVisible {
		t.Fatalf("confirm should start the sequence at index 0, got %+v", snap)
	}

	tapAfterCooldown(t, e)
	snap = e.Snapshot()
	if snap.CurrentIndex != 1 {
		t.Errorf("first advancing tap should move index to 1, got %d", snap.CurrentIndex)
	}
	if !snap.MessageVisible || snap.Message != "🚪 Open the door and get inside" {
		t.Errorf("first step should show the opening message, got %q (visible=%v)", snap.Message, snap.MessageVisible)
	}
}

func TestGuidanceEnginePromptSwallowsTaps(t *testing.T) {
	e, _ := newTestEngine()

	e.Tap()
	for i := 0; i < 3; i++ {
		runFor(e, 2.0)
		e.Tap()
	}

	snap := e.Snapshot()
	if !snap.NotificationVisible || snap.Started || snap.CurrentIndex != 0 {
		t.Errorf("taps while prompt is visible must be no-ops, got %+v", snap)
	}
}

func TestGuidanceEngineRapidTapsAdvanceOnce(t *testing.T) {
	e, _ := newTestEngine()
	e.Tap()
	e.Confirm()
	runFor(e, 2.0)

	accepted := 0
	for i := 0; i < 10; i++ {
		if e.Tap() {
			accepted++
		}
		runFor(e, 0.1)
	}

	if accepted != 1 {
		t.Errorf("only the first of a burst should be accepted, got %d", accepted)
	}
	if idx := e.Snapshot().CurrentIndex; idx != 1 {
		t.Errorf("index should advance by exactly one, got %d", idx)
	}
}

func TestGuidanceEngineApproachStartsDistance(t *testing.T) {
	e, _ := newTestEngine()
	e.Tap()
	e.Confirm()

	tapAfterCooldown(t, e) // message
	if e.Snapshot().DistanceActive {
		t.Fatal("message step must not start the distance countdown")
	}

	tapAfterCooldown(t, e) // top
	snap := e.Snapshot()
	if !snap.CueActive || snap.CueDirection != components.DirectionTop {
		t.Errorf("second step should trigger the top cue, got %+v", snap)
	}
	if !snap.DistanceActive {
		t.Error("approach direction should start the distance countdown")
	}

	runFor(e, 1.5+26*0.15+0.1)
	if got := e.Snapshot().MetersRemaining; got != 17.0 {
		t.Errorf("distance should reach 17.0, got %v", got)
	}
}

// TestGuidanceEngineFullCycleResets 跑完全部步骤后的下一次点击回到初始状态
func TestGuidanceEngineFullCycleResets(t *testing.T) {
	e, _ := newTestEngine()
	initial := e.Snapshot()

	e.Tap()
	e.Confirm()

	var dispatched []int
	e.Sequence.SetOnStepDispatched(func(index int, step components.Step) {
		dispatched = append(dispatched, index)
	})

	for i := 0; i < initial.StepCount; i++ {
		tapAfterCooldown(t, e)
	}
	if idx := e.Snapshot().CurrentIndex; idx != initial.StepCount {
		t.Fatalf("after all steps index should equal length, got %d", idx)
	}
	if len(dispatched) != initial.StepCount || dispatched[len(dispatched)-1] != initial.StepCount-1 {
		t.Errorf("unexpected dispatch order: %v", dispatched)
	}

	// 计时器仍在进行中时重置
	tapAfterCooldown(t, e)

	snap := e.Snapshot()
	if snap.CurrentIndex != 0 || snap.Started || snap.OnboardingAcknowledged || snap.NotificationVisible {
		t.Errorf("sequence state not reset: %+v", snap)
	}
	if snap.MetersRemaining != initial.MetersRemaining || snap.DistanceActive {
		t.Errorf("distance not reset: %v/%v", snap.MetersRemaining, snap.DistanceActive)
	}
	if snap.CueActive || snap.MessageVisible {
		t.Errorf("cue/message not cleared: %+v", snap)
	}
	if snap.PendingTimers != 0 {
		t.Errorf("reset should leave no pending timers, got %d", snap.PendingTimers)
	}

	// 重置后的下一次点击重新进入引导提示
	tapAfterCooldown(t, e)
	if !e.Snapshot().NotificationVisible {
		t.Error("tap after reset should reveal the onboarding prompt")
	}
}

// TestGuidanceEngineStopMidAnimation 停止后不再有任何状态变化
func TestGuidanceEngineStopMidAnimation(t *testing.T) {
	e, _ := newTestEngine()

	mutations := 0
	e.Sequence.SetOnStepDispatched(func(int, components.Step) { mutations++ })

	e.Tap()
	e.Confirm()
	tapAfterCooldown(t, e) // message
	tapAfterCooldown(t, e) // top + distance
	runFor(e, 1.6)         // 距离倒计时已开始

	before := e.Snapshot()
	if before.PendingTimers == 0 {
		t.Fatal("expected pending timers before stop")
	}
	count := mutations

	if n := e.Stop(); n == 0 {
		t.Error("Stop should report cancelled timers")
	}

	runFor(e, 10)
	e.Tap()
	e.Confirm()

	after := e.Snapshot()
	if after.PendingTimers != 0 {
		t.Errorf("no timers may remain after stop, got %d", after.PendingTimers)
	}
	before.PendingTimers = 0
	if after != before {
		t.Errorf("state changed after stop:\nbefore %+v\nafter  %+v", before, after)
	}
	if mutations != count {
		t.Errorf("callbacks ran after stop: %d → %d", count, mutations)
	}
}

func TestGuidanceEnginePromptEntitySync(t *testing.T) {
	e, em := newTestEngine()

	prompt := em.CreateEntity()
	ecs.AddComponent(em, prompt, &components.DialogComponent{})
	e.Sequence.SetPromptEntity(prompt)

	dialog, _ := ecs.GetComponent[*components.DialogComponent](em, prompt)

	e.Tap()
	if !dialog.IsVisible {
		t.Error("dialog should become visible with the prompt")
	}
	e.Decline()
	if dialog.IsVisible {
		t.Error("dialog should hide on decline")
	}
}

func TestGuidanceEngineRejectsEmptyScript(t *testing.T) {
	cfg := config.DefaultGuidanceConfig()
	cfg.Steps = nil
	if _, err := NewGuidanceEngine(ecs.NewEntityManager(), cfg); err == nil {
		t.Error("expected error for empty script")
	}
}
