package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/ecs"
)

func TestTimerSystemOneShot(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)
	loop := &timerOnly{em: em, timers: timers}

	fired := 0
	id := timers.Schedule("test", 1.5, func() { fired++ })

	if !timers.IsPending(id) {
		t.Fatal("timer should be pending right after Schedule")
	}

	runFor(loop, 1.4)
	if fired != 0 {
		t.Fatalf("timer fired too early (%d)", fired)
	}

	// 90 帧 × 1/60 存在浮点误差，仍应在第 90 帧触发
	runFor(loop, 0.1)
	if fired != 1 {
		t.Fatalf("expected timer to fire once at 1.5s, fired %d", fired)
	}

	runFor(loop, 5)
	if fired != 1 {
		t.Errorf("one-shot timer fired %d times", fired)
	}
	if timers.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", timers.Pending())
	}
	if em.EntityExists(id) {
		t.Error("timer entity should be destroyed after firing")
	}
}

func TestTimerSystemCancel(t *testing.T) {
	tests := []struct {
		name        string
		cancelAfter float64
	}{
		{"立即取消", 0},
		{"中途取消", 0.5},
		{"触发前一帧取消", 1.0 - frameDelta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			timers := NewTimerSystem(em)
			loop := &timerOnly{em: em, timers: timers}

			fired := false
			id := timers.Schedule("test", 1.0, func() { fired = true })

			runFor(loop, tt.cancelAfter)
			if !timers.Cancel(id) {
				t.Fatal("Cancel should report a pending timer")
			}
			if timers.Cancel(id) {
				t.Error("second Cancel should report nothing pending")
			}

			runFor(loop, 3)
			if fired {
				t.Error("cancelled timer must never fire")
			}
		})
	}
}

func TestTimerSystemRepeating(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)
	loop := &timerOnly{em: em, timers: timers}

	count := 0
	timers.ScheduleRepeating("tick", 0.15, 26, func() { count++ })

	runFor(loop, 0.15*10)
	if count != 10 {
		t.Errorf("expected 10 ticks after 1.5s, got %d", count)
	}

	runFor(loop, 10)
	if count != 26 {
		t.Errorf("repeating timer should stop after 26 ticks, got %d", count)
	}
	if timers.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", timers.Pending())
	}
}

func TestTimerSystemLargeDeltaFiresEveryInterval(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)

	count := 0
	timers.ScheduleRepeating("tick", 0.1, 5, func() { count++ })

	timers.Update(0.35)
	if count != 3 {
		t.Errorf("expected 3 fires for dt=0.35, got %d", count)
	}
	timers.Update(10)
	if count != 5 {
		t.Errorf("expected 5 fires total, got %d", count)
	}
}

func TestTimerSystemCancelFromCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)

	count := 0
	var id ecs.EntityID
	id = timers.ScheduleRepeating("tick", 0.1, 10, func() {
		count++
		if count == 3 {
			timers.Cancel(id)
		}
	})

	timers.Update(5)
	if count != 3 {
		t.Errorf("timer cancelled in its own callback fired %d times, want 3", count)
	}
}

func TestTimerSystemCallbackCancelsOtherTimer(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)

	secondFired := false
	var second ecs.EntityID
	timers.Schedule("first", 0.5, func() { timers.Cancel(second) })
	second = timers.Schedule("second", 0.5, func() { secondFired = true })

	timers.Update(1)
	if secondFired {
		t.Error("timer cancelled earlier in the same frame must not fire")
	}
}

func TestTimerSystemScheduleFromCallback(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)
	loop := &timerOnly{em: em, timers: timers}

	chained := false
	timers.Schedule("lead", 0.5, func() {
		timers.Schedule("chained", 0.5, func() { chained = true })
	})

	runFor(loop, 0.6)
	if chained {
		t.Fatal("chained timer fired too early")
	}
	runFor(loop, 0.5)
	if !chained {
		t.Error("chained timer should fire about 0.5s after the first")
	}
}

func TestTimerSystemCancelNamedAndAll(t *testing.T) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)

	timers.Schedule("a", 1, func() {})
	timers.Schedule("a", 2, func() {})
	timers.Schedule("b", 1, func() {})

	if n := timers.CancelNamed("a"); n != 2 {
		t.Errorf("CancelNamed(a) = %d, want 2", n)
	}
	if timers.Pending() != 1 {
		t.Errorf("expected 1 pending timer, got %d", timers.Pending())
	}
	if n := timers.CancelAll(); n != 1 {
		t.Errorf("CancelAll() = %d, want 1", n)
	}
	if timers.Pending() != 0 {
		t.Errorf("expected 0 pending timers, got %d", timers.Pending())
	}
	if timers.Cancel(0) {
		t.Error("Cancel(0) should be a no-op")
	}
}
