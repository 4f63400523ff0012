package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/ecs"
)

func newTestDistance(cfg config.DistanceConfig) (*DistanceSystem, *TimerSystem, *timerOnly) {
	em := ecs.NewEntityManager()
	timers := NewTimerSystem(em)
	d := NewDistanceSystem(em, timers, cfg)
	return d, timers, &timerOnly{em: em, timers: timers}
}

func TestDistanceFullRun(t *testing.T) {
	d, timers, loop := newTestDistance(config.DefaultGuidanceConfig().Distance)

	if got := d.State().MetersRemaining; got != 25.0 {
		t.Fatalf("initial distance = %v, want 25.0", got)
	}

	d.Start()
	if !d.State().Active {
		t.Error("distance should be active during lead delay")
	}

	runFor(loop, 1.4)
	if got := d.State().MetersRemaining; got != 25.0 {
		t.Errorf("distance should not change before lead delay ends, got %v", got)
	}

	// 1.5s 引导延迟 + 26 × 0.15s，留出一帧余量
	runFor(loop, 0.1+26*0.15+0.1)

	state := d.State()
	if state.MetersRemaining != 17.0 {
		t.Errorf("full run should land on 17.0, got %v", state.MetersRemaining)
	}
	if state.TicksDone != 26 {
		t.Errorf("expected 26 ticks, got %d", state.TicksDone)
	}
	if state.Active {
		t.Error("distance should stop after the fixed tick count")
	}
	if timers.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", timers.Pending())
	}

	// 不会循环
	runFor(loop, 10)
	if got := d.State().MetersRemaining; got != 17.0 {
		t.Errorf("distance changed after run finished: %v", got)
	}
}

func TestDistanceTickValuesRoundedToOneDecimal(t *testing.T) {
	d, _, _ := newTestDistance(config.DefaultGuidanceConfig().Distance)
	d.Start()
	d.beginRun()

	want := []float64{24.7, 24.4, 24.1, 23.8, 23.5}
	for i, w := range want {
		d.tick()
		if got := d.State().MetersRemaining; got != w {
			t.Errorf("tick %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestDistanceReset(t *testing.T) {
	tests := []struct {
		name       string
		resetAfter float64
	}{
		{"引导延迟中重置", 1.0},
		{"倒计时中重置", 2.5},
		{"结束后重置", 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, timers, loop := newTestDistance(config.DefaultGuidanceConfig().Distance)
			d.Start()
			runFor(loop, tt.resetAfter)

			d.Reset()
			if timers.Pending() != 0 {
				t.Errorf("Reset should cancel the loop, %d timers pending", timers.Pending())
			}

			runFor(loop, 10)
			state := d.State()
			if state.MetersRemaining != 25.0 || state.Active {
				t.Errorf("after reset expected 25.0/inactive, got %v/%v", state.MetersRemaining, state.Active)
			}
		})
	}
}

func TestDistanceRestartSupersedes(t *testing.T) {
	d, timers, loop := newTestDistance(config.DefaultGuidanceConfig().Distance)
	d.Start()
	runFor(loop, 1.5+10*0.15+0.05)

	mid := d.State().MetersRemaining
	if mid >= 25.0 || mid <= 17.0 {
		t.Fatalf("expected a mid-run value, got %v", mid)
	}

	d.Start()
	if timers.Pending() != 1 {
		t.Errorf("restart should leave only the new lead timer, %d pending", timers.Pending())
	}

	runFor(loop, 1.5+26*0.15+0.2)
	if got := d.State().MetersRemaining; !almostEqual(got, mid-8.0) {
		t.Errorf("second run should decrement from %v to %v, got %v", mid, mid-8.0, got)
	}
}

func TestDistanceFloor(t *testing.T) {
	cfg := config.DefaultGuidanceConfig().Distance
	cfg.Initial = 3.0
	d, _, loop := newTestDistance(cfg)

	d.Start()
	runFor(loop, 1.5+26*0.15+0.2)

	if got := d.State().MetersRemaining; got != 0 {
		t.Errorf("distance should clamp at floor 0, got %v", got)
	}
}
