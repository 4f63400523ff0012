package systems

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/ecs"
)

func TestTapGestureCooldown(t *testing.T) {
	tests := []struct {
		name         string
		taps         []float64
		wantAccepted []bool
	}{
		{
			name:         "首次点击总是被接受",
			taps:         []float64{0},
			wantAccepted: []bool{true},
		},
		{
			name:         "冷却内的连续点击只接受第一次",
			taps:         []float64{1.0, 1.1, 1.5, 2.9},
			wantAccepted: []bool{true, false, false, false},
		},
		{
			name:         "正好等于冷却时间被接受",
			taps:         []float64{0, 2.0},
			wantAccepted: []bool{true, true},
		},
		{
			name:         "被拒绝的点击不刷新冷却起点",
			taps:         []float64{0, 1.9, 2.0, 3.9, 4.0},
			wantAccepted: []bool{true, false, true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			forwarded := 0
			taps := NewTapGestureSystem(em, 2.0, func() { forwarded++ })

			wantForwarded := 0
			for i, now := range tt.taps {
				got := taps.OnTap(now)
				if got != tt.wantAccepted[i] {
					t.Errorf("tap %d at %.1fs: accepted=%v, want %v", i, now, got, tt.wantAccepted[i])
				}
				if tt.wantAccepted[i] {
					wantForwarded++
				}
			}

			if forwarded != wantForwarded {
				t.Errorf("forwarded %d taps, want %d", forwarded, wantForwarded)
			}
			state := taps.State()
			if state.AcceptedCount+state.RejectedCount != len(tt.taps) {
				t.Errorf("counters %d+%d do not add up to %d taps", state.AcceptedCount, state.RejectedCount, len(tt.taps))
			}
		})
	}
}
