package scenes

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/config"
	"github.com/decker502/arpathfinder/pkg/game"
	"github.com/decker502/arpathfinder/pkg/location"
	"github.com/decker502/arpathfinder/pkg/store"
)

const testFrame = 1.0 / 60.0

// newTestEnv 不依赖窗口和字体的场景环境
func newTestEnv(t *testing.T, camera, loc capability.Status) (*Env, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	env := &Env{
		SceneManager: game.NewSceneManager(),
		Guidance:     config.DefaultGuidanceConfig(),
		Store:        st,
		Capabilities: capability.NewStaticProvider(camera, loc, 0),
		NewPositionSource: func() location.PositionSource {
			return location.NewSimulatedSource(21.0285, 105.8542, 1.5, 7)
		},
		ShareInterval: 10 * time.Millisecond,
		Rand:          rand.New(rand.NewPCG(1, 2)),
	}
	t.Cleanup(env.SceneManager.Shutdown)
	return env, st
}

// eventually 轮询直到 cond 成立或超时
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// applyPendingSwitch 执行场景请求的切换，返回新场景
func applyPendingSwitch(t *testing.T, sm *game.SceneManager) game.Scene {
	t.Helper()
	next := sm.Pending()
	if next == nil {
		t.Fatal("no scene switch was requested")
	}
	sm.SwitchTo(next)
	return next
}
