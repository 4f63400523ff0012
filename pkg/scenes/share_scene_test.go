package scenes

import (
	"context"
	"testing"

	"github.com/decker502/arpathfinder/pkg/capability"
	"github.com/decker502/arpathfinder/pkg/code"
)

// TestShareSceneSharesGeneratedCode 进入场景后共享码的位置写入存储
func TestShareSceneSharesGeneratedCode(t *testing.T) {
	env, st := newTestEnv(t, capability.Granted, capability.Granted)
	scene := NewShareScene(env)
	env.SceneManager.SwitchTo(scene)

	c := scene.Code()
	if err := code.Validate(c); err != nil {
		t.Fatalf("generated code %q invalid: %v", c, err)
	}

	eventually(t, "first location put", func() bool {
		_, err := st.Get(context.Background(), c)
		return err == nil
	})
	if !scene.Sharer().Active() {
		t.Error("sharer should be active while the scene is shown")
	}
}

// TestShareSceneRegenerate 换码后只更新新码
func TestShareSceneRegenerate(t *testing.T) {
	env, st := newTestEnv(t, capability.Granted, capability.Granted)
	scene := NewShareScene(env)
	env.SceneManager.SwitchTo(scene)

	first := scene.Code()
	scene.regenerate()
	second := scene.Code()

	if first == second {
		t.Fatalf("regenerate kept the same code %q", first)
	}
	if scene.Sharer().Code() != second {
		t.Errorf("sharer code = %q, want %q", scene.Sharer().Code(), second)
	}
	eventually(t, "put for the new code", func() bool {
		_, err := st.Get(context.Background(), second)
		return err == nil
	})
}

// TestShareSceneStopsOnExit 离开场景停止上报
func TestShareSceneStopsOnExit(t *testing.T) {
	env, _ := newTestEnv(t, capability.Granted, capability.Granted)
	scene := NewShareScene(env)
	env.SceneManager.SwitchTo(scene)

	scene.back()
	next := applyPendingSwitch(t, env.SceneManager)

	if _, ok := next.(*RoleSelectScene); !ok {
		t.Errorf("back switched to %T", next)
	}
	if scene.Sharer().Active() {
		t.Error("sharer still active after leaving the scene")
	}
}

// TestShareSceneWithoutSource 未配置位置来源时显示错误，不崩溃
func TestShareSceneWithoutSource(t *testing.T) {
	env, _ := newTestEnv(t, capability.Granted, capability.Granted)
	env.NewPositionSource = nil
	scene := NewShareScene(env)
	env.SceneManager.SwitchTo(scene)

	if scene.err == nil {
		t.Error("expected a configuration error")
	}
	if scene.Code() != "" || scene.Sharer() != nil {
		t.Error("nothing should be shared without a position source")
	}
}
