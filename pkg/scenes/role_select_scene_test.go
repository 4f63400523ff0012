package scenes

import (
	"testing"

	"github.com/decker502/arpathfinder/pkg/capability"
)

// TestRoleSelectNavigation 每个按钮请求切换到对应的场景
func TestRoleSelectNavigation(t *testing.T) {
	tests := []struct {
		name   string
		choose func(s *RoleSelectScene)
		check  func(next any) bool
	}{
		{
			name:   "共享位置",
			choose: (*RoleSelectScene).chooseShare,
			check:  func(next any) bool { _, ok := next.(*ShareScene); return ok },
		},
		{
			name:   "追踪朋友",
			choose: (*RoleSelectScene).chooseTrack,
			check:  func(next any) bool { _, ok := next.(*TrackEntryScene); return ok },
		},
		{
			name:   "引导演示",
			choose: (*RoleSelectScene).startDemo,
			check:  func(next any) bool { _, ok := next.(*GuidanceScene); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(t, capability.Granted, capability.Granted)
			scene := NewRoleSelectScene(env)

			tt.choose(scene)

			next := env.SceneManager.Pending()
			if next == nil || !tt.check(next) {
				t.Fatalf("pending scene = %T", next)
			}
		})
	}
}

// TestRoleSelectDemoHasNoSubscription 演示模式不追踪任何共享码
func TestRoleSelectDemoHasNoSubscription(t *testing.T) {
	env, st := newTestEnv(t, capability.Granted, capability.Granted)
	NewRoleSelectScene(env).startDemo()

	guidance := applyPendingSwitch(t, env.SceneManager).(*GuidanceScene)
	if guidance.Session().Code() != "" {
		t.Errorf("demo session code = %q, want empty", guidance.Session().Code())
	}
	if guidance.friendStatus() != "" {
		t.Errorf("demo should have no friend status, got %q", guidance.friendStatus())
	}
	if n := st.SubscriberCount(""); n != 0 {
		t.Errorf("demo subscribed to the store (%d)", n)
	}
}
