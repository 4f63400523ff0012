package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata 管理器
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m, err := gdata.Open(gdata.Config{AppName: "arpathfinder_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.StoreURL != "" {
		t.Errorf("StoreURL: got %q, want empty", s.StoreURL)
	}
	if !s.CueSoundEnabled {
		t.Error("CueSoundEnabled: got false, want true")
	}
	if s.Volume != 0.6 {
		t.Errorf("Volume: got %v, want 0.6", s.Volume)
	}
	if s.LastRole != RoleNone {
		t.Errorf("LastRole: got %q, want none", s.LastRole)
	}
}

// TestSettingsManagerNilGdata 测试降级模式
func TestSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	sm.SetVolume(0.3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got %v", err)
	}
	if sm.GetSettings().Volume != 0.3 {
		t.Errorf("in-memory volume lost: %v", sm.GetSettings().Volume)
	}
}

// TestSettingsManagerSaveLoad 测试持久化往返
func TestSettingsManagerSaveLoad(t *testing.T) {
	m := openTestGdata(t)

	sm, _ := NewSettingsManager(m)
	sm.SetStoreURL("http://127.0.0.1:8080")
	sm.SetCueSoundEnabled(false)
	sm.SetVolume(0.25)
	sm.SetLastRole(RoleTracker)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, _ := NewSettingsManager(m)
	got := reloaded.GetSettings()
	if got.StoreURL != "http://127.0.0.1:8080" || got.CueSoundEnabled || got.Volume != 0.25 || got.LastRole != RoleTracker {
		t.Errorf("reloaded settings mismatch: %+v", got)
	}
}

// TestSettingsManagerCorruptData 损坏数据回退到默认设置
func TestSettingsManagerCorruptData(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: [not a number")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm, _ := NewSettingsManager(m)
	if sm.GetSettings().Volume != DefaultSettings().Volume {
		t.Errorf("corrupt data should fall back to defaults, got %+v", sm.GetSettings())
	}
}

// TestSetVolumeClamp 测试音量范围限制
func TestSetVolumeClamp(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "负值", input: -0.5, want: 0},
		{name: "正常", input: 0.4, want: 0.4},
		{name: "超出上限", input: 1.7, want: 1},
	}

	sm, _ := NewSettingsManager(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetVolume(tt.input)
			if got := sm.GetSettings().Volume; got != tt.want {
				t.Errorf("Volume = %v, want %v", got, tt.want)
			}
		})
	}
}
