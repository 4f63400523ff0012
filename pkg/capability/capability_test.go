package capability

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestStaticProvider 返回预设结果
func TestStaticProvider(t *testing.T) {
	tests := []struct {
		name     string
		camera   Status
		location Status
	}{
		{name: "全部授权", camera: Granted, location: Granted},
		{name: "相机被拒", camera: Denied, location: Granted},
		{name: "定位被拒", camera: Granted, location: Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStaticProvider(tt.camera, tt.location, 0)
			cam, err := p.RequestCameraAccess(context.Background())
			if err != nil || cam != tt.camera {
				t.Errorf("camera = %v, %v; want %v", cam, err, tt.camera)
			}
			loc, err := p.RequestLocationAccess(context.Background())
			if err != nil || loc != tt.location {
				t.Errorf("location = %v, %v; want %v", loc, err, tt.location)
			}
		})
	}
}

// TestStaticProviderCancelled ctx 取消时返回 Denied 和错误
func TestStaticProviderCancelled(t *testing.T) {
	p := NewStaticProvider(Granted, Granted, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := p.RequestCameraAccess(ctx)
	if status != Denied || !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, %v; want Denied, context.Canceled", status, err)
	}
}

// TestStatusString 测试字符串表示
func TestStatusString(t *testing.T) {
	if Granted.String() != "Granted" || Denied.String() != "Denied" || Status(9).String() != "Unknown" {
		t.Error("unexpected Status.String output")
	}
}
