// Package capability 模拟相机 / 定位权限请求
package capability

import (
	"context"
	"log"
	"time"
)

// Status 权限请求结果
type Status int

const (
	// Granted 已授权
	Granted Status = iota
	// Denied 被拒绝
	Denied
)

// String 返回 Status 的字符串表示
func (s Status) String() string {
	switch s {
	case Granted:
		return "Granted"
	case Denied:
		return "Denied"
	default:
		return "Unknown"
	}
}

// Provider 权限提供者
// 两个请求相互独立，调用方可以并发发起
type Provider interface {
	RequestCameraAccess(ctx context.Context) (Status, error)
	RequestLocationAccess(ctx context.Context) (Status, error)
}

// StaticProvider 返回预设结果的权限提供者
// Delay 模拟系统弹窗的等待时间，ctx 取消时提前返回
type StaticProvider struct {
	Camera   Status
	Location Status
	Delay    time.Duration
}

// NewStaticProvider 创建权限提供者
func NewStaticProvider(camera, location Status, delay time.Duration) *StaticProvider {
	return &StaticProvider{Camera: camera, Location: location, Delay: delay}
}

// RequestCameraAccess 请求相机权限
func (p *StaticProvider) RequestCameraAccess(ctx context.Context) (Status, error) {
	return p.wait(ctx, "camera", p.Camera)
}

// RequestLocationAccess 请求定位权限
func (p *StaticProvider) RequestLocationAccess(ctx context.Context) (Status, error) {
	return p.wait(ctx, "location", p.Location)
}

func (p *StaticProvider) wait(ctx context.Context, kind string, result Status) (Status, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Denied, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Denied, err
	}
	log.Printf("[Capability] %s access: %v", kind, result)
	return result, nil
}
