// Package location 位置来源和共享端的上报逻辑
package location

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Position 一次定位结果
type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// PositionSource 位置来源
// Watch 阻塞直到 ctx 结束；期间每 interval 调用一次 fn（首次立即调用）
type PositionSource interface {
	Watch(ctx context.Context, interval time.Duration, fn func(Position)) error
}

// metersPerDegreeLat 纬度 1 度对应的米数（近似）
const metersPerDegreeLat = 111_320.0

// SimulatedSource 以原点为中心的随机游走
// 相同种子产生相同轨迹，用于桌面端和测试
type SimulatedSource struct {
	mu    sync.Mutex
	lat   float64
	lng   float64
	stepM float64 // 每次移动的最大距离（米）
	rng   *rand.Rand
	now   func() time.Time
}

// NewSimulatedSource 创建模拟位置来源
//
// 参数：
//   - originLat, originLng: 起点坐标
//   - stepMeters: 每次更新的最大位移
//   - seed: 随机种子
func NewSimulatedSource(originLat, originLng, stepMeters float64, seed uint64) *SimulatedSource {
	return &SimulatedSource{
		lat:   originLat,
		lng:   originLng,
		stepM: stepMeters,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:   time.Now,
	}
}

// SetClock 替换时间来源（测试用）
func (s *SimulatedSource) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Next 返回下一个位置
func (s *SimulatedSource) Next() Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * s.stepM

	dLat := dist * math.Cos(angle) / metersPerDegreeLat
	dLng := dist * math.Sin(angle) / (metersPerDegreeLat * math.Max(math.Cos(s.lat*math.Pi/180), 1e-6))
	s.lat += dLat
	s.lng += dLng

	return Position{Latitude: s.lat, Longitude: s.lng, Timestamp: s.now()}
}

// Watch 周期性输出位置直到 ctx 结束
func (s *SimulatedSource) Watch(ctx context.Context, interval time.Duration, fn func(Position)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(s.Next())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(s.Next())
		}
	}
}
