// Package store 按共享码保存最新位置，并向订阅方推送变化
package store

import (
	"context"
	"errors"
)

// ErrNotFound 共享码下还没有任何位置
var ErrNotFound = errors.New("location not found")

// LocationRecord 某个共享码最近一次上报的位置
// Timestamp 为 Unix 毫秒
type LocationRecord struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// Subscription 订阅句柄
// Unsubscribe 可重复调用；返回后不再有新的回调
type Subscription interface {
	Unsubscribe()
}

// Store 位置存储
//
// Subscribe 的回调会立即收到当前值（不存在时为 nil），之后每次 Put 都会再收到一次。
// 回调可能在任意 goroutine 中执行，调用方需要自行切回主循环。
type Store interface {
	Put(ctx context.Context, code string, rec LocationRecord) error
	Get(ctx context.Context, code string) (LocationRecord, error)
	Subscribe(ctx context.Context, code string, fn func(*LocationRecord)) (Subscription, error)
}
