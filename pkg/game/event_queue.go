package game

import "sync"

// EventQueue 把后台 goroutine 的结果交回游戏主循环
//
// 权限请求、存储订阅回调、位置监听都在各自的 goroutine 中完成，
// 它们只能 Post 闭包；闭包在主循环调用 Drain 时依次执行，
// 因此所有状态修改都发生在 Update 内。
// Close 之后 Post 的事件直接丢弃。
type EventQueue struct {
	mu     sync.Mutex
	events []func()
	closed bool
}

// NewEventQueue 创建事件队列
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Post 投递一个事件（可在任意 goroutine 调用）
// 返回 false 表示队列已关闭、事件被丢弃
func (q *EventQueue) Post(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.events = append(q.events, fn)
	return true
}

// Drain 执行所有已投递的事件，返回执行数量
// 事件中再次 Post 的事件留到下一次 Drain
func (q *EventQueue) Drain() int {
	q.mu.Lock()
	if q.closed {
		q.events = nil
		q.mu.Unlock()
		return 0
	}
	events := q.events
	q.events = nil
	q.mu.Unlock()

	for _, fn := range events {
		fn()
	}
	return len(events)
}

// Close 关闭队列并丢弃尚未执行的事件
func (q *EventQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.events = nil
	q.mu.Unlock()
}

// Len 返回待执行的事件数量
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
