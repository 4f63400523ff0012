package game

import (
	"sync"
	"testing"
)

// TestEventQueueDrainOrder 事件按投递顺序执行
func TestEventQueueDrainOrder(t *testing.T) {
	q := NewEventQueue()
	var got []int
	for i := 0; i < 3; i++ {
		q.Post(func() { got = append(got, i) })
	}
	if n := q.Drain(); n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Errorf("got[%d] = %d", i, v)
		}
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after Drain")
	}
}

// TestEventQueueNestedPost 事件中投递的事件留到下一次 Drain
func TestEventQueueNestedPost(t *testing.T) {
	q := NewEventQueue()
	inner := false
	q.Post(func() { q.Post(func() { inner = true }) })

	q.Drain()
	if inner {
		t.Fatal("nested event must not run in the same Drain")
	}
	q.Drain()
	if !inner {
		t.Fatal("nested event should run on the next Drain")
	}
}

// TestEventQueueClosed 关闭后不再执行任何事件
func TestEventQueueClosed(t *testing.T) {
	q := NewEventQueue()
	ran := false
	q.Post(func() { ran = true })
	q.Close()

	if q.Post(func() { ran = true }) {
		t.Error("Post after Close should return false")
	}
	if n := q.Drain(); n != 0 || ran {
		t.Errorf("Drain after Close ran %d events (ran=%v)", n, ran)
	}
}

// TestEventQueueConcurrentPost 并发投递不丢事件
func TestEventQueueConcurrentPost(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() {})
		}()
	}
	wg.Wait()
	if n := q.Drain(); n != 50 {
		t.Errorf("Drain() = %d, want 50", n)
	}
}
