package counter

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Scheduler runs f once after delay d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// Loop is a single-threaded event loop. Callbacks registered with AfterFunc run one at a
// time on the goroutine that calls Run, ordered by due time and then by registration
// order, so callbacks never race with each other.
type Loop struct {
	mu    sync.Mutex
	queue taskQueue
	seq   uint64
	wake  chan struct{}
	now   func() time.Time
}

// NewLoop returns an empty loop.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		now:  time.Now,
	}
}

// AfterFunc schedules f to run on the loop after d. It is safe for concurrent use.
func (l *Loop) AfterFunc(d time.Duration, f func()) {
	l.mu.Lock()
	l.seq++
	heap.Push(&l.queue, &task{due: l.now().Add(d), seq: l.seq, fn: f})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of callbacks waiting to run.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// Run executes callbacks until none is pending and returns nil. When ctx is done first,
// pending callbacks are dropped and ctx.Err() is returned.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			l.drop()
			return err
		}

		l.mu.Lock()
		if l.queue.Len() == 0 {
			l.mu.Unlock()
			return nil
		}

		next := l.queue[0]
		wait := next.due.Sub(l.now())
		if wait <= 0 {
			heap.Pop(&l.queue)
			l.mu.Unlock()
			next.fn()
			continue
		}
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-l.wake:
			// Something earlier may have been scheduled.
			timer.Stop()
		case <-timer.C:
		}
	}
}

func (l *Loop) drop() {
	l.mu.Lock()
	l.queue = nil
	l.mu.Unlock()
}

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
