package motion

import (
	"context"
	"sync"
	"time"
)

// FrameHandle identifies a pending frame request. The zero handle is never
// issued.
type FrameHandle uint64

// FrameScheduler runs callbacks on upcoming frames.
//
// RequestFrame schedules cb to run once on the next frame. CancelFrame
// withdraws a request that has not run yet; cancelling a handle that already
// ran, or the zero handle, does nothing.
type FrameScheduler interface {
	RequestFrame(cb func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// --- FrameQueue ---

type frameRequest struct {
	handle FrameHandle
	cb     func()
}

// FrameQueue is a FrameScheduler whose frames are produced by calling Flush.
// It is the building block for schedulers driven by an outer loop (a game
// loop, a ticker, a test). Requests and cancellations may come from any
// goroutine; callbacks run on the goroutine calling Flush.
type FrameQueue struct {
	mu      sync.Mutex
	pending []frameRequest
	next    FrameHandle
}

// RequestFrame queues cb for the next Flush.
func (q *FrameQueue) RequestFrame(cb func()) FrameHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, cb: cb})
	return q.next
}

// CancelFrame removes a queued request.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.pending {
		if q.pending[i].handle == h {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = frameRequest{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
}

// Flush runs one frame: every callback requested before Flush was called, in
// request order. Callbacks requested during the flush wait for the next one,
// and requests cancelled during the flush are skipped. Returns the number of
// callbacks run.
func (q *FrameQueue) Flush() int {
	q.mu.Lock()
	limit := q.next
	q.mu.Unlock()

	ran := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 || q.pending[0].handle > limit {
			q.mu.Unlock()
			return ran
		}
		req := q.pending[0]
		copy(q.pending, q.pending[1:])
		q.pending[len(q.pending)-1] = frameRequest{}
		q.pending = q.pending[:len(q.pending)-1]
		q.mu.Unlock()

		req.cb()
		ran++
	}
}

// Pending returns the number of queued requests.
func (q *FrameQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// --- TickerScheduler ---

// DefaultFrameInterval is the fixed frame interval of TickerScheduler,
// roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// TickerScheduler is a fixed-rate FrameScheduler for programs without a
// vsync-aligned loop (servers, CLIs, tests against real time). Frames are
// produced by Run on the goroutine that calls it; that goroutine owns every
// Controller using the scheduler. Other goroutines hand work to it with Post.
type TickerScheduler struct {
	FrameQueue

	interval time.Duration
	postMu   sync.Mutex
	posted   []func()
	wake     chan struct{}
}

// NewTickerScheduler creates a scheduler producing a frame every interval.
// A non-positive interval means DefaultFrameInterval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// DefaultScheduler is used by controllers created without WithScheduler.
// It is not started automatically: frames are only produced while
// DefaultScheduler.Run is running, and that goroutine must own the
// controllers. Until then their frame requests stay queued.
var DefaultScheduler = NewTickerScheduler(DefaultFrameInterval)

// Interval returns the frame interval.
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Post queues fn to run on the Run goroutine before the next frame.
func (s *TickerScheduler) Post(fn func()) {
	s.postMu.Lock()
	s.posted = append(s.posted, fn)
	s.postMu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run produces frames until ctx is cancelled. It returns ctx.Err().
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			s.runPosted()
		case <-ticker.C:
			s.runPosted()
			s.Flush()
		}
	}
}

func (s *TickerScheduler) runPosted() {
	s.postMu.Lock()
	posted := s.posted
	s.posted = nil
	s.postMu.Unlock()
	for _, fn := range posted {
		fn()
	}
}
