package viewer

import (
	"sync"

	"github.com/Faultbox/orbitview/internal/scene"
)

// Request is a state change produced outside the frame and applied at the
// start of the next Tick.
type Request interface {
	request()
}

// PickRequest is a pointer click in viewport-local pixels of View.
type PickRequest struct {
	View View
	X, Y float32
}

// ResizeRequest is a new viewport size for View.
type ResizeRequest struct {
	View          View
	Width, Height int
}

// SceneRequest replaces the scene root shared by both views.
type SceneRequest struct {
	Root *scene.Node
}

func (PickRequest) request()   {}
func (ResizeRequest) request() {}
func (SceneRequest) request()  {}

// queue collects requests from event handlers and watcher goroutines.
// The frame drains it once per tick, in arrival order.
type queue struct {
	mu      sync.Mutex
	pending []Request
}

func (q *queue) push(r Request) {
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
}

func (q *queue) drain() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
