package bus

import (
	"sync"

	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/cyberax/somfy-sdn/internal/metrics"
	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// BackpressurePolicy controls what a Hub does when an observer's queue is
// full: either drop the new frame, or kick the slow observer entirely.
type BackpressurePolicy int

const (
	PolicyDrop BackpressurePolicy = iota
	PolicyKick
)

// Observer is a subscribed sniff listener. Frames are delivered on Out;
// Closed is closed once the observer has been removed or kicked.
type Observer struct {
	Out       chan sdn.Frame
	Closed    chan struct{}
	closeOnce sync.Once
}

// Close marks the observer closed. Idempotent.
func (o *Observer) Close() {
	o.closeOnce.Do(func() { close(o.Closed) })
}

// NewObserver creates an Observer with the given output buffer size.
func NewObserver(bufSize int) *Observer {
	return &Observer{Out: make(chan sdn.Frame, bufSize), Closed: make(chan struct{})}
}

// Hub fans frames sniffed off the bus out to any number of observers, e.g.
// a debug CLI or a home-automation bridge watching traffic in the
// background.
type Hub struct {
	mu        sync.RWMutex
	observers map[*Observer]struct{}
	Policy    BackpressurePolicy
}

// NewHub creates an empty Hub with the drop backpressure policy.
func NewHub() *Hub { return &Hub{observers: make(map[*Observer]struct{})} }

// Add registers an observer with the hub.
func (h *Hub) Add(o *Observer) {
	h.mu.Lock()
	h.observers[o] = struct{}{}
	n := len(h.observers)
	h.mu.Unlock()
	metrics.SetSniffObservers(n)
}

// Remove unregisters an observer; safe to call multiple times.
func (h *Hub) Remove(o *Observer) {
	h.mu.Lock()
	delete(h.observers, o)
	n := len(h.observers)
	h.mu.Unlock()
	o.Close()
	metrics.SetSniffObservers(n)
}

// Broadcast delivers f to every registered observer, honoring the
// backpressure policy for any observer whose queue is full.
func (h *Hub) Broadcast(f sdn.Frame) {
	h.mu.RLock()
	observers := make([]*Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		select {
		case o.Out <- f:
		default:
			metrics.IncSnifferDropped()
			if h.Policy == PolicyKick {
				logging.L().Warn("sniff_observer_kicked")
				o.Close()
			}
		}
	}
}

// Count returns the number of registered observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}
