package bus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cyberax/somfy-sdn/internal/metrics"
	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// SnifferDispatch funnels frames sniffed by an Exchanger's drain loop through
// a single background goroutine before they reach a Hub. The drain loop
// calls Dispatch from inside attemptDrain, holding the reader lock; Dispatch
// must never block on a slow observer, so it enqueues non-blockingly and
// drops (counting the drop) if the internal buffer is full.
type SnifferDispatch struct {
	mu     sync.Mutex
	ch     chan sdn.Frame
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewSnifferDispatch starts the dispatcher, delivering every frame it
// receives to hub.Broadcast on its own goroutine.
func NewSnifferDispatch(parent context.Context, buf int, hub *Hub) *SnifferDispatch {
	ctx, cancel := context.WithCancel(parent)
	d := &SnifferDispatch{
		ch:     make(chan sdn.Frame, buf),
		ctx:    ctx,
		cancel: cancel,
	}
	d.wg.Add(1)
	go d.loop(hub)
	return d
}

func (d *SnifferDispatch) loop(hub *Hub) {
	defer d.wg.Done()
	for {
		select {
		case f, ok := <-d.ch:
			if !ok {
				return
			}
			hub.Broadcast(f)
		case <-d.ctx.Done():
			return
		}
	}
}

// Dispatch is the SniffFunc passed to bus.New: it enqueues f for delivery
// without blocking, dropping it (and counting the drop) if the buffer is
// already full.
func (d *SnifferDispatch) Dispatch(f sdn.Frame) {
	if d.closed.Load() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return
	}
	select {
	case d.ch <- f:
	default:
		metrics.IncSnifferDropped()
	}
}

// Close stops the dispatch goroutine and waits for it to exit.
func (d *SnifferDispatch) Close() {
	if d.closed.Swap(true) {
		return
	}
	d.cancel()
	d.mu.Lock()
	close(d.ch)
	d.mu.Unlock()
	d.wg.Wait()
}
