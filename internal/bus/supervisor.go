package bus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cyberax/somfy-sdn/internal/channel"
	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/cyberax/somfy-sdn/internal/metrics"
	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// ChannelFactory creates a fresh, unopened Channel. Reconnecting calls it
// every time the current connection dies.
type ChannelFactory func() channel.Channel

// Reconnecting wraps an Exchanger, transparently rebuilding the channel and
// restarting the Exchanger whenever the connection drops, with exponential
// backoff between attempts.
type Reconnecting struct {
	factory ChannelFactory
	sniffer SniffFunc
	backoff *Backoff

	mu       sync.Mutex
	current  *Exchanger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewReconnecting creates a Reconnecting exchanger. backoff may be nil, in
// which case NewBackoff(0) (default max wait) is used.
func NewReconnecting(factory ChannelFactory, sniffer SniffFunc, backoff *Backoff) *Reconnecting {
	if backoff == nil {
		backoff = NewBackoff(0)
	}
	return &Reconnecting{
		factory: factory,
		sniffer: sniffer,
		backoff: backoff,
		stopCh:  make(chan struct{}),
	}
}

// Start opens the first connection and launches the reconnect supervisor.
func (r *Reconnecting) Start(ctx context.Context) error {
	ex := New(r.factory(), r.sniffer)
	if err := ex.Start(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	r.current = ex
	r.mu.Unlock()

	r.wg.Add(1)
	go r.reconnectLoop()
	return nil
}

// Stop tears down the current connection and stops the supervisor.
func (r *Reconnecting) Stop() error {
	var err error
	r.stopOnce.Do(func() {
		close(r.stopCh)
		r.mu.Lock()
		cur := r.current
		r.mu.Unlock()
		if cur != nil {
			err = cur.Stop()
		}
		r.wg.Wait()
	})
	return err
}

func (r *Reconnecting) reconnectLoop() {
	defer r.wg.Done()
	for {
		r.mu.Lock()
		cur := r.current
		r.mu.Unlock()

		select {
		case <-cur.Done():
		case <-r.stopCh:
			return
		}

		select {
		case <-r.stopCh:
			return
		default:
		}

		for {
			metrics.IncReconnectAttempt()
			wait := r.backoff.Next()
			select {
			case <-time.After(wait):
			case <-r.stopCh:
				return
			}

			ex := New(r.factory(), r.sniffer)
			if err := ex.Start(context.Background()); err != nil {
				metrics.IncError(metrics.ErrReconnect)
				logging.L().Warn("bus_reconnect_failed", "error", err)
				continue
			}
			r.backoff.Success()
			r.mu.Lock()
			r.current = ex
			r.mu.Unlock()
			break
		}
	}
}

// ErrNotConnected is returned by Exchange when no connection is currently
// established.
var ErrNotConnected = errors.New("bus: not connected")

// Exchange delegates to the current underlying Exchanger.
func (r *Reconnecting) Exchange(ctx context.Context, toSend *sdn.Frame, consumer func(sdn.Frame) bool) (bool, error) {
	r.mu.Lock()
	cur := r.current
	r.mu.Unlock()
	if cur == nil {
		return false, ErrNotConnected
	}
	return cur.Exchange(ctx, toSend, consumer)
}
