// Package bus implements the SDN bus-arbitration layer on top of a
// channel.Channel: a background drainer sniffs traffic and keeps the
// connection's read buffer from filling up, while foreground Exchange calls
// borrow the channel just long enough to send a command and collect replies.
package bus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cyberax/somfy-sdn/internal/channel"
	"github.com/cyberax/somfy-sdn/internal/metrics"
	"github.com/cyberax/somfy-sdn/internal/recognizer"
	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// CommTimeout is the deadline a foreground Exchange has to complete. The SDN
// integration guide defines a 280ms reply timeout; we give ourselves
// comfortable headroom.
const CommTimeout = 1 * time.Second

// BusQuietTime is how long the MASTER node must let the bus sit idle before
// it is allowed to transmit (SDN integration guide, page 9).
const BusQuietTime = 25 * time.Millisecond

// SniffFunc receives every frame the background drainer recognizes while no
// foreground exchange is in progress.
type SniffFunc func(sdn.Frame)

// event is a re-settable, broadcast-to-all-waiters signal, matching the
// semantics of asyncio.Event: Set() wakes every current and future Wait()
// until Clear() is called.
type event struct {
	mu sync.Mutex
	ch chan struct{}
}

func newEvent() *event { return &event{ch: make(chan struct{})} }

func (e *event) Set() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.ch:
	default:
		close(e.ch)
	}
}

func (e *event) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.ch:
		e.ch = make(chan struct{})
	default:
	}
}

func (e *event) Wait() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ch
}

// Exchanger owns a single channel.Channel and arbitrates access to it
// between a background sniffing drainer and foreground Exchange calls.
type Exchanger struct {
	ch channel.Channel

	readerLock sync.Mutex
	writerLock sync.Mutex
	needToTalk *event

	sniffer SniffFunc

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}

	drainerErrMu sync.Mutex
	drainerErr   error
}

// New creates an Exchanger over ch. sniffer, if non-nil, is invoked for
// every frame the background drainer recognizes.
func New(ch channel.Channel, sniffer SniffFunc) *Exchanger {
	return &Exchanger{
		ch:         ch,
		needToTalk: newEvent(),
		sniffer:    sniffer,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start opens the channel and launches the background drainer.
func (e *Exchanger) Start(ctx context.Context) error {
	if err := e.ch.Open(ctx); err != nil {
		return err
	}
	go e.drainLoop()
	return nil
}

// Stop closes the channel and waits for the drainer to exit.
func (e *Exchanger) Stop() error {
	var err error
	e.stopOnce.Do(func() {
		close(e.stopCh)
		err = e.ch.Close()
		<-e.doneCh
	})
	return err
}

// Done returns a channel that is closed when the drainer has exited, whether
// because Stop was called or because of an unrecoverable channel error.
// DrainErr reports which.
func (e *Exchanger) Done() <-chan struct{} { return e.doneCh }

// DrainErr returns the error that ended the drainer loop, if any. Nil means
// a clean Stop.
func (e *Exchanger) DrainErr() error {
	e.drainerErrMu.Lock()
	defer e.drainerErrMu.Unlock()
	return e.drainerErr
}

func (e *Exchanger) setDrainErr(err error) {
	e.drainerErrMu.Lock()
	e.drainerErr = err
	e.drainerErrMu.Unlock()
}

// drainLoop runs for the lifetime of the exchanger, repeatedly handing the
// reader lock to attemptDrain.
func (e *Exchanger) drainLoop() {
	defer close(e.doneCh)
	rec := recognizer.New()
	for {
		select {
		case <-e.stopCh:
			return
		default:
		}
		if err := e.attemptDrain(rec); err != nil {
			e.setDrainErr(err)
			return
		}
	}
}

// attemptDrain holds the reader lock and reads bytes off the channel,
// feeding the sniffer, until BusQuietTime has elapsed since the channel's
// last activity AND a foreground Exchange has signaled it wants to talk. At
// that point it releases the lock so Exchange can proceed.
func (e *Exchanger) attemptDrain(rec *recognizer.Recognizer) error {
	e.readerLock.Lock()
	defer e.readerLock.Unlock()

	for {
		quietSoFar := time.Since(e.ch.LastActivity())
		canRelinquish := quietSoFar >= BusQuietTime

		var readCtx context.Context
		var cancel context.CancelFunc
		if canRelinquish {
			readCtx, cancel = context.WithCancel(context.Background())
		} else {
			readCtx, cancel = context.WithTimeout(context.Background(), BusQuietTime-quietSoFar)
		}

		type readResult struct {
			b   byte
			err error
		}
		resCh := make(chan readResult, 1)
		go func() {
			b, err := e.ch.ReadByte(readCtx)
			resCh <- readResult{b, err}
		}()

		var needToTalkCh <-chan struct{}
		if canRelinquish {
			needToTalkCh = e.needToTalk.Wait()
		}

		select {
		case <-needToTalkCh:
			cancel()
			return nil
		case res := <-resCh:
			cancel()
			if res.err != nil {
				if errors.Is(res.err, context.DeadlineExceeded) || errors.Is(res.err, context.Canceled) {
					continue
				}
				if e.stopRequested() {
					return nil
				}
				metrics.IncError(metrics.ErrChannelRead)
				return res.err
			}
			if e.sniffer != nil {
				if f, ok := rec.AddByte(res.b); ok {
					e.sniffer(f)
				}
			}
		}
	}
}

func (e *Exchanger) stopRequested() bool {
	select {
	case <-e.stopCh:
		return true
	default:
		return false
	}
}

// Exchange writes toSend (if non-nil) and then reads bytes, feeding them to
// a fresh recognizer and invoking consumer for every decoded frame, until
// consumer returns false or CommTimeout elapses. If consumer is nil,
// Exchange returns immediately after writing (fire-and-forget). The boolean
// result is false if the timeout was hit before consumer signaled done.
func (e *Exchanger) Exchange(ctx context.Context, toSend *sdn.Frame, consumer func(sdn.Frame) bool) (bool, error) {
	metrics.IncExchangeStarted()
	e.writerLock.Lock()
	defer e.writerLock.Unlock()

	e.needToTalk.Set()
	defer e.needToTalk.Clear()

	e.readerLock.Lock()
	defer e.readerLock.Unlock()

	timeoutCtx, cancel := context.WithTimeout(ctx, CommTimeout)
	defer cancel()

	ok, err := e.doExchange(timeoutCtx, toSend, consumer)
	if errors.Is(err, context.DeadlineExceeded) {
		metrics.IncExchangeTimedOut()
		return false, nil
	}
	return ok, err
}

func (e *Exchanger) doExchange(ctx context.Context, toSend *sdn.Frame, consumer func(sdn.Frame) bool) (bool, error) {
	if toSend != nil {
		if time.Since(e.ch.LastActivity()) < BusQuietTime {
			metrics.IncBusQuietViolation()
		}
		if err := e.ch.WriteBytes(ctx, toSend.Serialize()); err != nil {
			metrics.IncError(metrics.ErrChannelWrite)
			return false, err
		}
		metrics.IncFramesSent()
	}

	if consumer == nil {
		return true, nil
	}

	rec := recognizer.New()
	for {
		b, err := e.ch.ReadByte(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return false, err
			}
			metrics.IncError(metrics.ErrChannelRead)
			return false, err
		}
		frame, ok := rec.AddByte(b)
		if !ok {
			continue
		}
		if !consumer(frame) {
			return true, nil
		}
	}
}
