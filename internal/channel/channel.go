// Package channel provides the byte-level transports a Somfy SDN bus
// connection runs over: a bare TCP socket (typically an RS-485-over-IP
// bridge) or a local serial port wired directly to the bus.
package channel

import (
	"context"
	"errors"
	"sync"
	"time"
)

// noDeadline clears a previously set read/write deadline on a net.Conn.
var noDeadline time.Time

// ErrClosed is returned by ReadByte/WriteBytes once the channel has been
// closed, either explicitly or because a prior I/O error tore it down.
var ErrClosed = errors.New("channel: closed")

// Channel is a single-byte-oriented connection to the SDN bus. Exactly one
// reader and one writer may use it at a time; callers serialize access with
// their own locks (see internal/bus).
type Channel interface {
	// Open establishes the underlying connection. Calling Open on an
	// already-open channel is a no-op.
	Open(ctx context.Context) error
	// Close tears down the connection. Safe to call multiple times.
	Close() error
	// ReadByte reads the next byte off the wire, blocking until one
	// arrives, the channel is closed, or ctx is done.
	ReadByte(ctx context.Context) (byte, error)
	// WriteBytes writes data to the wire.
	WriteBytes(ctx context.Context, data []byte) error
	// LastActivity is the time of the most recent successful read or
	// write, or of Open if neither has happened yet.
	LastActivity() time.Time
}

// activityTracker is embedded by Channel implementations to provide
// LastActivity bookkeeping and a closed flag under one lock.
type activityTracker struct {
	mu       sync.Mutex
	lastTime time.Time
	closed   bool
}

func (a *activityTracker) touch() {
	a.mu.Lock()
	a.lastTime = time.Now()
	a.mu.Unlock()
}

func (a *activityTracker) LastActivity() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTime
}

func (a *activityTracker) markClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	was := a.closed
	a.closed = true
	return was
}

func (a *activityTracker) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
