package bus

import "errors"

// ErrTimeout describes the communication timeout elapsing before the
// consumer signals it's done. Exchange does not return it: it reports a
// timeout as a false result with a nil error.
var ErrTimeout = errors.New("bus: communication timeout")

// ErrStopped describes an exchanger that has been stopped. No function in
// this package returns it: Exchange on a stopped exchanger returns the
// channel's own error (channel.ErrClosed for the bundled transports).
var ErrStopped = errors.New("bus: stopped")
