package channel

import (
	"context"
	"fmt"
	"net"

	"github.com/cyberax/somfy-sdn/internal/logging"
)

// TCPChannel connects to an RS-485-over-IP bridge: a serial port exposed as
// a raw TCP socket by some other process on the network.
type TCPChannel struct {
	activityTracker

	addr string

	conn  net.Conn
	bytes chan byte
	errs  chan error
}

// NewTCPChannel creates a channel that will dial addr (host:port) on Open.
func NewTCPChannel(addr string) *TCPChannel {
	return &TCPChannel{addr: addr}
}

func (c *TCPChannel) Open(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("channel: dial %s: %w", c.addr, err)
	}
	c.conn = conn
	c.bytes = make(chan byte, 64)
	c.errs = make(chan error, 1)
	go c.readLoop()
	c.touch()
	return nil
}

func (c *TCPChannel) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.bytes <- buf[0]
		}
		if err != nil {
			c.errs <- err
			return
		}
	}
}

func (c *TCPChannel) Close() error {
	if c.markClosed() {
		return nil
	}
	if c.conn == nil {
		return nil
	}
	logging.L().Debug("channel_close", "addr", c.addr)
	return c.conn.Close()
}

func (c *TCPChannel) ReadByte(ctx context.Context) (byte, error) {
	if c.isClosed() {
		return 0, ErrClosed
	}
	select {
	case b := <-c.bytes:
		c.touch()
		return b, nil
	case err := <-c.errs:
		c.Close()
		return 0, fmt.Errorf("channel: read %s: %w", c.addr, err)
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (c *TCPChannel) WriteBytes(ctx context.Context, data []byte) error {
	if c.isClosed() {
		return ErrClosed
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer c.conn.SetWriteDeadline(noDeadline)
	}
	if _, err := c.conn.Write(data); err != nil {
		c.Close()
		return fmt.Errorf("channel: write %s: %w", c.addr, err)
	}
	c.touch()
	return nil
}
