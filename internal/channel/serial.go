package channel

import (
	"context"
	"fmt"
	"os"

	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/tarm/serial"
	"golang.org/x/sys/unix"
)

// SDN runs at 4800 baud, 8 data bits, odd parity, 1 stop bit (SDN
// integration guide, serial transport section).
const (
	sdnBaudRate = 4800
	sdnParity   = serial.ParityOdd
)

// serialPort is the subset of tarm/serial's *Port this package depends on,
// narrowed for testability.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// SerialChannel talks to the SDN bus over a local RS-485 serial adapter.
type SerialChannel struct {
	activityTracker

	device string

	port  serialPort
	bytes chan byte
	errs  chan error
}

// NewSerialChannel creates a channel that will open device (e.g.
// "/dev/ttyUSB0") on Open.
func NewSerialChannel(device string) *SerialChannel {
	return &SerialChannel{device: device}
}

func (c *SerialChannel) Open(ctx context.Context) error {
	if c.port != nil {
		return nil
	}
	cfg := &serial.Config{Name: c.device, Baud: sdnBaudRate, Parity: sdnParity, Size: 8, StopBits: serial.Stop1}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return fmt.Errorf("channel: open %s: %w", c.device, err)
	}
	if err := exclusiveLock(c.device); err != nil {
		logging.L().Warn("channel_exclusive_lock_failed", "device", c.device, "error", err)
	}
	c.port = port
	c.bytes = make(chan byte, 64)
	c.errs = make(chan error, 1)
	go c.readLoop()
	c.touch()
	return nil
}

// exclusiveLock asks the kernel to refuse any other open() of device while
// we hold it, via TIOCEXCL. Best-effort: a failure here (e.g. on a platform
// or device that doesn't support it) is logged, not fatal, since it's a
// safety net against a second process stealing the bus, not a correctness
// requirement of the protocol itself.
func exclusiveLock(device string) error {
	f, err := os.OpenFile(device, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return unix.IoctlSetInt(int(f.Fd()), unix.TIOCEXCL, 0)
}

func (c *SerialChannel) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := c.port.Read(buf)
		if n > 0 {
			c.bytes <- buf[0]
		}
		if err != nil {
			c.errs <- err
			return
		}
	}
}

func (c *SerialChannel) Close() error {
	if c.markClosed() {
		return nil
	}
	if c.port == nil {
		return nil
	}
	logging.L().Debug("channel_close", "device", c.device)
	return c.port.Close()
}

func (c *SerialChannel) ReadByte(ctx context.Context) (byte, error) {
	if c.isClosed() {
		return 0, ErrClosed
	}
	select {
	case b := <-c.bytes:
		c.touch()
		return b, nil
	case err := <-c.errs:
		c.Close()
		return 0, fmt.Errorf("channel: read %s: %w", c.device, err)
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (c *SerialChannel) WriteBytes(ctx context.Context, data []byte) error {
	if c.isClosed() {
		return ErrClosed
	}
	if _, err := c.port.Write(data); err != nil {
		c.Close()
		return fmt.Errorf("channel: write %s: %w", c.device, err)
	}
	c.touch()
	return nil
}
