package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cyberax/somfy-sdn/internal/sdn"
)

// fakeChannel is an in-memory channel.Channel for exercising the exchanger
// without a real socket or serial port.
type fakeChannel struct {
	mu           sync.Mutex
	in           chan byte
	writes       [][]byte
	lastActivity time.Time
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{in: make(chan byte, 4096), lastActivity: time.Now()}
}

func (f *fakeChannel) Open(ctx context.Context) error { return nil }
func (f *fakeChannel) Close() error                   { return nil }

func (f *fakeChannel) ReadByte(ctx context.Context) (byte, error) {
	select {
	case b := <-f.in:
		f.mu.Lock()
		f.lastActivity = time.Now()
		f.mu.Unlock()
		return b, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (f *fakeChannel) WriteBytes(ctx context.Context, data []byte) error {
	f.mu.Lock()
	f.writes = append(f.writes, append([]byte(nil), data...))
	f.lastActivity = time.Now()
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) LastActivity() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActivity
}

func (f *fakeChannel) feed(b []byte) {
	for _, x := range b {
		f.in <- x
	}
}

func TestExchangeRoundTrip(t *testing.T) {
	fc := newFakeChannel()
	ex := New(fc, nil)
	if err := ex.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer ex.Stop()

	addr := sdn.Address{A: 0x13, B: 0x3D, C: 0xC6}
	reply := sdn.NewFrame(sdn.ACK, sdn.Type50ACSeries, addr, sdn.TypeAll, sdn.Master, false, nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		fc.feed(reply.Serialize())
	}()

	query := sdn.NewFrame(sdn.CtrlStop, sdn.TypeAll, sdn.Master, sdn.Type50ACSeries, addr, true, []byte{0})

	var got sdn.Frame
	var found bool
	ok, err := ex.Exchange(context.Background(), &query, func(f sdn.Frame) bool {
		if f.FromAddr == addr && f.MsgID == sdn.ACK {
			got, found = f, true
			return false
		}
		return true
	})
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if !ok {
		t.Fatal("Exchange reported timeout")
	}
	if !found {
		t.Fatal("consumer never saw the ACK reply")
	}
	if got.FromAddr != addr {
		t.Fatalf("got from_addr %s, want %s", got.FromAddr, addr)
	}

	fc.mu.Lock()
	nWrites := len(fc.writes)
	fc.mu.Unlock()
	if nWrites != 1 {
		t.Fatalf("got %d writes, want 1", nWrites)
	}
}

func TestDrainSniffsBackgroundTraffic(t *testing.T) {
	fc := newFakeChannel()

	sniffed := make(chan sdn.Frame, 4)
	ex := New(fc, func(f sdn.Frame) { sniffed <- f })
	if err := ex.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer ex.Stop()

	noise := sdn.NewFrame(sdn.GetMotorStatus, sdn.TypeAll, sdn.Master, sdn.TypeAll, sdn.Broadcast, false, nil)
	fc.feed(noise.Serialize())

	select {
	case f := <-sniffed:
		if f.MsgID != sdn.GetMotorStatus {
			t.Fatalf("got msg id %s, want %s", f.MsgID, sdn.GetMotorStatus)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sniffed frame")
	}
}
