package channel

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTCPChannelRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	serverDone := make(chan struct{})
	var serverConn net.Conn
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		serverConn = conn
		buf := make([]byte, 3)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		conn.Write([]byte{0xAA, 0xBB})
	}()

	c := NewTCPChannel(ln.Addr().String())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if err := c.WriteBytes(ctx, []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	<-serverDone
	if serverConn == nil {
		t.Fatal("server never accepted connection")
	}

	b1, err := c.ReadByte(ctx)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b1 != 0xAA {
		t.Fatalf("got %#x, want 0xAA", b1)
	}
	b2, err := c.ReadByte(ctx)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if b2 != 0xBB {
		t.Fatalf("got %#x, want 0xBB", b2)
	}

	if c.LastActivity().IsZero() {
		t.Fatal("expected LastActivity to be set")
	}
}

func TestTCPChannelReadAfterClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	c := NewTCPChannel(ln.Addr().String())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := c.ReadByte(ctx); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
