package main

import (
	"context"
	"net"
	"sync"

	"github.com/cyberax/somfy-sdn/internal/bus"
	"github.com/cyberax/somfy-sdn/internal/logging"
	"github.com/google/uuid"
)

// sniffServer accepts plain-text TCP connections and streams every sniffed
// frame's String() form to each one, line-delimited, until the client
// disconnects or is kicked for falling behind.
type sniffServer struct {
	hub *bus.Hub
	ln  net.Listener
	wg  sync.WaitGroup
}

func newSniffServer(hub *bus.Hub) *sniffServer {
	return &sniffServer{hub: hub}
}

func (s *sniffServer) Start(ctx context.Context, addr, policy string, bufSize int) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.ln = ln

	if policy == "kick" {
		s.hub.Policy = bus.PolicyKick
	} else {
		s.hub.Policy = bus.PolicyDrop
	}

	s.wg.Add(1)
	go s.acceptLoop(ctx, bufSize)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	return ln.Addr(), nil
}

func (s *sniffServer) acceptLoop(ctx context.Context, bufSize int) {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				logging.L().Warn("sniff_accept_error", "error", err)
				return
			}
		}
		s.wg.Add(1)
		go s.serve(conn, bufSize)
	}
}

func (s *sniffServer) serve(conn net.Conn, bufSize int) {
	defer s.wg.Done()
	defer conn.Close()

	obs := bus.NewObserver(bufSize)
	s.hub.Add(obs)
	defer s.hub.Remove(obs)

	sessionID := uuid.NewString()
	logging.L().Info("sniff_client_connected", "remote", conn.RemoteAddr(), "session", sessionID)
	defer logging.L().Info("sniff_client_disconnected", "remote", conn.RemoteAddr(), "session", sessionID)

	for {
		select {
		case f, ok := <-obs.Out:
			if !ok {
				return
			}
			if _, err := conn.Write([]byte(f.String() + "\n")); err != nil {
				return
			}
		case <-obs.Closed:
			return
		}
	}
}

func (s *sniffServer) Wait() { s.wg.Wait() }
