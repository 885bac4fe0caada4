package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server runs the hub on an HTTP listener.
type Server struct {
	hub      *Hub
	srv      *http.Server
	listener net.Listener
}

// Listen binds addr for the hub. The server is not serving until Serve.
func Listen(hub *Hub, addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: cannot listen on %s: %w", addr, err)
	}
	return &Server{
		hub:      hub,
		listener: ln,
		srv: &http.Server{
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Addr returns the bound address, useful when addr asked for port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until ctx is cancelled or the listener fails, then closes
// every spectator.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()
	s.hub.logger.Info("spectator feed listening", "address", "ws://"+s.Addr()+"/ws")

	select {
	case <-ctx.Done():
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	}
}
