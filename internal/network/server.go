package network

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/logger"
)

// Server runs a Feed on its own goroutine. A listener failure stops the
// server and is reported once through Poll.
type Server struct {
	Feed *Feed

	cancel  context.CancelFunc
	errs    chan error
	running bool
	log     *zap.Logger
}

// StartServer starts serving a new feed on addr.
func StartServer(addr string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		Feed:    NewFeed(),
		cancel:  cancel,
		errs:    make(chan error, 1),
		running: true,
		log:     logger.Named("feed"),
	}
	go func() {
		s.errs <- s.Feed.ListenAndServe(ctx, addr)
	}()
	return s
}

// Poll reports whether the feed is still serving. When the feed has
// stopped on its own, the first Poll after that returns its error.
func (s *Server) Poll() (bool, error) {
	if !s.running {
		return false, nil
	}
	select {
	case err := <-s.errs:
		s.running = false
		s.cancel()
		s.Feed.Close()
		return false, err
	default:
		return true, nil
	}
}

// Stop shuts the feed down and waits for it to exit.
func (s *Server) Stop() error {
	if !s.running {
		return nil
	}
	s.running = false
	s.cancel()
	err := <-s.errs
	s.log.Debug("snapshot feed stopped")
	return err
}
