// Package network serves the read-only snapshot feed that external HUD
// clients subscribe to over websocket.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/logger"
)

const (
	// sendBuffer is how many messages may queue per client before new ones
	// are dropped for it.
	sendBuffer   = 8
	writeTimeout = 2 * time.Second
	pingInterval = 15 * time.Second
)

// Envelope wraps every message sent on the feed.
type Envelope struct {
	Type  string `json:"type"`
	Frame uint64 `json:"frame"`
	Data  any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed fans published messages out to every connected websocket client.
// Publish is called from the frame loop; each client is served by its own
// goroutines.
type Feed struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	closed  bool
}

// NewFeed creates a feed with no clients.
func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger.Named("feed"),
		clients: make(map[*client]struct{}),
	}
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Publish encodes an envelope and queues it for every client. Slow clients
// miss messages rather than stall the caller. The last message is replayed
// to clients that connect later.
func (f *Feed) Publish(kind string, frame uint64, data any) error {
	msg, err := json.Marshal(Envelope{Type: kind, Frame: frame, Data: data})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kind, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.latest = msg
	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
			f.log.Debug("dropping message for slow client", zap.String("remote", c.conn.RemoteAddr().String()))
		}
	}
	return nil
}

// ServeHTTP upgrades the request and subscribes the connection.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		conn.Close()
		return
	}
	if f.latest != nil {
		c.send <- f.latest
	}
	f.clients[c] = struct{}{}
	n := len(f.clients)
	f.mu.Unlock()

	f.log.Info("feed client connected", zap.String("remote", conn.RemoteAddr().String()), zap.Int("clients", n))

	go f.writeLoop(c)
	f.readLoop(c)
}

// readLoop discards inbound messages and unsubscribes on close.
func (f *Feed) readLoop(c *client) {
	defer f.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.log.Debug("feed client read failed", zap.Error(err))
			}
			return
		}
	}
}

func (f *Feed) writeLoop(c *client) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.conn.Close()
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}

func (f *Feed) drop(c *client) {
	f.mu.Lock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.send)
	}
	f.mu.Unlock()
	c.conn.Close()
}

// Close disconnects every client. Later publishes are ignored.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}

// ListenAndServe serves the feed at addr until ctx is cancelled.
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return f.Serve(ctx, ln)
}

// Serve serves the feed on ln until ctx is cancelled.
func (f *Feed) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/feed", f)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		f.Close()
		_ = srv.Shutdown(shutdown)
	}()

	f.log.Info("snapshot feed listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving feed: %w", err)
	}
	return nil
}
