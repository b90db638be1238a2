// Package stream broadcasts simulation frames to websocket viewers.
//
// Frames are msgpack-encoded once per broadcast and queued on each viewer's
// buffered channel. A slow viewer loses frames instead of stalling the tick
// that published them.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/status"
)

// Registry keys written by the stream server
const (
	MetricClients = "stream.clients"
	MetricFrames  = "stream.frames"
	MetricDropped = "stream.dropped"
)

type client struct {
	id   uint64
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Server fans frames out to connected viewers
type Server struct {
	upgrader websocket.Upgrader
	interval time.Duration
	reg      *status.Registry

	mu       sync.Mutex
	clients  map[uint64]*client
	nextID   uint64
	lastSent time.Time
	closed   bool
	wg       sync.WaitGroup

	statClients *atomic.Int64
	statFrames  *atomic.Int64
	statDropped *atomic.Int64
}

// NewServer creates a server publishing at most once per interval
// A zero interval publishes every frame; a nil registry gets a private one
func NewServer(reg *status.Registry, interval time.Duration) *Server {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // viewers are read-only
			},
		},
		interval:    max(0, interval),
		reg:         reg,
		clients:     make(map[uint64]*client),
		statClients: reg.Ints.Get(MetricClients),
		statFrames:  reg.Ints.Get(MetricFrames),
		statDropped: reg.Ints.Get(MetricDropped),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(parameter.StreamPath, s.serveWS)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("stream listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.StreamWriteWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("stream shutdown: %w", err)
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("stream: upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.nextID++
	c := &client{
		id:   s.nextID,
		conn: conn,
		send: make(chan []byte, parameter.StreamSendBuffer),
		done: make(chan struct{}),
	}
	s.clients[c.id] = c
	s.statClients.Store(int64(len(s.clients)))
	s.wg.Add(1)
	s.mu.Unlock()

	log.Printf("stream: viewer %d connected from %s", c.id, r.RemoteAddr)

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop drains viewer input so pongs and close frames are processed
func (s *Server) readLoop(c *client) {
	defer s.drop(c)

	c.conn.SetReadLimit(parameter.StreamReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(parameter.StreamPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(parameter.StreamPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("stream: viewer %d read: %v", c.id, err)
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer s.wg.Done()
	defer c.close()

	ticker := time.NewTicker(parameter.StreamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				log.Printf("stream: viewer %d write: %v", c.id, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("stream: viewer %d ping failed: %v", c.id, err)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		s.statClients.Store(int64(len(s.clients)))
		log.Printf("stream: viewer %d disconnected", c.id)
	}
	s.mu.Unlock()
	c.close()
}

// Publish encodes f and queues it for every viewer without blocking
// Safe to call from Simulation.OnFrame
func (s *Server) Publish(f engine.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(s.clients) == 0 {
		return
	}
	now := time.Now()
	if s.interval > 0 && !s.lastSent.IsZero() && now.Sub(s.lastSent) < s.interval {
		return
	}

	data, err := EncodeFrame(f, s.reg.Snapshot())
	if err != nil {
		log.Printf("stream: %v", err)
		return
	}
	s.lastSent = now
	s.statFrames.Add(1)

	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.statDropped.Add(1)
		}
	}
}

// Clients returns the number of connected viewers
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every viewer and rejects new ones
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	s.wg.Wait()
}
