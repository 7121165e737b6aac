package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"InkSynth/internal/state"

	"github.com/gorilla/websocket"
)

// FeedPath is where a feed serves websocket viewers.
const FeedPath = "/feed"

const writeTimeout = 2 * time.Second

// Feed message types.
const (
	TypeShape = "shape"
	TypeUndo  = "undo"
	TypeRedo  = "redo"
)

// FeedMessage is one event broadcast to viewers.
type FeedMessage struct {
	Type  string             `json:"type"`
	Site  string             `json:"site"`
	Shape *state.ShapeRecord `json:"shape,omitempty"`
}

// sendQueue is how many messages a viewer may fall behind before it is
// dropped.
const sendQueue = 64

// viewer is one websocket connection with its own writer goroutine, so a
// slow viewer never holds up the publisher.
type viewer struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (v *viewer) stop() bool {
	stopped := false
	v.once.Do(func() {
		close(v.done)
		v.conn.Close()
		stopped = true
	})
	return stopped
}

// Feed relays recognized shapes to every connected websocket viewer.
type Feed struct {
	upgrader websocket.Upgrader
	viewers  map[*websocket.Conn]*viewer
	mu       sync.RWMutex
	server   *http.Server
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		viewers: make(map[*websocket.Conn]*viewer),
	}
}

// Add registers a viewer connection and starts its writer.
func (f *Feed) Add(conn *websocket.Conn) {
	v := &viewer{
		conn: conn,
		send: make(chan []byte, sendQueue),
		done: make(chan struct{}),
	}
	f.mu.Lock()
	f.viewers[conn] = v
	f.mu.Unlock()
	go f.writeLoop(v)
	log.Printf("[FEED] Viewer connected from %s", conn.RemoteAddr())
}

// Remove forgets a viewer and closes its connection.
func (f *Feed) Remove(conn *websocket.Conn) {
	f.mu.Lock()
	v, ok := f.viewers[conn]
	delete(f.viewers, conn)
	f.mu.Unlock()
	if ok && v.stop() {
		log.Printf("[FEED] Viewer %s disconnected", conn.RemoteAddr())
	}
}

func (f *Feed) Viewers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.viewers)
}

func (f *Feed) writeLoop(v *viewer) {
	for {
		select {
		case data := <-v.send:
			v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[FEED] Error sending to %s: %v", v.conn.RemoteAddr(), err)
				f.Remove(v.conn)
				return
			}
		case <-v.done:
			return
		}
	}
}

// Broadcast queues data for all viewers without waiting for any write.
// A viewer whose queue is full is dropped.
func (f *Feed) Broadcast(data []byte) {
	f.mu.RLock()
	var slow []*websocket.Conn
	for conn, v := range f.viewers {
		select {
		case v.send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	f.mu.RUnlock()

	for _, conn := range slow {
		log.Printf("[FEED] Dropping slow viewer %s", conn.RemoteAddr())
		f.Remove(conn)
	}
}

// Publish broadcasts an event of the given type. rec may be nil.
func (f *Feed) Publish(kind string, rec *state.ShapeRecord) error {
	data, err := json.Marshal(FeedMessage{Type: kind, Site: state.SiteID(), Shape: rec})
	if err != nil {
		return fmt.Errorf("encode %s message: %w", kind, err)
	}
	f.Broadcast(data)
	return nil
}

// ServeHTTP upgrades the request and keeps the viewer until it goes away.
// Anything a viewer sends is discarded.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FEED] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	f.Add(conn)
	defer f.Remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Start listens on addr and serves the feed in the background. It returns
// the port actually bound, which differs from addr when addr ends in ":0".
func (f *Feed) Start(addr string) (int, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(FeedPath, f)
	f.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := f.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[FEED] Server stopped: %v", err)
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	log.Printf("[FEED] Listening on port %d", port)
	return port, nil
}

// Close stops the server, if started, and disconnects every viewer.
func (f *Feed) Close() error {
	var err error
	if f.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err = f.server.Shutdown(ctx)
	}

	f.mu.Lock()
	viewers := f.viewers
	f.viewers = make(map[*websocket.Conn]*viewer)
	f.mu.Unlock()
	for _, v := range viewers {
		v.stop()
	}
	return err
}
