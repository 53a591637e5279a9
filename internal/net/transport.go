package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"MisPaint/internal/state"

	"github.com/gorilla/websocket"
)

const (
	// Path is where the hub accepts viewers.
	Path = "/ws"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// queueSize bounds the ops waiting for one viewer. A viewer that falls
	// this far behind is disconnected and has to rejoin.
	queueSize = 256
)

// peer is one connected viewer.
type peer struct {
	conn *websocket.Conn
	addr string
	send chan state.Op
	done chan struct{}
	once sync.Once
}

func (p *peer) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// Hub is run by the HOST. It streams the document to every connected
// viewer: a snapshot on join, then each op passed to Broadcast.
type Hub struct {
	snapshot func() state.Op
	do       func(func())
	upgrader websocket.Upgrader

	peers map[*peer]struct{}
	mu    sync.RWMutex

	// OnPeers, if set, is called with the viewer count whenever it changes.
	// It runs on a connection goroutine.
	OnPeers func(n int)
}

// NewHub returns a hub that takes document snapshots with snapshot. do must
// run its argument on the goroutine that owns the document and wait for it
// to finish; Broadcast must be called from that same goroutine.
func NewHub(snapshot func() state.Op, do func(func())) *Hub {
	return &Hub{
		snapshot: snapshot,
		do:       do,
		peers:    make(map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request to a websocket and serves one viewer until
// it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HOST] Upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{
		conn: conn,
		addr: conn.RemoteAddr().String(),
		send: make(chan state.Op, queueSize),
		done: make(chan struct{}),
	}

	// The snapshot and the registration happen together on the document
	// goroutine, so the viewer sees every op that follows the snapshot.
	h.do(func() {
		p.send <- h.snapshot()
		h.add(p)
	})

	go h.writeLoop(p)
	h.readLoop(p)
}

// Broadcast queues op for every viewer. It never blocks: viewers whose
// queue is full are disconnected.
func (h *Hub) Broadcast(op state.Op) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		select {
		case p.send <- op:
		default:
			log.Printf("[HOST] Viewer %s is too slow, dropping it", p.addr)
			p.close()
		}
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		p.close()
	}
}

// Start listens on port and serves viewers in the background until ctx is
// done. Listen errors are returned immediately.
func (h *Hub) Start(ctx context.Context, port int) (*http.Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		log.Printf("[HOST] Listening for viewers on port %d", port)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[HOST] Server stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	return srv, nil
}

func (h *Hub) add(p *peer) {
	h.mu.Lock()
	h.peers[p] = struct{}{}
	n := len(h.peers)
	h.mu.Unlock()
	log.Printf("[HOST] Viewer connected from %s", p.addr)
	h.notify(n)
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	n := len(h.peers)
	h.mu.Unlock()
	if ok {
		log.Printf("[HOST] Viewer %s disconnected", p.addr)
		h.notify(n)
	}
}

func (h *Hub) notify(n int) {
	if h.OnPeers != nil {
		h.OnPeers(n)
	}
}

// readLoop discards whatever the viewer sends; viewers are read-only. It
// returns once the connection fails or is closed.
func (h *Hub) readLoop(p *peer) {
	defer func() {
		h.remove(p)
		p.close()
	}()
	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.close()
	}()
	for {
		select {
		case op := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(op); err != nil {
				log.Printf("[HOST] Error sending to %s: %v", p.addr, err)
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-p.done:
			return
		}
	}
}
