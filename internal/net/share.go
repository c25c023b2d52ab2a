// Package net shares a drawing session over the LAN: the host serves a
// websocket endpoint and advertises it via mDNS, peers join with a
// snowfold:// link. Remote strokes always arrive finalized.
package net

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"Snowfold/internal/state"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// Local network peers only; the join link is the access control.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub is run by the host: it accepts peers, replays the current state to
// each newcomer and relays every op to all other peers.
type Hub struct {
	mu    sync.RWMutex
	peers map[*websocket.Conn]*sync.Mutex

	// OnOp applies a peer's op to the local session; returns whether the
	// drawing changed.
	OnOp func(state.Op) bool
	// Snapshot builds the sync op sent to a newly joined peer.
	Snapshot func() state.Op
}

func NewHub() *Hub {
	return &Hub{peers: make(map[*websocket.Conn]*sync.Mutex)}
}

// ListenAndServe blocks serving the websocket endpoint. Run it on its own
// goroutine; a listen failure at startup is fatal for hosting.
func (h *Hub) ListenAndServe(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	addr := fmt.Sprintf(":%d", port)
	log.Printf("[share] host listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[share] upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	log.Printf("[share] peer connected from %s", conn.RemoteAddr())

	wmu := &sync.Mutex{}
	h.mu.Lock()
	h.peers[conn] = wmu
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.peers, conn)
		h.mu.Unlock()
		conn.Close()
		log.Printf("[share] peer %s disconnected", conn.RemoteAddr())
	}()

	if h.Snapshot != nil {
		wmu.Lock()
		err := conn.WriteJSON(h.Snapshot())
		wmu.Unlock()
		if err != nil {
			log.Printf("[share] sync to %s failed: %v", conn.RemoteAddr(), err)
			return
		}
	}

	for {
		var op state.Op
		if err := conn.ReadJSON(&op); err != nil {
			return
		}
		if h.OnOp != nil {
			h.OnOp(op)
		}
		h.Broadcast(op, conn)
	}
}

// Broadcast sends an op to every peer except the one it came from (nil for
// locally generated ops).
func (h *Hub) Broadcast(op state.Op, except *websocket.Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, wmu := range h.peers {
		if conn == except {
			continue
		}
		wmu.Lock()
		err := conn.WriteJSON(op)
		wmu.Unlock()
		if err != nil {
			log.Printf("[share] send to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Client is a joined peer's connection to the host.
type Client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// Join dials the host and starts a reader that hands every incoming op to
// onOp. addr is host:port from the share link.
func Join(addr string, onOp func(state.Op)) (*Client, error) {
	url := fmt.Sprintf("ws://%s/ws", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Printf("[share] joined host at %s", addr)

	c := &Client{conn: conn}
	go func() {
		for {
			var op state.Op
			if err := conn.ReadJSON(&op); err != nil {
				log.Printf("[share] host connection lost: %v", err)
				return
			}
			if onOp != nil {
				onOp(op)
			}
		}
	}()
	return c, nil
}

// Send forwards a locally generated op to the host.
func (c *Client) Send(op state.Op) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteJSON(op)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
