package net

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"MisPaint/internal/state"

	"github.com/gorilla/websocket"
)

// LinkScheme prefixes the share links a host hands out.
const LinkScheme = "mispaint://"

// Link returns the share link for a host reachable at ip:port.
func Link(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, ip, port)
}

// ParseLink accepts a share link or a bare host:port and returns host:port.
func ParseLink(link string) (string, error) {
	addr := strings.TrimPrefix(strings.TrimSpace(link), LinkScheme)
	addr = strings.TrimSuffix(addr, "/")
	if addr == "" || !strings.Contains(addr, ":") {
		return "", fmt.Errorf("bad share link %q: want %shost:port", link, LinkScheme)
	}
	return addr, nil
}

// Client is a VIEWER connection to a hub.
type Client struct {
	conn   *websocket.Conn
	addr   string
	closed atomic.Bool
}

// Dial connects to the hub at addr, a share link or host:port.
func Dial(ctx context.Context, addr string) (*Client, error) {
	hostport, err := ParseLink(addr)
	if err != nil {
		return nil, err
	}
	url := "ws://" + hostport + Path
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", hostport, err)
	}
	log.Printf("[VIEW] Connected to host %s as %s", hostport, conn.LocalAddr())
	return &Client{conn: conn, addr: hostport}, nil
}

// Addr returns the host:port the client is connected to.
func (c *Client) Addr() string {
	return c.addr
}

// Run reads ops until the connection ends and hands each one to apply, in
// order, on the calling goroutine. The first op is always a snapshot. Run
// returns nil when the host hangs up cleanly or Close is called.
func (c *Client) Run(apply func(op state.Op)) error {
	for {
		var op state.Op
		if err := c.conn.ReadJSON(&op); err != nil {
			if c.closed.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("disconnected from host: %w", err)
		}
		apply(op)
	}
}

// Close ends the connection, making Run return.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return c.conn.Close()
}
