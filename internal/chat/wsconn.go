package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSConn wraps a gorilla connection with a write mutex. Gorilla allows only
// one concurrent writer, and hub broadcasts race with per-message delivery.
type WSConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWSConn(conn *websocket.Conn) *WSConn {
	return &WSConn{conn: conn}
}

func (c *WSConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *WSConn) Close() error {
	return c.conn.Close()
}

// ReadJSON blocks until the next client frame arrives.
func (c *WSConn) ReadJSON(v interface{}) error {
	return c.conn.ReadJSON(v)
}
