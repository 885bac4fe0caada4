package spectate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// client is one connected spectator.
type client struct {
	conn     *websocket.Conn
	frames   chan []byte
	done     chan struct{}
	doneOnce sync.Once
	drops    atomic.Int64
}

func newClient(conn *websocket.Conn, buffer int) *client {
	return &client{
		conn:   conn,
		frames: make(chan []byte, buffer),
		done:   make(chan struct{}),
	}
}

// send queues a frame without blocking. If the buffer is full the oldest
// frame is dropped to make room.
func (c *client) send(frame []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.frames <- frame:
		return
	default:
	}

	select {
	case <-c.frames:
		c.drops.Add(1)
	default:
	}
	select {
	case c.frames <- frame:
	default:
		c.drops.Add(1)
	}
}

func (c *client) dropped() int64 {
	return c.drops.Load()
}

// close ends the session. Safe to call multiple times.
func (c *client) close() {
	c.doneOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writeLoop drains queued frames to the connection and keeps it alive with
// pings.
func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.frames:
			//nolint:errcheck // A failed deadline surfaces on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readLoop discards client messages and returns when the connection closes.
// Spectators are read-only.
func (c *client) readLoop() {
	c.conn.SetReadLimit(512)
	//nolint:errcheck // A failed deadline surfaces on the read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
