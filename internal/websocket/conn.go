package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512 KB
)

var errConnClosed = errors.New("connection closed")

// Conn adapts a gorilla websocket connection to the session's duplex
// channel contract. Inbound messages are delivered in order on a buffered
// channel; Disconnected is closed as soon as the read side observes the
// peer going away.
type Conn struct {
	conn     *websocket.Conn
	send     chan []byte
	inbound  chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{
		conn:    conn,
		send:    make(chan []byte, 256),
		inbound: make(chan []byte, 16),
		done:    make(chan struct{}),
	}
}

func (c *Conn) ReadPump() {
	defer func() {
		c.markDone()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		select {
		case c.inbound <- message:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				c.markDone()
				return
			}
			w.Write(message)

			// Drain queued messages into the same frame batch.
			n := len(c.send)
			for range n {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				c.markDone()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.markDone()
				return
			}

		case <-c.done:
			// Flush queued messages before the close frame: the final
			// report is queued immediately before teardown.
			for {
				select {
				case message := <-c.send:
					c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
						return
					}
				default:
					c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					c.conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
			}
		}
	}
}

// Send marshals v and queues it for the peer.
func (c *Conn) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return errConnClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return errConnClosed
	}
}

// Inbound yields raw inbound messages in arrival order.
func (c *Conn) Inbound() <-chan []byte {
	return c.inbound
}

// Disconnected is closed once the peer connection is gone.
func (c *Conn) Disconnected() <-chan struct{} {
	return c.done
}

// Close tears the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	c.markDone()
	return nil
}

func (c *Conn) markDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
