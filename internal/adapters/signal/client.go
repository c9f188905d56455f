package signal

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/huddlekit/huddle/internal/core"
)

const maxMessageSize = 64 * 1024

var ErrBackpressure = errors.New("backpressure")

// Client owns one websocket connection to the relay for the lifetime of
// one room session. It implements core.Signaler; incoming events are
// delivered to the handler from the read loop, one at a time.
type Client struct {
	serverURL  string
	pingPeriod time.Duration
	writeWait  time.Duration

	conn    *websocket.Conn
	handler core.SignalEvents

	outgoing   chan message
	done       chan struct{}
	writerDone chan struct{}

	mu       sync.Mutex
	closed   bool
	notifyFn sync.Once
}

func NewClient(serverURL string, pingPeriod, writeWait time.Duration) *Client {
	return &Client{
		serverURL:  serverURL,
		pingPeriod: pingPeriod,
		writeWait:  writeWait,
		outgoing:   make(chan message, 32),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
}

// SetHandler wires the event consumer. Must be set before Connect.
func (c *Client) SetHandler(h core.SignalEvents) { c.handler = h }

// Connect dials the relay and starts the read and write pumps.
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("parse server url: %w", err)
	}

	log.Info().Str("module", "signal").Str("url", u.String()).Msg("connecting to relay")

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	c.conn = conn
	c.conn.SetReadLimit(maxMessageSize)

	go c.readPump()
	go c.writePump()

	return nil
}

// Close shuts the connection down. Frames queued before Close, such as
// leave-room, are flushed by the write pump before the socket goes away.
// Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	if c.conn != nil {
		select {
		case <-c.writerDone:
		case <-time.After(c.writeWait):
		}
		_ = c.conn.Close()
	}
	c.notifyClosed(nil)
	log.Info().Str("module", "signal").Msg("relay connection closed")
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// trySend queues a message without blocking. A full queue means the relay
// stopped draining; the message is dropped and logged.
func (c *Client) trySend(msg message) {
	if c.isClosed() {
		return
	}
	select {
	case c.outgoing <- msg:
	default:
		log.Error().Err(ErrBackpressure).Str("module", "signal").Str("type", msg.Type).Msg("outgoing queue full, dropped")
	}
}

func (c *Client) readPump() {
	defer c.Close()

	for {
		select {
		case <-c.done:
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !c.isClosed() {
				log.Error().Err(err).Str("module", "signal").Msg("read error")
				c.notifyClosed(err)
			}
			return
		}
		c.dispatch(data)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer ticker.Stop()
	defer close(c.writerDone)

	for {
		select {
		case <-c.done:
			c.flushOutgoing()
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.outgoing:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("set write deadline")
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("type", msg.Type).Msg("write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("ping error")
				return
			}
		}
	}
}

// flushOutgoing drains whatever was queued before shutdown so the relay
// still sees it, leave-room in particular.
func (c *Client) flushOutgoing() {
	for {
		select {
		case msg := <-c.outgoing:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("type", msg.Type).Msg("flush write error")
				return
			}
		default:
			return
		}
	}
}

func (c *Client) notifyClosed(err error) {
	c.notifyFn.Do(func() {
		if c.handler != nil {
			c.handler.OnSignalClosed(err)
		}
	})
}
