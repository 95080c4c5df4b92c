package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 64
)

// Client represents a single WebSocket connection.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	userID   uuid.UUID
	userName string

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, userName string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		userID:   userID,
		userName: userName,
		send:     make(chan []byte, sendBufSize),
		done:     make(chan struct{}),
	}
}

// close signals the write pump to stop. Safe to call more than once; the
// hub calls it when a reconnect replaces this client.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// trySend queues data without blocking. A full buffer drops the payload:
// delivery is best effort.
func (c *Client) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadPump reads events from the WebSocket and routes them to the Hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Infof("ws: client %s disconnected", c.userID)
			} else {
				log.WithError(err).Warnf("ws: read error from %s", c.userID)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes queued payloads to the WebSocket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message := <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.WithError(err).Warnf("ws: write error to %s", c.userID)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes an incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeUserOnline:
		c.hub.BroadcastStatus(c.userID, "online")

	case EventTypeTypingStart, EventTypeTypingStop:
		var p TypingRequestPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.RecipientID == uuid.Nil {
			c.sendError("INVALID_PAYLOAD", "typing events require recipient_id")
			return
		}
		c.hub.RelayTyping(c, p.RecipientID, event.Type == EventTypeTypingStart)

	case EventTypePing:
		data, _ := json.Marshal(Event{Type: EventTypePong})
		c.trySend(data)

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	c.trySend(data)
}
