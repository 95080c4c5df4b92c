package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/InMostCalmness-Rahul/skillswap/internal/domain"
)

// Hub is the connection registry: it maps each authenticated user to their
// single active client and routes pushes to them. A second connection from
// the same user replaces the first; there is no multi-device fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
	}
}

// Register records the client as the user's active connection, closing any
// previous one, and announces presence to everyone else.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.userID]; ok {
		old.close()
	}
	h.clients[client.userID] = client
	total := len(h.clients)
	h.mu.Unlock()

	log.Infof("ws hub: user %s connected (%d total)", client.userID, total)
	h.BroadcastStatus(client.userID, "online")
}

// Unregister clears the mapping, but only if it still points at this
// client: a replaced connection must not knock out its successor.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.userID]
	if ok && current == client {
		delete(h.clients, client.userID)
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.close()
	if ok && current == client {
		log.Infof("ws hub: user %s disconnected (%d total)", client.userID, total)
		h.BroadcastStatus(client.userID, "offline")
	}
}

// Notify delivers a notification to the user's connection if there is one.
// It reports whether the payload was handed to a live connection; offline
// recipients simply miss it, nothing is queued.
func (h *Hub) Notify(userID uuid.UUID, n *domain.Notification) bool {
	evt, err := NewEvent(EventTypeNotification, n)
	if err != nil {
		log.WithError(err).Error("ws hub: marshal notification")
		return false
	}
	return h.sendToUser(userID, evt)
}

// NotifyMany applies Notify to each recipient independently; partial
// delivery is expected and not an error.
func (h *Hub) NotifyMany(userIDs []uuid.UUID, n *domain.Notification) {
	for _, id := range userIDs {
		h.Notify(id, n)
	}
}

// Online reports whether the user currently has a registered connection.
func (h *Hub) Online(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// BroadcastStatus announces a presence change to all other connections.
func (h *Hub) BroadcastStatus(userID uuid.UUID, status string) {
	evt, err := NewEvent(EventTypeStatusUpdate, StatusUpdatePayload{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.userID == userID {
			continue
		}
		client.trySend(data)
	}
}

// RelayTyping forwards a typing indicator from the sender to one recipient.
func (h *Hub) RelayTyping(sender *Client, recipientID uuid.UUID, start bool) {
	eventType := EventTypeStoppedTyping
	payload := TypingPayload{UserID: sender.userID}
	if start {
		eventType = EventTypeTyping
		payload.UserName = sender.userName
	}

	evt, err := NewEvent(eventType, payload)
	if err != nil {
		return
	}
	h.sendToUser(recipientID, evt)
}

func (h *Hub) sendToUser(userID uuid.UUID, evt *Event) bool {
	data, err := json.Marshal(evt)
	if err != nil {
		return false
	}

	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return client.trySend(data)
}
