package chat

import (
	"context"
	"sync"

	"medivision/internal/models"
	"medivision/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Connection is one live client the hub can push JSON payloads to.
type Connection interface {
	WriteJSON(v interface{}) error
	Close() error
}

// StatusPayload announces a presence change to every connected client.
type StatusPayload struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// MessagePayload delivers one chat message to its receiver.
type MessagePayload struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Hub tracks at most one live connection per username and fans presence
// changes out to all of them. Registry state lives only for the process
// lifetime; messages are persisted before any delivery attempt.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]Connection

	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
}

func NewHub(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) *Hub {
	return &Hub{
		connections: make(map[string]Connection),
		chatRepo:    chatRepo,
		userRepo:    userRepo,
	}
}

// Register adds the connection, replacing any previous one for the same
// username, marks the user active and broadcasts "online".
func (h *Hub) Register(ctx context.Context, username string, conn Connection) {
	h.mu.Lock()
	h.connections[username] = conn
	h.mu.Unlock()

	if err := h.userRepo.SetActive(ctx, username, true); err != nil {
		log.Warn().Err(err).Str("user", username).Msg("failed to mark user active")
	}
	h.broadcast(StatusPayload{Type: "status_update", Username: username, Status: "online"})
}

// Unregister removes the connection if it is still the registered one for the
// username, marks the user inactive and broadcasts "offline". Calling it with
// a connection that was already replaced leaves the newer registration alone.
func (h *Hub) Unregister(ctx context.Context, username string, conn Connection) {
	h.mu.Lock()
	current, ok := h.connections[username]
	if ok && current == conn {
		delete(h.connections, username)
	}
	h.mu.Unlock()
	if !ok || current != conn {
		return
	}

	if err := h.userRepo.SetActive(ctx, username, false); err != nil {
		log.Warn().Err(err).Str("user", username).Msg("failed to mark user inactive")
	}
	h.broadcast(StatusPayload{Type: "status_update", Username: username, Status: "offline"})
}

// broadcast pushes the payload to every live connection. A failing recipient
// is logged and skipped; it never aborts the fan-out.
func (h *Hub) broadcast(payload StatusPayload) {
	h.mu.RLock()
	targets := make(map[string]Connection, len(h.connections))
	for username, conn := range h.connections {
		targets[username] = conn
	}
	h.mu.RUnlock()

	for username, conn := range targets {
		if err := conn.WriteJSON(payload); err != nil {
			log.Debug().Err(err).Str("user", username).Msg("presence broadcast dropped")
		}
	}
}

// Send persists the message first, then attempts delivery to the receiver's
// live connection. Delivery failure or an offline receiver is not an error;
// the message waits in history.
func (h *Hub) Send(ctx context.Context, sender, receiver, body string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{Sender: sender, Receiver: receiver, Message: body}
	if err := h.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	h.mu.RLock()
	conn, online := h.connections[receiver]
	h.mu.RUnlock()
	if online {
		payload := MessagePayload{
			Type:      "chat_message",
			Sender:    sender,
			Message:   body,
			Timestamp: msg.Timestamp.Format("2006-01-02T15:04:05"),
		}
		if err := conn.WriteJSON(payload); err != nil {
			log.Debug().Err(err).Str("receiver", receiver).Msg("live delivery failed, message persisted")
		}
	}
	return msg, nil
}

// History returns the full two-way conversation in timestamp order and marks
// every message from other to viewer as read.
func (h *Hub) History(ctx context.Context, viewer, other string) ([]*models.ChatMessage, error) {
	messages, err := h.chatRepo.Conversation(ctx, viewer, other)
	if err != nil {
		return nil, err
	}
	if err := h.chatRepo.MarkRead(ctx, other, viewer); err != nil {
		return nil, err
	}
	return messages, nil
}

// Online reports the usernames with a live connection.
func (h *Hub) Online() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]string, 0, len(h.connections))
	for username := range h.connections {
		users = append(users, username)
	}
	return users
}

// IsOnline reports whether the username has a live connection.
func (h *Hub) IsOnline(username string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[username]
	return ok
}
