package handlers

import (
	"context"
	"net/http"

	"medivision/internal/chat"
	"medivision/internal/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The SPA runs on another origin in development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatHandlers exposes the websocket endpoint and chat history
type ChatHandlers struct {
	hub *chat.Hub
}

func NewChatHandlers(hub *chat.Hub) *ChatHandlers {
	return &ChatHandlers{hub: hub}
}

type inboundMessage struct {
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

// ServeWS upgrades the connection, registers it with the hub and runs the
// read loop. The deferred Unregister fires exactly once per connection, no
// matter how the loop exits.
func (h *ChatHandlers) ServeWS(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username is required")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	conn := chat.NewWSConn(ws)
	ctx := c.Request().Context()

	h.hub.Register(ctx, username, conn)
	defer func() {
		// The request context may already be canceled by the disconnect
		h.hub.Unregister(context.Background(), username, conn)
		conn.Close()
	}()

	for {
		var in inboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user", username).Msg("websocket closed unexpectedly")
			}
			return nil
		}
		if in.Receiver == "" || in.Message == "" {
			continue
		}
		if _, err := h.hub.Send(ctx, username, in.Receiver, in.Message); err != nil {
			log.Error().Err(err).Str("sender", username).Msg("failed to persist chat message")
		}
	}
}

// History returns the conversation between the path users, oldest first, and
// marks incoming messages as read for the viewer.
func (h *ChatHandlers) History(c echo.Context) error {
	viewer := c.Param("viewer")
	other := c.Param("other")
	if viewer == "" || other == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Both usernames are required")
	}

	messages, err := h.hub.History(c.Request().Context(), viewer, other)
	if err != nil {
		return httpError(err, "Failed to load chat history")
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Online lists the usernames with a live connection.
func (h *ChatHandlers) Online(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"online": h.hub.Online()})
}
