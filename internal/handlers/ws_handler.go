package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"

	"github.com/SAP-F-2025/collaboration-service/internal/auth"
	"github.com/SAP-F-2025/collaboration-service/internal/models"
	"github.com/SAP-F-2025/collaboration-service/internal/realtime"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

// clientFrame is what a connected client may send: explicit room membership
// changes. The personal room is joined implicitly at connect.
type clientFrame struct {
	Action string `json:"action"` // "join" | "leave"
	Room   struct {
		Kind string `json:"kind"` // "cohort" | "team"
		ID   string `json:"id"`
	} `json:"room"`
}

type WSHandler struct {
	BaseHandler
	tokens   *auth.TokenManager
	registry *realtime.Registry
}

func NewWSHandler(tokens *auth.TokenManager, registry *realtime.Registry, logger utils.Logger) *WSHandler {
	return &WSHandler{
		BaseHandler: NewBaseHandler(logger),
		tokens:      tokens,
		registry:    registry,
	}
}

// Handle upgrades the connection. The token rides the query string because
// browser WebSocket clients cannot set an Authorization header.
func (h *WSHandler) Handle(c *gin.Context) {
	identity, err := h.tokens.Verify(c.Query("token"))
	if err != nil {
		h.logger.Warn("websocket auth failed",
			"remote_addr", c.ClientIP(),
			"error", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "invalid token",
		})
		return
	}

	server := websocket.Server{
		// Skip origin verification; CORS policy is enforced at the edge.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			h.serve(conn, identity)
		},
	}
	server.ServeHTTP(c.Writer, c.Request)
}

// serve owns one connection: identify, apply membership frames, clean up.
func (h *WSHandler) serve(conn *websocket.Conn, identity *auth.Identity) {
	session := realtime.NewWSSession(conn, identity.UserID)

	h.registry.Identify(session, identity.UserID)
	defer h.registry.Leave(session)

	h.logger.Info("websocket connected",
		"user_id", identity.UserID,
		"session_id", session.ID())

	for {
		var frame clientFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			if !errors.Is(err, io.EOF) {
				h.logger.Debug("websocket closed",
					"session_id", session.ID(),
					"error", err)
			}
			return
		}

		room, ok := roomFromFrame(frame)
		if !ok {
			continue
		}

		switch frame.Action {
		case "join":
			h.registry.Join(session, room)
		case "leave":
			h.registry.LeaveRoom(session, room)
		}
	}
}

// roomFromFrame validates a membership frame against the addressing rules.
// Personal rooms are never joinable by frame; only Identify grants them.
func roomFromFrame(frame clientFrame) (realtime.RoomKey, bool) {
	addr := models.Address{
		Kind: models.AddressKind(frame.Room.Kind),
		ID:   frame.Room.ID,
	}
	if !addr.Valid() || addr.Kind == models.AddressDirect {
		return "", false
	}
	return realtime.RoomKey(addr.RoomKey()), true
}
