package handlers

import (
	"net/http"

	"concierge/services/realtime"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SocketHandler upgrades dashboard and guest connections into hub
// subscribers.
type SocketHandler struct {
	Hub    *realtime.Hub
	Logger *zap.Logger
}

// NewSocketHandler returns a SocketHandler for the given hub.
func NewSocketHandler(hub *realtime.Hub, logger *zap.Logger) *SocketHandler {
	return &SocketHandler{Hub: hub, Logger: logger}
}

// Dashboard handles GET /ws/dashboard. Staff subscribers receive every
// broadcast event.
func (h *SocketHandler) Dashboard(c *gin.Context) {
	h.serve(c, "")
}

// Guest handles GET /ws/guest?session=. Guest subscribers join their
// session's group and receive its proactive messages alongside broadcasts.
func (h *SocketHandler) Guest(c *gin.Context) {
	sessionID := c.Query("session")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session query parameter is required"})
		return
	}
	h.serve(c, sessionID)
}

func (h *SocketHandler) serve(c *gin.Context, sessionID string) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.Logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "session ended")

	client := h.Hub.Register(conn, sessionID)
	defer h.Hub.Unregister(client)

	// Inbound frames are ignored; the read loop only detects disconnects.
	for {
		if _, _, err := conn.Read(c.Request.Context()); err != nil {
			return
		}
	}
}
