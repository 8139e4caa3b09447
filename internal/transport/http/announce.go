package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"connect-four-server/internal/domain"
)

// Broadcaster pushes one message to every connected client. The websocket
// ConnectionManager implements it.
type Broadcaster interface {
	Broadcast(message domain.ServerMessage)
}

type AnnounceHandler struct {
	conns Broadcaster
}

func NewAnnounceHandler(conns Broadcaster) *AnnounceHandler {
	return &AnnounceHandler{conns: conns}
}

// Announce sends a server-wide notice to every connected client, delivered
// as a chat message from "server".
func (h *AnnounceHandler) Announce(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	h.conns.Broadcast(domain.ServerMessage{
		Type:   domain.MsgChat,
		Sender: "server",
		Text:   req.Text,
	})
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
