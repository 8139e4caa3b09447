package websocket

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"connect-four-server/internal/domain"
	"connect-four-server/internal/service/game"
	"connect-four-server/internal/service/matchmaking"
)

const (
	readTimeout  = 10 * time.Minute
	pingInterval = 30 * time.Second
)

// Handler owns the per-connection message pump and its dependencies.
type Handler struct {
	ConnManager *ConnectionManager
	Matchmaking *matchmaking.Queue
	Sessions    *game.SessionManager
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, mq *matchmaking.Queue, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Matchmaking: mq,
		Sessions:    sm,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// HandleWebSocket upgrades the HTTP request and runs the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages one client for its whole life: the login gate,
// the message loop, and the exactly-once cleanup.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Keep-alive pinger; exits when the socket dies.
	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	username, ok := h.authenticate(conn)
	if !ok {
		conn.Close()
		return
	}

	// The cleanup sequence must run exactly once, whichever path triggers
	// it: read error, explicit disconnect message, or server shutdown
	// closing the socket under us.
	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(func() {
			log.Printf("[WS] Connection closed for %s", username)
			h.ConnManager.Release(username)
			h.Matchmaking.Dequeue(username)
			if session, exists := h.Sessions.GetByUsername(username); exists {
				session.HandleDisconnect(username)
			}
			conn.Close()
		})
	}
	defer cleanup()

	for {
		var msg domain.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] %s disconnected unexpectedly: %v", username, err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.Type == domain.MsgDisconnect {
			log.Printf("[WS] %s requested disconnect: %s", username, msg.Reason)
			return
		}

		h.dispatch(username, msg)
	}
}

// authenticate runs the login gate: the only message accepted before a
// claim succeeds is a login attempt. A rejected username keeps the
// connection open so the client can retry with another name; any other
// message type closes the connection with a protocol error.
func (h *Handler) authenticate(conn *websocket.Conn) (string, bool) {
	for {
		var msg domain.ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[WS] Read error during login: %v", err)
			return "", false
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.Type != domain.MsgLogin {
			log.Printf("[WS] Protocol error: %q before login", msg.Type)
			conn.WriteJSON(domain.ServerMessage{
				Type:   domain.MsgDisconnect,
				Reason: "login required",
			})
			return "", false
		}

		username := strings.TrimSpace(msg.Username)
		if username == "" || utf8.RuneCountInString(username) > domain.MaxUsernameLen {
			conn.WriteJSON(domain.ServerMessage{
				Type:  domain.MsgLoginResponse,
				Error: "Username must be between 1 and 20 characters",
			})
			continue
		}

		if !h.ConnManager.Claim(username, conn) {
			log.Printf("[WS] Login failed - username already in use: %s", username)
			conn.WriteJSON(domain.ServerMessage{
				Type:  domain.MsgLoginResponse,
				Error: "Username already in use",
			})
			continue
		}

		log.Printf("[WS] User logged in: %s", username)
		conn.WriteJSON(domain.ServerMessage{
			Type:    domain.MsgLoginResponse,
			Success: true,
		})

		h.Matchmaking.Enqueue(username)
		return username, true
	}
}

// dispatch routes one authenticated message. A panic inside a handler is
// downgraded to a logged error; one bad message must never take down the
// connection, let alone the process.
func (h *Handler) dispatch(username string, msg domain.ClientMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WS] Panic handling %q from %s: %v", msg.Type, username, r)
		}
	}()

	switch msg.Type {
	case domain.MsgMove:
		session, exists := h.Sessions.GetByUsername(username)
		if !exists {
			log.Printf("[WS] Move from %s but not in a game", username)
			return
		}
		if err := session.HandleMove(username, msg.Column); err != nil {
			log.Printf("[WS] Move error for %s: %v", username, err)
		}

	case domain.MsgChat:
		session, exists := h.Sessions.GetByUsername(username)
		if !exists {
			log.Printf("[WS] Chat from %s but not in a game", username)
			return
		}
		session.HandleChat(username, msg.Text)

	case domain.MsgPlayAgain:
		session, exists := h.Sessions.GetByUsername(username)
		if !exists {
			// No session left to vote in. A yes means the player wants
			// another opponent, so they go back to matchmaking.
			if msg.WantsRematch {
				h.Matchmaking.Enqueue(username)
			}
			return
		}
		if err := session.HandleRematchVote(username, msg.WantsRematch); err != nil {
			log.Printf("[WS] Rematch vote error for %s: %v", username, err)
		}

	case domain.MsgReturnToLobby:
		session, exists := h.Sessions.GetByUsername(username)
		if !exists {
			h.Matchmaking.Enqueue(username)
			return
		}
		session.HandleReturnToLobby(username)

	case domain.MsgCancelMatchmaking:
		h.Matchmaking.Dequeue(username)

	case domain.MsgLogin:
		// Already logged in; ignore.
		log.Printf("[WS] Duplicate login from %s ignored", username)

	default:
		log.Printf("[WS] Unhandled message type %q from %s", msg.Type, username)
		h.ConnManager.Send(username, domain.ServerMessage{
			Type:    domain.MsgError,
			Message: "unknown message type: " + msg.Type,
		})
	}
}
