package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connect-four-server/internal/domain"
	"connect-four-server/internal/service/game"
	"connect-four-server/internal/service/matchmaking"
)

// testServer wires the real handler, queue and session manager behind an
// httptest server, with the pairing worker ticking fast.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cm := NewConnectionManager()
	queue := matchmaking.NewQueue()
	sessions := game.NewSessionManager(cm, queue, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go queue.Run(ctx, 5*time.Millisecond, cm, sessions)

	handler := NewHandler(cm, queue, sessions, nil)
	router := gin.New()
	router.GET("/ws", handler.HandleWebSocket)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg domain.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func writeMsg(t *testing.T, conn *websocket.Conn, msg domain.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func login(t *testing.T, conn *websocket.Conn, username string) {
	t.Helper()
	writeMsg(t, conn, domain.ClientMessage{Type: domain.MsgLogin, Username: username})
	msg := readMsg(t, conn)
	require.Equal(t, domain.MsgLoginResponse, msg.Type)
	require.True(t, msg.Success, "login for %s failed: %s", username, msg.Error)
}

// loginPair logs in two players and waits for their match to start.
// Returns the connections with red first.
func loginPair(t *testing.T, srv *httptest.Server, name1, name2 string) (red, yellow *websocket.Conn) {
	t.Helper()

	conn1 := dialServer(t, srv)
	conn2 := dialServer(t, srv)
	login(t, conn1, name1)
	login(t, conn2, name2)

	start1 := readMsg(t, conn1)
	require.Equal(t, domain.MsgGameStart, start1.Type)
	start2 := readMsg(t, conn2)
	require.Equal(t, domain.MsgGameStart, start2.Type)

	if start1.YourColor == domain.ColorRed {
		return conn1, conn2
	}
	return conn2, conn1
}

func TestNonLoginMessageBeforeLoginClosesConnection(t *testing.T) {
	srv := newTestServer(t)
	conn := dialServer(t, srv)

	writeMsg(t, conn, domain.ClientMessage{Type: domain.MsgMove, Column: 3})

	msg := readMsg(t, conn)
	assert.Equal(t, domain.MsgDisconnect, msg.Type)
	assert.Equal(t, "login required", msg.Reason)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var dropped domain.ServerMessage
	assert.Error(t, conn.ReadJSON(&dropped), "connection should be closed")
}

func TestLoginValidationAllowsRetry(t *testing.T) {
	srv := newTestServer(t)
	conn := dialServer(t, srv)

	// Blank and oversized usernames are rejected without dropping the
	// connection.
	writeMsg(t, conn, domain.ClientMessage{Type: domain.MsgLogin, Username: "   "})
	msg := readMsg(t, conn)
	require.Equal(t, domain.MsgLoginResponse, msg.Type)
	assert.False(t, msg.Success)
	assert.NotEmpty(t, msg.Error)

	writeMsg(t, conn, domain.ClientMessage{Type: domain.MsgLogin, Username: strings.Repeat("x", domain.MaxUsernameLen+1)})
	msg = readMsg(t, conn)
	assert.False(t, msg.Success)

	login(t, conn, "alice")
}

func TestUsernameLengthCountsRunes(t *testing.T) {
	srv := newTestServer(t)

	// 20 two-byte runes is a valid name even though it is 40 bytes.
	conn := dialServer(t, srv)
	login(t, conn, strings.Repeat("é", domain.MaxUsernameLen))

	// One rune over the bound is rejected.
	conn2 := dialServer(t, srv)
	writeMsg(t, conn2, domain.ClientMessage{Type: domain.MsgLogin, Username: strings.Repeat("é", domain.MaxUsernameLen+1)})
	msg := readMsg(t, conn2)
	require.Equal(t, domain.MsgLoginResponse, msg.Type)
	assert.False(t, msg.Success)
	assert.NotEmpty(t, msg.Error)
}

func TestUnknownMessageTypeGetsErrorFrame(t *testing.T) {
	srv := newTestServer(t)
	conn := dialServer(t, srv)
	login(t, conn, "alice")

	writeMsg(t, conn, domain.ClientMessage{Type: "flip_board"})

	msg := readMsg(t, conn)
	require.Equal(t, domain.MsgError, msg.Type)
	assert.Contains(t, msg.Message, "flip_board")
}

func TestDuplicateUsernameRejectedUntilReleased(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dialServer(t, srv)
	login(t, conn1, "alice")

	conn2 := dialServer(t, srv)
	writeMsg(t, conn2, domain.ClientMessage{Type: domain.MsgLogin, Username: "alice"})
	msg := readMsg(t, conn2)
	require.Equal(t, domain.MsgLoginResponse, msg.Type)
	assert.False(t, msg.Success)
	assert.Equal(t, "Username already in use", msg.Error)

	// The same socket retries with a different name.
	login(t, conn2, "bob")
}

func TestFullMatchFlow(t *testing.T) {
	srv := newTestServer(t)
	red, yellow := loginPair(t, srv, "alice", "bob")

	// Red wins with four in column 0 while yellow fills column 1.
	moves := []struct {
		conn   *websocket.Conn
		column int
	}{
		{red, 0}, {yellow, 1},
		{red, 0}, {yellow, 1},
		{red, 0}, {yellow, 1},
		{red, 0},
	}

	var last domain.ServerMessage
	for _, m := range moves {
		writeMsg(t, m.conn, domain.ClientMessage{Type: domain.MsgMove, Column: m.column})

		// Every accepted move is broadcast to both players.
		stateRed := readMsg(t, red)
		require.Equal(t, domain.MsgGameState, stateRed.Type)
		stateYellow := readMsg(t, yellow)
		require.Equal(t, domain.MsgGameState, stateYellow.Type)
		last = stateRed
	}

	require.NotNil(t, last.State)
	assert.Equal(t, domain.StatusRedWins, last.State.Status)

	// Both vote yes; the rematch response precedes the fresh game_start.
	writeMsg(t, red, domain.ClientMessage{Type: domain.MsgPlayAgain, WantsRematch: true})
	writeMsg(t, yellow, domain.ClientMessage{Type: domain.MsgPlayAgain, WantsRematch: true})

	for _, conn := range []*websocket.Conn{red, yellow} {
		resp := readMsg(t, conn)
		require.Equal(t, domain.MsgPlayAgainResponse, resp.Type)
		assert.True(t, resp.BothAccepted)

		start := readMsg(t, conn)
		require.Equal(t, domain.MsgGameStart, start.Type)
		assert.Equal(t, domain.StatusInProgress, start.State.Status)
		assert.Equal(t, domain.Red, start.State.CurrentTurn)
	}
}

func TestChatRelaysToBothPlayers(t *testing.T) {
	srv := newTestServer(t)
	red, yellow := loginPair(t, srv, "alice", "bob")

	writeMsg(t, red, domain.ClientMessage{Type: domain.MsgChat, Text: "good luck"})

	for _, conn := range []*websocket.Conn{red, yellow} {
		msg := readMsg(t, conn)
		require.Equal(t, domain.MsgChat, msg.Type)
		assert.Equal(t, "good luck", msg.Text)
	}
}

func TestOpponentDisconnectEndsMatch(t *testing.T) {
	srv := newTestServer(t)
	red, yellow := loginPair(t, srv, "alice", "bob")

	red.Close()

	msg := readMsg(t, yellow)
	require.Equal(t, domain.MsgPlayAgainResponse, msg.Type)
	assert.False(t, msg.BothAccepted)
	assert.True(t, msg.OpponentDisconnected)
}

func TestDisconnectFreesUsername(t *testing.T) {
	srv := newTestServer(t)

	conn1 := dialServer(t, srv)
	login(t, conn1, "alice")
	writeMsg(t, conn1, domain.ClientMessage{Type: domain.MsgDisconnect, Reason: "bye"})

	// The name becomes claimable again once the server finishes cleanup.
	require.Eventually(t, func() bool {
		conn := dialServer(t, srv)
		defer conn.Close()
		if err := conn.WriteJSON(domain.ClientMessage{Type: domain.MsgLogin, Username: "alice"}); err != nil {
			return false
		}
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var msg domain.ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return false
		}
		return msg.Success
	}, 2*time.Second, 20*time.Millisecond)
}
