package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"connect-four-server/internal/domain"
)

// ConnectionManager is the process-wide username registry. A username is
// claimed for exactly as long as its connection lives; release makes it
// immediately reusable.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a
	// time. conn.WriteJSON is not safe for concurrent use.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// Claim atomically reserves the username for this connection. It fails if a
// live claim already exists; when two logins race on the same name exactly
// one wins.
func (cm *ConnectionManager) Claim(username string, conn *websocket.Conn) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.connections[username]; exists {
		return false
	}

	cm.connections[username] = conn
	cm.writeMu[username] = &sync.Mutex{}
	return true
}

// Release drops the claim. Idempotent; the socket itself is closed by the
// handler that owns it.
func (cm *ConnectionManager) Release(username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	delete(cm.connections, username)
	delete(cm.writeMu, username)
}

// IsLive reports whether the username currently has a claimed connection.
func (cm *ConnectionManager) IsLive(username string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.connections[username]
	return exists
}

// Send writes a message to one user. Sending to a username without a live
// claim is a silent no-op: the disconnect cleanup may already have run.
func (cm *ConnectionManager) Send(username string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[username]
	mu, muExists := cm.writeMu[username]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}

// Broadcast sends a message to every claimed connection. One slow client
// must not stall the rest, so each send runs in its own goroutine.
func (cm *ConnectionManager) Broadcast(message domain.ServerMessage) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for username := range cm.connections {
		go func(name string) {
			cm.Send(name, message)
		}(username)
	}
}

// DisconnectAll notifies every client and closes their sockets. Used on
// orderly server shutdown.
func (cm *ConnectionManager) DisconnectAll(reason string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	msg := domain.ServerMessage{Type: domain.MsgDisconnect, Reason: reason}
	for username, conn := range cm.connections {
		if mu := cm.writeMu[username]; mu != nil {
			mu.Lock()
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			conn.WriteJSON(msg)
			mu.Unlock()
		}
		conn.Close()
	}

	cm.connections = make(map[string]*websocket.Conn)
	cm.writeMu = make(map[string]*sync.Mutex)
}

// Count returns the number of live claims.
func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
