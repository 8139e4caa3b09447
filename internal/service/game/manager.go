package game

import (
	"context"
	"log"
	"sync"
	"time"

	"connect-four-server/internal/domain"
	"connect-four-server/pkg/uid"
)

// Connections is the slice of the connection manager the game layer needs.
type Connections interface {
	Send(username string, message domain.ServerMessage) error
	IsLive(username string) bool
}

// Requeuer puts a player back into matchmaking after a session dissolves.
type Requeuer interface {
	Enqueue(username string)
}

// WinRecorder is implemented by the leaderboard store.
type WinRecorder interface {
	RecordWin(ctx context.Context, username string) error
}

// HistoryRepository persists finished games. Optional; nil disables it.
type HistoryRepository interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

// SessionManager tracks every live match session and binds usernames to
// them. It implements the matchmaking Pairer.
type SessionManager struct {
	sessions      map[string]*MatchSession // sessionID -> session
	userToSession map[string]string        // username -> sessionID
	mu            sync.RWMutex

	conns       Connections
	queue       Requeuer
	leaderboard WinRecorder
	history     HistoryRepository
}

func NewSessionManager(conns Connections, queue Requeuer, leaderboard WinRecorder, history HistoryRepository) *SessionManager {
	return &SessionManager{
		sessions:      make(map[string]*MatchSession),
		userToSession: make(map[string]string),
		conns:         conns,
		queue:         queue,
		leaderboard:   leaderboard,
		history:       history,
	}
}

// Pair binds two freshly dequeued players into a new session. The first
// player waited longest and takes red, which moves first.
func (sm *SessionManager) Pair(player1, player2 string) {
	sm.mu.Lock()

	session := &MatchSession{
		ID:           uid.NewMatchID(),
		RedPlayer:    player1,
		YellowPlayer: player2,
		Game:         domain.NewGame(player1, player2),
		State:        StateActive,
		CreatedAt:    time.Now(),
		conns:        sm.conns,
		manager:      sm,
	}

	sm.sessions[session.ID] = session
	sm.userToSession[player1] = session.ID
	sm.userToSession[player2] = session.ID
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s (red) vs %s (yellow)", session.ID, player1, player2)
	session.sendGameStart()
}

// GetByUsername returns the session a player is bound to, if any.
func (sm *SessionManager) GetByUsername(username string) (*MatchSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sessionID, exists := sm.userToSession[username]
	if !exists {
		return nil, false
	}

	session, exists := sm.sessions[sessionID]
	return session, exists
}

// Remove unbinds both players and drops the session. Idempotent.
func (sm *SessionManager) Remove(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[sessionID]
	if !exists {
		return
	}

	log.Printf("[SESSION] Removing session %s", sessionID)

	if sm.userToSession[session.RedPlayer] == sessionID {
		delete(sm.userToSession, session.RedPlayer)
	}
	if sm.userToSession[session.YellowPlayer] == sessionID {
		delete(sm.userToSession, session.YellowPlayer)
	}
	delete(sm.sessions, sessionID)
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupStale sweeps sessions that should have been removed but linger:
// dissolved ones, finished ones whose players never voted, and matches
// that have sat idle for a day (there is no per-turn timeout, so this is a
// resource bound, not a gameplay rule). Returns the number removed.
func (sm *SessionManager) CleanupStale() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()

	for sessionID, session := range sm.sessions {
		stale := false
		switch session.State {
		case StateDissolved:
			stale = true
		case StateAwaitingVotes:
			stale = now.Sub(session.FinishedAt) > time.Hour
		case StateActive:
			stale = now.Sub(session.CreatedAt) > 24*time.Hour
		}
		if !stale {
			continue
		}

		if sm.userToSession[session.RedPlayer] == sessionID {
			delete(sm.userToSession, session.RedPlayer)
		}
		if sm.userToSession[session.YellowPlayer] == sessionID {
			delete(sm.userToSession, session.YellowPlayer)
		}
		delete(sm.sessions, sessionID)
		count++
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: removed %d stale sessions", count)
	}
	return count
}
