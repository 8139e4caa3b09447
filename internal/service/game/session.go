package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"connect-four-server/internal/domain"
)

// SessionState is the lifecycle of one match session.
type SessionState int

const (
	// StateActive: board in progress, moves accepted.
	StateActive SessionState = iota
	// StateAwaitingVotes: terminal status reached, rematch votes pending.
	StateAwaitingVotes
	// StateDissolved: the session is dead and unbound from both players.
	StateDissolved
)

func (s SessionState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAwaitingVotes:
		return "awaiting_votes"
	case StateDissolved:
		return "dissolved"
	}
	return "unknown"
}

// MatchSession referees one two-player match. It is the sole owner of its
// Game; every mutating operation is serialized by the session mutex, so a
// move, a vote and a disconnect arriving together from the two sides can
// never interleave inconsistently.
type MatchSession struct {
	ID           string
	RedPlayer    string
	YellowPlayer string
	Game         *domain.Game
	State        SessionState
	CreatedAt    time.Time
	FinishedAt   time.Time

	// Rematch votes, nil while unset. Reset at every match start.
	redVote    *bool
	yellowVote *bool

	mu      sync.Mutex
	conns   Connections
	manager *SessionManager
}

// colorOf maps a username to its role, or Empty for strangers.
func (s *MatchSession) colorOf(username string) domain.PlayerID {
	switch username {
	case s.RedPlayer:
		return domain.Red
	case s.YellowPlayer:
		return domain.Yellow
	}
	return domain.Empty
}

func (s *MatchSession) opponentOf(username string) string {
	if username == s.RedPlayer {
		return s.YellowPlayer
	}
	return s.RedPlayer
}

// broadcast sends the same message to both bound players.
func (s *MatchSession) broadcast(msg domain.ServerMessage) {
	s.conns.Send(s.RedPlayer, msg)
	s.conns.Send(s.YellowPlayer, msg)
}

// sendGameStart tells both players a fresh board is live, each with their
// own color and opponent name. The snapshot is taken under the session
// mutex: the instant the session is registered a player can start moving,
// and the game-start broadcast must not observe those moves mid-write.
func (s *MatchSession) sendGameStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendGameStartLocked()
}

// sendGameStartLocked is sendGameStart for callers already holding the
// session mutex.
func (s *MatchSession) sendGameStartLocked() {
	snapshot := s.Game.Snapshot()
	s.conns.Send(s.RedPlayer, domain.ServerMessage{
		Type:      domain.MsgGameStart,
		YourColor: domain.ColorRed,
		Opponent:  s.YellowPlayer,
		State:     snapshot,
	})
	s.conns.Send(s.YellowPlayer, domain.ServerMessage{
		Type:      domain.MsgGameStart,
		YourColor: domain.ColorYellow,
		Opponent:  s.RedPlayer,
		State:     snapshot,
	})
}

// HandleMove applies a move from the requester. Invalid moves (wrong turn,
// bad column, game over) are rejected silently: no mutation, no broadcast.
// The client already knows whose turn it is from the last state update.
func (s *MatchSession) HandleMove(requester string, column int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != StateActive {
		log.Printf("[SESSION] %s: move from %s ignored, session is %s", s.ID, requester, s.State)
		return nil
	}

	player := s.colorOf(requester)
	if player == domain.Empty {
		return fmt.Errorf("%s is not bound to session %s", requester, s.ID)
	}

	if s.Game.CurrentTurn != player {
		log.Printf("[SESSION] %s: %s moved out of turn", s.ID, requester)
		return nil
	}

	row, err := s.Game.MakeMove(column)
	if err != nil {
		log.Printf("[SESSION] %s: rejected move by %s in column %d: %v", s.ID, requester, column, err)
		return nil
	}

	log.Printf("[SESSION] %s: %s dropped in column %d, landed row %d", s.ID, requester, column, row)

	// Broadcast an immutable snapshot, never the live grid.
	s.broadcast(domain.ServerMessage{
		Type:  domain.MsgGameState,
		State: s.Game.Snapshot(),
	})

	if s.Game.IsFinished() {
		s.State = StateAwaitingVotes
		s.FinishedAt = time.Now()
		log.Printf("[SESSION] %s: game over (%s) after %d moves", s.ID, s.Game.Status, s.Game.MoveCount)
		s.recordResultLocked()
	}

	return nil
}

// HandleChat relays the text verbatim, tagged with the sender, to both
// players. The echo back to the sender is intentional: both UIs see the
// same ordering.
func (s *MatchSession) HandleChat(requester, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == StateDissolved {
		return
	}

	s.broadcast(domain.ServerMessage{
		Type:   domain.MsgChat,
		Sender: requester,
		Text:   text,
	})
	log.Printf("[SESSION] %s: chat from %s: %s", s.ID, requester, text)
}

// HandleRematchVote records a yes/no vote. Both yes: same players, same
// colors, fresh board. Any no: both sides are told the rematch is off,
// distinguishing a decline from a disconnect, and the session dissolves.
func (s *MatchSession) HandleRematchVote(requester string, wantsRematch bool) error {
	s.mu.Lock()

	if s.State != StateAwaitingVotes {
		s.mu.Unlock()
		log.Printf("[SESSION] %s: rematch vote from %s ignored, session is %s", s.ID, requester, s.State)
		return nil
	}

	switch s.colorOf(requester) {
	case domain.Red:
		s.redVote = &wantsRematch
	case domain.Yellow:
		s.yellowVote = &wantsRematch
	default:
		s.mu.Unlock()
		return fmt.Errorf("%s is not bound to session %s", requester, s.ID)
	}

	log.Printf("[SESSION] %s: %s wants rematch: %v", s.ID, requester, wantsRematch)

	if !wantsRematch {
		s.broadcast(domain.ServerMessage{
			Type:                 domain.MsgPlayAgainResponse,
			BothAccepted:         false,
			OpponentDisconnected: false,
		})
		s.dissolveLocked()
		s.mu.Unlock()
		s.manager.Remove(s.ID)
		return nil
	}

	if s.redVote != nil && *s.redVote && s.yellowVote != nil && *s.yellowVote {
		log.Printf("[SESSION] %s: rematch accepted, resetting board for %s vs %s", s.ID, s.RedPlayer, s.YellowPlayer)
		s.Game = domain.NewGame(s.RedPlayer, s.YellowPlayer)
		s.redVote, s.yellowVote = nil, nil
		s.State = StateActive
		s.FinishedAt = time.Time{}
		s.broadcast(domain.ServerMessage{
			Type:         domain.MsgPlayAgainResponse,
			BothAccepted: true,
		})
		s.sendGameStartLocked()
	}

	s.mu.Unlock()
	return nil
}

// HandleDisconnect is valid from any state. The survivor learns the
// opponent disconnected (distinct from a declined rematch) and the session
// dissolves. A dropped connection permanently ends the match.
func (s *MatchSession) HandleDisconnect(who string) {
	s.mu.Lock()

	if s.State == StateDissolved {
		s.mu.Unlock()
		return
	}

	log.Printf("[SESSION] %s: %s disconnected, dissolving", s.ID, who)

	other := s.opponentOf(who)
	if s.conns.IsLive(other) {
		s.conns.Send(other, domain.ServerMessage{
			Type:                 domain.MsgPlayAgainResponse,
			BothAccepted:         false,
			OpponentDisconnected: true,
		})
	}

	s.dissolveLocked()
	s.mu.Unlock()
	s.manager.Remove(s.ID)
}

// HandleReturnToLobby treats the requester as voluntarily leaving. Both
// players are unbound; the requester goes back to matchmaking, and so does
// the other side if still connected.
func (s *MatchSession) HandleReturnToLobby(requester string) {
	s.mu.Lock()

	if s.State == StateDissolved {
		s.mu.Unlock()
		return
	}

	log.Printf("[SESSION] %s: %s returned to lobby, dissolving", s.ID, requester)

	other := s.opponentOf(requester)
	otherLive := s.conns.IsLive(other)
	if otherLive {
		s.conns.Send(other, domain.ServerMessage{
			Type:   domain.MsgDisconnect,
			Reason: requester + " has returned to the lobby",
		})
	}

	s.dissolveLocked()
	s.mu.Unlock()
	s.manager.Remove(s.ID)

	s.manager.queue.Enqueue(requester)
	if otherLive {
		s.manager.queue.Enqueue(other)
	}
}

// dissolveLocked marks the session dead. Caller holds the session mutex and
// removes the session from the manager after unlocking.
func (s *MatchSession) dissolveLocked() {
	s.State = StateDissolved
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}
}

// recordResultLocked pushes the finished game to the leaderboard and the
// optional history store. Runs in the background so a slow backend never
// blocks the game-over broadcast.
func (s *MatchSession) recordResultLocked() {
	record := domain.GameRecord{
		MatchID:         s.ID,
		RedPlayer:       s.RedPlayer,
		YellowPlayer:    s.YellowPlayer,
		Status:          s.Game.Status,
		TotalMoves:      s.Game.MoveCount,
		DurationSeconds: int(s.FinishedAt.Sub(s.CreatedAt).Seconds()),
		CreatedAt:       s.CreatedAt,
		FinishedAt:      s.FinishedAt,
		FinalBoard:      domain.CopyGrid(s.Game.Grid),
	}

	switch s.Game.Winner() {
	case domain.Red:
		record.WinnerName = s.RedPlayer
	case domain.Yellow:
		record.WinnerName = s.YellowPlayer
	}

	leaderboard := s.manager.leaderboard
	history := s.manager.history

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if leaderboard != nil && record.WinnerName != "" {
			if err := leaderboard.RecordWin(ctx, record.WinnerName); err != nil {
				log.Printf("[SESSION] Error recording win for %s: %v", record.WinnerName, err)
			}
		}
		if history != nil {
			if err := history.SaveGame(ctx, record); err != nil {
				log.Printf("[SESSION] Error saving game %s: %v", record.MatchID, err)
			}
		}
	}()
}
