package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connect-four-server/internal/domain"
	"connect-four-server/pkg/uid"
)

func TestRemoveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	id := f.session.ID

	f.manager.Remove(id)
	assert.Equal(t, 0, f.manager.Count())
	_, ok := f.manager.GetByUsername("alice")
	assert.False(t, ok)

	f.manager.Remove(id)
	assert.Equal(t, 0, f.manager.Count())
}

func TestRemoveKeepsNewerBinding(t *testing.T) {
	f := newFixture(t)
	old := f.session.ID

	// The players already moved on to a new session; removing the old one
	// must not unbind them from the new one.
	f.manager.Remove(old)
	f.manager.Pair("alice", "bob")

	newSession, ok := f.manager.GetByUsername("alice")
	require.True(t, ok)

	f.manager.Remove(old)
	got, ok := f.manager.GetByUsername("alice")
	require.True(t, ok)
	assert.Same(t, newSession, got)
}

// addSession registers a hand-built session directly with the manager.
func addSession(sm *SessionManager, red, yellow string, state SessionState, createdAt, finishedAt time.Time) *MatchSession {
	session := &MatchSession{
		ID:           uid.NewMatchID(),
		RedPlayer:    red,
		YellowPlayer: yellow,
		Game:         domain.NewGame(red, yellow),
		State:        state,
		CreatedAt:    createdAt,
		FinishedAt:   finishedAt,
		conns:        sm.conns,
		manager:      sm,
	}
	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.userToSession[red] = session.ID
	sm.userToSession[yellow] = session.ID
	sm.mu.Unlock()
	return session
}

func TestCleanupStale(t *testing.T) {
	conns := newFakeConns()
	sm := NewSessionManager(conns, &fakeQueue{}, &fakeLeaderboard{}, nil)
	now := time.Now()

	fresh := addSession(sm, "a1", "a2", StateActive, now, time.Time{})
	ancient := addSession(sm, "b1", "b2", StateActive, now.Add(-25*time.Hour), time.Time{})
	dissolved := addSession(sm, "c1", "c2", StateDissolved, now, now)
	votesRecent := addSession(sm, "d1", "d2", StateAwaitingVotes, now, now.Add(-10*time.Minute))
	votesStale := addSession(sm, "e1", "e2", StateAwaitingVotes, now, now.Add(-2*time.Hour))

	removed := sm.CleanupStale()
	assert.Equal(t, 3, removed)
	assert.Equal(t, 2, sm.Count())

	for _, gone := range []*MatchSession{ancient, dissolved, votesStale} {
		_, ok := sm.GetByUsername(gone.RedPlayer)
		assert.False(t, ok, "session %s should be gone", gone.ID)
	}
	for _, kept := range []*MatchSession{fresh, votesRecent} {
		_, ok := sm.GetByUsername(kept.RedPlayer)
		assert.True(t, ok, "session %s should survive", kept.ID)
	}

	// A second sweep finds nothing new.
	assert.Equal(t, 0, sm.CleanupStale())
}
