package matchmaking

import (
	"context"
	"log"
	"sync"
	"time"
)

// Liveness answers whether a queued username still has a live connection.
// The ConnectionManager implements it.
type Liveness interface {
	IsLive(username string) bool
}

// Pairer binds two waiting players into a new match session.
type Pairer interface {
	Pair(player1, player2 string)
}

// Queue is the FIFO waiting list of logged-in players with no session
// bound. Pairing always takes the two longest-waiting entries; there is no
// priority or skill ordering.
type Queue struct {
	mu      sync.Mutex
	waiting []string
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the player if not already waiting. Idempotent.
func (q *Queue) Enqueue(username string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, waiting := range q.waiting {
		if waiting == username {
			return
		}
	}

	q.waiting = append(q.waiting, username)
	log.Printf("[MATCHMAKING] %s joined the queue (%d waiting)", username, len(q.waiting))
}

// Dequeue removes the player if present. No-op otherwise. Used both for
// explicit cancel and for disconnect cleanup.
func (q *Queue) Dequeue(username string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, waiting := range q.waiting {
		if waiting == username {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			log.Printf("[MATCHMAKING] %s left the queue (%d waiting)", username, len(q.waiting))
			return
		}
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// Run pairs players on a fixed tick until the context is cancelled.
func (q *Queue) Run(ctx context.Context, interval time.Duration, live Liveness, pairer Pairer) {
	log.Println("[MATCHMAKING] Pairing worker started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[MATCHMAKING] Pairing worker stopped")
			return
		case <-ticker.C:
			q.matchWaiting(live, pairer)
		}
	}
}

// matchWaiting pairs off the queue while at least two entries remain. A
// player that died between enqueue and pairing is discarded; the survivor
// goes back to the front of the queue and keeps its seniority.
func (q *Queue) matchWaiting(live Liveness, pairer Pairer) {
	for {
		player1, player2, ok := q.popPair(live)
		if !ok {
			return
		}
		log.Printf("[MATCHMAKING] Matched players: %s vs %s", player1, player2)
		pairer.Pair(player1, player2)
	}
}

func (q *Queue) popPair(live Liveness) (string, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.waiting) >= 2 {
		player1, player2 := q.waiting[0], q.waiting[1]
		q.waiting = q.waiting[2:]

		alive1, alive2 := live.IsLive(player1), live.IsLive(player2)
		if alive1 && alive2 {
			return player1, player2, true
		}

		// Re-enqueue the survivor at the front and retry.
		if alive1 {
			q.waiting = append([]string{player1}, q.waiting...)
		} else if alive2 {
			q.waiting = append([]string{player2}, q.waiting...)
		}
	}

	return "", "", false
}
