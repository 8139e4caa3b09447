package uid

import "github.com/google/uuid"

// NewMatchID returns a unique identifier for a match session.
func NewMatchID() string {
	return uuid.NewString()
}
