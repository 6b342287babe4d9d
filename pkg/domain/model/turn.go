package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

// TurnID is a UUID-based identifier for Turn
type TurnID string

// NewTurnID generates a new UUID v4 TurnID
func NewTurnID() TurnID {
	return TurnID(uuid.New().String())
}

// Turn is one message (human or AI) in a chat session. Turns are immutable
// once written: they are only appended or bulk-deleted, never mutated.
type Turn struct {
	ID        TurnID
	UserID    string
	SessionID string
	Role      types.TurnRole
	Content   string
	Metadata  map[string]any
	CreatedAt time.Time

	// Seq breaks CreatedAt ties within a session (insertion order)
	Seq int64
}
