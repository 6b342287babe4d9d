package interfaces

import (
	"context"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

// TurnRepository defines the interface for conversation turn persistence.
// The log is append-only: turns are never updated.
type TurnRepository interface {
	// Append stores a new turn with a generated ID and sequence number
	Append(ctx context.Context, turn *model.Turn) (*model.Turn, error)

	// ListRecent retrieves the most recent limit turns in chronological
	// order. An empty sessionID spans all of the user's sessions.
	ListRecent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error)

	// ListByUser retrieves all turns for the user in chronological order
	ListByUser(ctx context.Context, userID string) ([]*model.Turn, error)

	// Latest retrieves the user's most recent turn across all sessions.
	// Returns (nil, nil) when the user has no turns.
	Latest(ctx context.Context, userID string) (*model.Turn, error)

	// DeleteSession removes all turns of one session and returns how many
	// were deleted
	DeleteSession(ctx context.Context, userID, sessionID string) (int, error)

	// DeleteOlderThan bulk-deletes turns older than the cutoff across all
	// users and returns how many were deleted
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
