package interfaces

import (
	"context"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

// ChangeRepository defines the interface for ResumeChange persistence.
// Change history is append-only.
type ChangeRepository interface {
	// Put stores a change record under its own ID
	Put(ctx context.Context, change *model.ResumeChange) error

	// Get retrieves a change by ID. Returns (nil, nil) when not found.
	Get(ctx context.Context, id model.ChangeID) (*model.ResumeChange, error)

	// List retrieves changes for a user, newest first. sessionID and
	// changeType are optional filters (empty means no filter).
	List(ctx context.Context, userID, sessionID string, changeType types.ChangeType, limit int) ([]*model.ResumeChange, error)

	// DeleteOlderThan bulk-deletes change records older than the cutoff and
	// returns how many were deleted
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
