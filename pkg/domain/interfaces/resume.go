package interfaces

import (
	"context"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

// ResumeRepository defines the interface for Resume data access
type ResumeRepository interface {
	// Create stores a new resume with a generated ID
	Create(ctx context.Context, resume *model.Resume) (*model.Resume, error)

	// Get retrieves a resume by ID. Returns (nil, nil) when not found.
	Get(ctx context.Context, id model.ResumeID) (*model.Resume, error)

	// GetLatestByProfile retrieves the most recently updated resume owned by
	// the profile. Returns (nil, nil) when the profile has no resume.
	GetLatestByProfile(ctx context.Context, profileID string) (*model.Resume, error)

	// ListByProfile retrieves all resumes owned by the profile, most recently
	// updated first.
	ListByProfile(ctx context.Context, profileID string) ([]*model.Resume, error)

	// Update updates an existing resume and stamps UpdatedAt
	Update(ctx context.Context, resume *model.Resume) (*model.Resume, error)
}
