package interfaces

import (
	"context"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

// ProfileRepository defines the interface for Profile data access
type ProfileRepository interface {
	// Create stores a new profile. The profile ID must be set by the caller.
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Get retrieves a profile by ID. Returns (nil, nil) when not found.
	Get(ctx context.Context, id string) (*model.Profile, error)

	// Update updates an existing profile
	Update(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Delete deletes a profile by ID
	Delete(ctx context.Context, id string) error
}
