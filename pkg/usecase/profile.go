package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
)

// ProfileUseCase exposes account profile CRUD
type ProfileUseCase struct {
	repo interfaces.Repository
}

// Get retrieves a profile by ID
func (uc *ProfileUseCase) Get(ctx context.Context, id string) (*model.Profile, error) {
	if id == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot get profile")
	}
	profile, err := uc.repo.Profile().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}
	if profile == nil {
		return nil, goerr.Wrap(ErrProfileNotFound, "no such profile", goerr.V("id", id))
	}
	return profile, nil
}

// Create stores a new profile. The caller supplies the ID, which doubles as
// the user_id across the chat surfaces.
func (uc *ProfileUseCase) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile == nil || profile.ID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot create profile without an ID")
	}

	existing, err := uc.repo.Profile().Get(ctx, profile.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check existing profile", goerr.V("id", profile.ID))
	}
	if existing != nil {
		return nil, goerr.Wrap(ErrProfileExists, "profile ID is taken", goerr.V("id", profile.ID))
	}

	profile.LastActive = time.Now().UTC()
	created, err := uc.repo.Profile().Create(ctx, profile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("id", profile.ID))
	}
	return created, nil
}

// Update replaces an existing profile's fields and refreshes last_active
func (uc *ProfileUseCase) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile == nil || profile.ID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot update profile without an ID")
	}

	existing, err := uc.repo.Profile().Get(ctx, profile.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check existing profile", goerr.V("id", profile.ID))
	}
	if existing == nil {
		return nil, goerr.Wrap(ErrProfileNotFound, "no such profile", goerr.V("id", profile.ID))
	}

	profile.LastActive = time.Now().UTC()
	updated, err := uc.repo.Profile().Update(ctx, profile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update profile", goerr.V("id", profile.ID))
	}
	return updated, nil
}
