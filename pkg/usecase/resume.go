package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

// ResumeUseCase exposes resume record CRUD
type ResumeUseCase struct {
	repo interfaces.Repository
}

// Get retrieves a resume by ID
func (uc *ResumeUseCase) Get(ctx context.Context, id model.ResumeID) (*model.Resume, error) {
	resume, err := uc.repo.Resume().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get resume", goerr.V("id", id))
	}
	if resume == nil {
		return nil, goerr.Wrap(ErrResumeNotFound, "no such resume", goerr.V("id", id))
	}
	return resume, nil
}

// Latest retrieves the profile's most recently updated resume, the record all
// chat tools operate on.
func (uc *ResumeUseCase) Latest(ctx context.Context, profileID string) (*model.Resume, error) {
	if profileID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot get latest resume")
	}
	resume, err := uc.repo.Resume().GetLatestByProfile(ctx, profileID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest resume", goerr.V("profileID", profileID))
	}
	if resume == nil {
		return nil, goerr.Wrap(ErrResumeNotFound, "profile has no resume", goerr.V("profileID", profileID))
	}
	return resume, nil
}

// List retrieves all of the profile's resumes, most recently updated first
func (uc *ResumeUseCase) List(ctx context.Context, profileID string) ([]*model.Resume, error) {
	if profileID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot list resumes")
	}
	resumes, err := uc.repo.Resume().ListByProfile(ctx, profileID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list resumes", goerr.V("profileID", profileID))
	}
	return resumes, nil
}

// Update replaces an existing resume's content and stamps updated_at
func (uc *ResumeUseCase) Update(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	if resume == nil || resume.ID == "" {
		return nil, goerr.Wrap(ErrResumeNotFound, "cannot update resume without an ID")
	}

	existing, err := uc.repo.Resume().Get(ctx, resume.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check existing resume", goerr.V("id", resume.ID))
	}
	if existing == nil {
		return nil, goerr.Wrap(ErrResumeNotFound, "no such resume", goerr.V("id", resume.ID))
	}

	updated, err := uc.repo.Resume().Update(ctx, resume)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update resume", goerr.V("id", resume.ID))
	}
	return updated, nil
}

// Create stores a new resume owned by an existing profile
func (uc *ResumeUseCase) Create(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	if resume == nil || resume.ProfileID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot create resume without an owner")
	}

	profile, err := uc.repo.Profile().Get(ctx, resume.ProfileID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check resume owner", goerr.V("profileID", resume.ProfileID))
	}
	if profile == nil {
		return nil, goerr.Wrap(ErrProfileNotFound, "resume owner does not exist", goerr.V("profileID", resume.ProfileID))
	}

	created, err := uc.repo.Resume().Create(ctx, resume)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create resume", goerr.V("profileID", resume.ProfileID))
	}

	profile.ResumesCreated++
	if _, err := uc.repo.Profile().Update(ctx, profile); err != nil {
		logging.From(ctx).Error("failed to bump resumes_created",
			"profileID", profile.ID,
			"error", err.Error(),
		)
	}

	return created, nil
}
