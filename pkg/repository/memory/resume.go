package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
)

type resumeRepository struct {
	mu      sync.RWMutex
	resumes map[model.ResumeID]*model.Resume
}

func newResumeRepository() *resumeRepository {
	return &resumeRepository{
		resumes: make(map[model.ResumeID]*model.Resume),
	}
}

// copyResume creates a deep copy of a resume
func copyResume(r *model.Resume) *model.Resume {
	copied := *r
	copied.Experience = append([]model.ExperienceEntry{}, r.Experience...)
	copied.Education = append([]model.EducationEntry{}, r.Education...)
	copied.Skills = append([]string{}, r.Skills...)
	return &copied
}

func (r *resumeRepository) Create(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyResume(resume)
	if created.ID == "" {
		created.ID = model.NewResumeID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.resumes[created.ID] = created
	return copyResume(created), nil
}

func (r *resumeRepository) Get(ctx context.Context, id model.ResumeID) (*model.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resume, exists := r.resumes[id]
	if !exists {
		return nil, nil
	}
	return copyResume(resume), nil
}

func (r *resumeRepository) GetLatestByProfile(ctx context.Context, profileID string) (*model.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Resume
	for _, resume := range r.resumes {
		if resume.ProfileID != profileID {
			continue
		}
		if latest == nil || resume.UpdatedAt.After(latest.UpdatedAt) {
			latest = resume
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyResume(latest), nil
}

func (r *resumeRepository) ListByProfile(ctx context.Context, profileID string) ([]*model.Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resumes := make([]*model.Resume, 0)
	for _, resume := range r.resumes {
		if resume.ProfileID == profileID {
			resumes = append(resumes, copyResume(resume))
		}
	}
	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
	})
	return resumes, nil
}

func (r *resumeRepository) Update(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.resumes[resume.ID]
	if !exists {
		return nil, goerr.New("resume not found", goerr.V("id", resume.ID))
	}

	updated := copyResume(resume)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.resumes[updated.ID] = updated
	return copyResume(updated), nil
}
