package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[string]*model.Profile),
	}
}

// copyProfile creates a deep copy of a profile
func copyProfile(p *model.Profile) *model.Profile {
	copied := *p
	if p.SubscriptionExpiresAt != nil {
		t := *p.SubscriptionExpiresAt
		copied.SubscriptionExpiresAt = &t
	}
	return &copied
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		return nil, goerr.New("profile ID is required")
	}
	if _, exists := r.profiles[profile.ID]; exists {
		return nil, goerr.New("profile already exists", goerr.V("id", profile.ID))
	}

	now := time.Now().UTC()
	created := copyProfile(profile)
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.LastActive.IsZero() {
		created.LastActive = now
	}

	r.profiles[created.ID] = created
	return copyProfile(created), nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, nil
	}
	return copyProfile(profile), nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.profiles[profile.ID]
	if !exists {
		return nil, goerr.New("profile not found", goerr.V("id", profile.ID))
	}

	updated := copyProfile(profile)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.profiles[updated.ID] = updated
	return copyProfile(updated), nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return goerr.New("profile not found", goerr.V("id", id))
	}
	delete(r.profiles, id)
	return nil
}
