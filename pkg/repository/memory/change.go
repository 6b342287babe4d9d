package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

type changeRepository struct {
	mu      sync.RWMutex
	changes map[model.ChangeID]*model.ResumeChange
}

func newChangeRepository() *changeRepository {
	return &changeRepository{
		changes: make(map[model.ChangeID]*model.ResumeChange),
	}
}

// copyChange creates a deep copy of a change record
func copyChange(c *model.ResumeChange) *model.ResumeChange {
	copied := *c
	copied.Metadata = copyMap(c.Metadata)
	return &copied
}

func (r *changeRepository) Put(ctx context.Context, change *model.ResumeChange) error {
	if change.ID == "" {
		return goerr.New("change ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyChange(change)
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}

	r.changes[created.ID] = created
	return nil
}

func (r *changeRepository) Get(ctx context.Context, id model.ChangeID) (*model.ResumeChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	change, ok := r.changes[id]
	if !ok {
		return nil, nil
	}
	return copyChange(change), nil
}

func (r *changeRepository) List(ctx context.Context, userID, sessionID string, changeType types.ChangeType, limit int) ([]*model.ResumeChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.ResumeChange, 0)
	for _, change := range r.changes {
		if change.UserID != userID {
			continue
		}
		if sessionID != "" && change.SessionID != sessionID {
			continue
		}
		if changeType != "" && change.ChangeType != changeType {
			continue
		}
		matched = append(matched, copyChange(change))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *changeRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, change := range r.changes {
		if change.Timestamp.Before(cutoff) {
			delete(r.changes, id)
			deleted++
		}
	}
	return deleted, nil
}
