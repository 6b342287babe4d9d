package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

type turnRepository struct {
	mu      sync.RWMutex
	turns   map[string][]*model.Turn // userID -> turns, insertion order
	nextSeq int64
}

func newTurnRepository() *turnRepository {
	return &turnRepository{
		turns: make(map[string][]*model.Turn),
	}
}

// copyTurn creates a deep copy of a turn
func copyTurn(t *model.Turn) *model.Turn {
	copied := *t
	copied.Metadata = copyMap(t.Metadata)
	return &copied
}

func (r *turnRepository) Append(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyTurn(turn)
	if created.ID == "" {
		created.ID = model.NewTurnID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.nextSeq++
	created.Seq = r.nextSeq

	r.turns[created.UserID] = append(r.turns[created.UserID], created)
	return copyTurn(created), nil
}

// sortChronological orders turns by CreatedAt, ties broken by insertion seq
func sortChronological(turns []*model.Turn) {
	sort.SliceStable(turns, func(i, j int) bool {
		if turns[i].CreatedAt.Equal(turns[j].CreatedAt) {
			return turns[i].Seq < turns[j].Seq
		}
		return turns[i].CreatedAt.Before(turns[j].CreatedAt)
	})
}

func (r *turnRepository) ListRecent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Turn, 0)
	for _, turn := range r.turns[userID] {
		if sessionID != "" && turn.SessionID != sessionID {
			continue
		}
		matched = append(matched, copyTurn(turn))
	}
	sortChronological(matched)

	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

func (r *turnRepository) ListByUser(ctx context.Context, userID string) ([]*model.Turn, error) {
	return r.ListRecent(ctx, userID, "", 0)
}

func (r *turnRepository) Latest(ctx context.Context, userID string) (*model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Turn
	for _, turn := range r.turns[userID] {
		if latest == nil ||
			turn.CreatedAt.After(latest.CreatedAt) ||
			(turn.CreatedAt.Equal(latest.CreatedAt) && turn.Seq > latest.Seq) {
			latest = turn
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyTurn(latest), nil
}

func (r *turnRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]*model.Turn, 0)
	deleted := 0
	for _, turn := range r.turns[userID] {
		if turn.SessionID == sessionID {
			deleted++
			continue
		}
		kept = append(kept, turn)
	}
	r.turns[userID] = kept
	return deleted, nil
}

func (r *turnRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for userID, turns := range r.turns {
		kept := make([]*model.Turn, 0, len(turns))
		for _, turn := range turns {
			if turn.CreatedAt.Before(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, turn)
		}
		r.turns[userID] = kept
	}
	return deleted, nil
}
