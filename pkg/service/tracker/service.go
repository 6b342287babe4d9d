package tracker

import (
	"context"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

// DefaultHistoryLimit bounds change-history listings when no limit is given
const DefaultHistoryLimit = 50

// Service tracks resume changes: it diffs snapshots into typed change records,
// persists them append-only, renders per-change diffs, and records reverts.
// Change tracking is observational, not authoritative, so persistence is
// best-effort: a change whose save fails is logged and dropped instead of
// failing the whole call.
type Service struct {
	changes interfaces.ChangeRepository
	differ  Differ
	now     func() time.Time
}

type Option func(*Service)

// WithDiffer replaces the snapshot diff algorithm
func WithDiffer(d Differ) Option {
	return func(s *Service) {
		s.differ = d
	}
}

func withNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(changes interfaces.ChangeRepository, opts ...Option) *Service {
	s := &Service{
		changes: changes,
		differ:  &PositionalDiffer{},
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track diffs the two snapshots and persists one ResumeChange per detected
// difference. A non-empty description overrides the per-change generated one.
// Returns the changes that were persisted.
func (s *Service) Track(ctx context.Context, userID string, oldSnap, newSnap *model.Snapshot, sessionID, description string) []*model.ResumeChange {
	detected := s.differ.Diff(oldSnap, newSnap)
	now := s.now()

	tracked := make([]*model.ResumeChange, 0, len(detected))
	for _, d := range detected {
		desc := d.Description
		if description != "" {
			desc = description
		}
		change := &model.ResumeChange{
			ID:          model.NewChangeID(),
			UserID:      userID,
			SessionID:   sessionID,
			ChangeType:  d.ChangeType,
			Section:     d.Section,
			FieldPath:   d.FieldPath,
			OldValue:    d.OldValue,
			NewValue:    d.NewValue,
			Description: desc,
			Timestamp:   now,
			Metadata:    d.Metadata,
		}

		if err := s.changes.Put(ctx, change); err != nil {
			logging.From(ctx).Error("failed to save change, dropping it",
				"error", err, "user_id", userID, "field_path", change.FieldPath)
			continue
		}
		tracked = append(tracked, change)
	}

	logging.From(ctx).Info("tracked changes", "user_id", userID, "count", len(tracked))
	return tracked
}

// History lists the user's changes, newest first, with optional session and
// change-type filters. Degrades to an empty list on storage errors.
func (s *Service) History(ctx context.Context, userID, sessionID string, changeType types.ChangeType, limit int) []*model.ResumeChange {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	changes, err := s.changes.List(ctx, userID, sessionID, changeType, limit)
	if err != nil {
		logging.From(ctx).Error("failed to load change history", "error", err, "user_id", userID)
		return []*model.ResumeChange{}
	}
	return changes
}

// Diff renders the detailed diff of one change. Returns nil when the change
// does not exist.
func (s *Service) Diff(ctx context.Context, changeID model.ChangeID) *model.ChangeDiff {
	change, err := s.changes.Get(ctx, changeID)
	if err != nil {
		logging.From(ctx).Error("failed to load change", "error", err, "change_id", changeID)
		return nil
	}
	if change == nil {
		return nil
	}

	return &model.ChangeDiff{
		ChangeID:    change.ID,
		FieldPath:   change.FieldPath,
		Section:     change.Section,
		ChangeType:  change.ChangeType,
		Timestamp:   change.Timestamp,
		Description: change.Description,
		Diff:        valueDiff(change.OldValue, change.NewValue),
	}
}

// Revert records the undo of a change as a new ResumeChange with old and new
// swapped, and returns the value the caller should write back. It does not
// apply the write itself. Fails when the change does not exist or belongs to
// another user.
func (s *Service) Revert(ctx context.Context, userID string, changeID model.ChangeID) (bool, *model.RevertData) {
	change, err := s.changes.Get(ctx, changeID)
	if err != nil {
		logging.From(ctx).Error("failed to load change for revert", "error", err, "change_id", changeID)
		return false, nil
	}
	if change == nil || change.UserID != userID {
		return false, nil
	}

	revert := &model.ResumeChange{
		ID:          model.NewChangeID(),
		UserID:      userID,
		SessionID:   change.SessionID,
		ChangeType:  change.ChangeType,
		Section:     change.Section,
		FieldPath:   change.FieldPath,
		OldValue:    change.NewValue,
		NewValue:    change.OldValue,
		Description: "Reverted change: " + change.Description,
		Timestamp:   s.now(),
		Metadata:    map[string]any{"reverted_change_id": string(changeID)},
	}
	if err := s.changes.Put(ctx, revert); err != nil {
		logging.From(ctx).Error("failed to save revert change", "error", err, "change_id", changeID)
		return false, nil
	}

	logging.From(ctx).Info("reverted change", "change_id", changeID, "user_id", userID)
	return true, &model.RevertData{
		FieldPath: change.FieldPath,
		Value:     change.OldValue,
		Section:   change.Section,
	}
}

// Cleanup bulk-deletes change records older than the given number of days and
// returns how many were removed.
func (s *Service) Cleanup(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	deleted, err := s.changes.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logging.From(ctx).Info("cleaned up old changes", "deleted", deleted, "days", days)
	return deleted, nil
}
