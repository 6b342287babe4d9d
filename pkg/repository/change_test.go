package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

func runChangeRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	putChange := func(t *testing.T, repo interfaces.Repository, userID, sessionID string, changeType types.ChangeType, at time.Time) *model.ResumeChange {
		t.Helper()
		change := &model.ResumeChange{
			ID:          model.NewChangeID(),
			UserID:      userID,
			SessionID:   sessionID,
			ChangeType:  changeType,
			Section:     "summary",
			FieldPath:   "summary",
			OldValue:    "before",
			NewValue:    "after",
			Description: "Updated summary",
			Timestamp:   at,
		}
		gt.NoError(t, repo.Change().Put(context.Background(), change)).Required()
		return change
	}

	t.Run("Put and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		change := &model.ResumeChange{
			ID:          model.NewChangeID(),
			UserID:      newUserID(),
			SessionID:   "session_a",
			ChangeType:  types.ChangeSummary,
			Section:     "summary",
			FieldPath:   "summary",
			OldValue:    "Old summary text",
			NewValue:    "New summary text",
			Description: "Rewrote the professional summary",
			Timestamp:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
			Metadata:    map[string]any{"source": "chat"},
		}
		gt.NoError(t, repo.Change().Put(ctx, change)).Required()

		found, err := repo.Change().Get(ctx, change.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, found).NotNil()
		gt.Value(t, found.UserID).Equal(change.UserID)
		gt.Value(t, found.ChangeType).Equal(types.ChangeSummary)
		gt.Value(t, found.OldValue).Equal(any("Old summary text"))
		gt.Value(t, found.Description).Equal("Rewrote the professional summary")
	})

	t.Run("Get returns nil for missing change", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.Change().Get(context.Background(), model.NewChangeID())
		gt.NoError(t, err).Required()
		gt.Value(t, found).Nil()
	})

	t.Run("Put requires ID", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Change().Put(context.Background(), &model.ResumeChange{UserID: newUserID()})
		gt.Error(t, err)
	})

	t.Run("List returns newest first with filters", func(t *testing.T) {
		repo := newRepo(t)
		userID := newUserID()
		base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		putChange(t, repo, userID, "session_a", types.ChangeSummary, base)
		putChange(t, repo, userID, "session_a", types.ChangeSkillsAdd, base.Add(time.Minute))
		putChange(t, repo, userID, "session_b", types.ChangeSummary, base.Add(2*time.Minute))

		all, err := repo.Change().List(context.Background(), userID, "", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)
		gt.Value(t, all[0].SessionID).Equal("session_b")
		gt.Value(t, all[2].ChangeType).Equal(types.ChangeSummary)

		bySession, err := repo.Change().List(context.Background(), userID, "session_a", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, bySession).Length(2)

		byType, err := repo.Change().List(context.Background(), userID, "", types.ChangeSkillsAdd, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, byType).Length(1)
		gt.Value(t, byType[0].ChangeType).Equal(types.ChangeSkillsAdd)

		limited, err := repo.Change().List(context.Background(), userID, "", "", 2)
		gt.NoError(t, err).Required()
		gt.Array(t, limited).Length(2)
		gt.Value(t, limited[0].SessionID).Equal("session_b")
	})

	t.Run("List excludes other users", func(t *testing.T) {
		repo := newRepo(t)
		base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		mine := newUserID()
		putChange(t, repo, mine, "session_a", types.ChangeSummary, base)
		putChange(t, repo, newUserID(), "session_a", types.ChangeSummary, base)

		changes, err := repo.Change().List(context.Background(), mine, "", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, changes).Length(1)
	})

	t.Run("DeleteOlderThan removes expired changes", func(t *testing.T) {
		repo := newRepo(t)
		userID := newUserID()
		cutoff := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

		putChange(t, repo, userID, "session_a", types.ChangeSummary, cutoff.Add(-72*time.Hour))
		putChange(t, repo, userID, "session_a", types.ChangeSkillsAdd, cutoff.Add(time.Hour))

		deleted, err := repo.Change().DeleteOlderThan(context.Background(), cutoff)
		gt.NoError(t, err).Required()
		gt.Number(t, deleted).NotEqual(0)

		remaining, err := repo.Change().List(context.Background(), userID, "", "", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, remaining).Length(1)
		gt.Value(t, remaining[0].ChangeType).Equal(types.ChangeSkillsAdd)
	})
}

func TestMemoryChangeRepository(t *testing.T) {
	runChangeRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreChangeRepository(t *testing.T) {
	runChangeRepositoryTest(t, newFirestoreRepository)
}
