package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/repository/memory"
	"github.com/resume-lab/vitae/pkg/service/session"
)

func appendTurn(t *testing.T, repo *memory.Memory, userID, sessionID string, role types.TurnRole, content string, at time.Time) {
	t.Helper()
	_, err := repo.Turn().Append(context.Background(), &model.Turn{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: at,
	})
	gt.NoError(t, err).Required()
}

func TestGetOrCreate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("reuses recent session", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "session_u1_old", types.TurnRoleHuman, "hello", now.Add(-10*time.Minute))

		gt.Value(t, svc.GetOrCreate(context.Background(), "u1")).Equal("session_u1_old")
	})

	t.Run("mints new session after timeout", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "session_u1_old", types.TurnRoleHuman, "hello", now.Add(-31*time.Minute))

		sessionID := svc.GetOrCreate(context.Background(), "u1")
		gt.Value(t, sessionID).NotEqual("session_u1_old")
		gt.Bool(t, strings.HasPrefix(sessionID, "session_u1_")).True()
	})

	t.Run("mints new session for user without turns", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		sessionID := svc.GetOrCreate(context.Background(), "u1")
		gt.Bool(t, strings.HasPrefix(sessionID, "session_u1_20260501_120000_")).True()
	})

	t.Run("storage failure degrades to new session", func(t *testing.T) {
		svc := session.New(&failingTurnRepository{}, session.WithNow(clock))

		sessionID := svc.GetOrCreate(context.Background(), "u1")
		gt.Bool(t, strings.HasPrefix(sessionID, "session_u1_")).True()
	})
}

func TestCreateNew(t *testing.T) {
	repo := memory.New()
	svc := session.New(repo.Turn())
	ctx := context.Background()

	appendTurn(t, repo, "u1", "session_u1_current", types.TurnRoleHuman, "hello", time.Now().UTC())

	first := svc.CreateNew(ctx, "u1")
	second := svc.CreateNew(ctx, "u1")
	gt.Value(t, first).NotEqual("session_u1_current")
	gt.Value(t, first).NotEqual(second)
}

func TestList(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("aggregates turns per session", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "s_a", types.TurnRoleHuman, "Fix my work experience section", now.Add(-2*time.Hour))
		appendTurn(t, repo, "u1", "s_a", types.TurnRoleAI, "Sure, which entry?", now.Add(-2*time.Hour).Add(time.Minute))
		appendTurn(t, repo, "u1", "s_b", types.TurnRoleHuman, "Add Go to my skills", now.Add(-time.Hour))

		sessions := svc.List(context.Background(), "u1", 0)
		gt.Array(t, sessions).Length(2)
		gt.Value(t, sessions[0].SessionID).Equal("s_b")
		gt.Value(t, sessions[0].Title).Equal("Add Go to my skills")
		gt.Number(t, sessions[0].MessageCount).Equal(1)
		gt.Bool(t, sessions[0].IsActive).True()
		gt.Value(t, sessions[1].SessionID).Equal("s_a")
		gt.Number(t, sessions[1].MessageCount).Equal(2)
	})

	t.Run("truncates long titles to 50 chars", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		long := strings.Repeat("improve my resume ", 5)
		appendTurn(t, repo, "u1", "s_a", types.TurnRoleHuman, long, now)

		sessions := svc.List(context.Background(), "u1", 0)
		gt.Array(t, sessions).Length(1)
		gt.Value(t, sessions[0].Title).Equal(long[:50] + "...")
	})

	t.Run("falls back to timestamp title without human turns", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "s_a", types.TurnRoleAI, "Welcome!", now)

		sessions := svc.List(context.Background(), "u1", 0)
		gt.Array(t, sessions).Length(1)
		gt.Value(t, sessions[0].Title).Equal("Chat on 2026-05-01 12:00")
	})

	t.Run("marks stale sessions inactive", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "s_old", types.TurnRoleHuman, "old chat", now.Add(-25*time.Hour))

		sessions := svc.List(context.Background(), "u1", 0)
		gt.Array(t, sessions).Length(1)
		gt.Bool(t, sessions[0].IsActive).False()
	})

	t.Run("applies limit after ordering", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "s_a", types.TurnRoleHuman, "first", now.Add(-3*time.Hour))
		appendTurn(t, repo, "u1", "s_b", types.TurnRoleHuman, "second", now.Add(-2*time.Hour))
		appendTurn(t, repo, "u1", "s_c", types.TurnRoleHuman, "third", now.Add(-time.Hour))

		sessions := svc.List(context.Background(), "u1", 2)
		gt.Array(t, sessions).Length(2)
		gt.Value(t, sessions[0].SessionID).Equal("s_c")
		gt.Value(t, sessions[1].SessionID).Equal("s_b")
	})

	t.Run("storage failure degrades to empty list", func(t *testing.T) {
		svc := session.New(&failingTurnRepository{}, session.WithNow(clock))

		sessions := svc.List(context.Background(), "u1", 0)
		gt.Array(t, sessions).Length(0)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deletes existing session", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn())
		now := time.Now().UTC()

		appendTurn(t, repo, "u1", "s_a", types.TurnRoleHuman, "hello", now)
		appendTurn(t, repo, "u1", "s_a", types.TurnRoleAI, "hi", now.Add(time.Second))

		gt.Bool(t, svc.Delete(context.Background(), "u1", "s_a")).True()

		turns, err := repo.Turn().ListByUser(context.Background(), "u1")
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(0)
	})

	t.Run("returns false for unknown session", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn())

		gt.Bool(t, svc.Delete(context.Background(), "u1", "nope")).False()
	})

	t.Run("storage failure degrades to false", func(t *testing.T) {
		svc := session.New(&failingTurnRepository{})

		gt.Bool(t, svc.Delete(context.Background(), "u1", "s_a")).False()
	})
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("counts totals and recent turns", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		appendTurn(t, repo, "u1", "s_a", types.TurnRoleHuman, "ancient", now.Add(-30*24*time.Hour))
		appendTurn(t, repo, "u1", "s_b", types.TurnRoleHuman, "recent", now.Add(-24*time.Hour))
		appendTurn(t, repo, "u1", "s_b", types.TurnRoleAI, "reply", now.Add(-23*time.Hour))

		stats := svc.Stats(context.Background(), "u1")
		gt.Number(t, stats.TotalMessages).Equal(3)
		gt.Number(t, stats.RecentMessages).Equal(2)
		gt.Value(t, stats.LastActivity).NotNil()
		gt.Value(t, *stats.LastActivity).Equal(now.Add(-23 * time.Hour))
	})

	t.Run("empty history yields zero stats", func(t *testing.T) {
		repo := memory.New()
		svc := session.New(repo.Turn(), session.WithNow(clock))

		stats := svc.Stats(context.Background(), "u1")
		gt.Number(t, stats.TotalMessages).Equal(0)
		gt.Value(t, stats.LastActivity).Nil()
	})

	t.Run("storage failure degrades to zero stats", func(t *testing.T) {
		svc := session.New(&failingTurnRepository{}, session.WithNow(clock))

		stats := svc.Stats(context.Background(), "u1")
		gt.Number(t, stats.TotalMessages).Equal(0)
	})
}

// failingTurnRepository fails every operation
type failingTurnRepository struct{}

func (r *failingTurnRepository) Append(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingTurnRepository) ListRecent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingTurnRepository) ListByUser(ctx context.Context, userID string) ([]*model.Turn, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingTurnRepository) Latest(ctx context.Context, userID string) (*model.Turn, error) {
	return nil, goerr.New("storage unavailable")
}

func (r *failingTurnRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int, error) {
	return 0, goerr.New("storage unavailable")
}

func (r *failingTurnRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, goerr.New("storage unavailable")
}
