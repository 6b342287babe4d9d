package history_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/repository/memory"
	"github.com/resume-lab/vitae/pkg/service/history"
)

func seedTurns(t *testing.T, repo *memory.Memory, userID, sessionID string, contents []string) {
	t.Helper()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range contents {
		role := types.TurnRoleHuman
		if i%2 == 1 {
			role = types.TurnRoleAI
		}
		_, err := repo.Turn().Append(context.Background(), &model.Turn{
			UserID:    userID,
			SessionID: sessionID,
			Role:      role,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		gt.NoError(t, err).Required()
	}
}

func TestAppend(t *testing.T) {
	repo := memory.New()
	svc := history.New(repo.Turn())
	ctx := context.Background()

	gt.Bool(t, svc.Append(ctx, "u1", "s_a", types.TurnRoleHuman, "hello", nil)).True()
	gt.Bool(t, svc.Append(ctx, "u1", "s_a", types.TurnRoleAI, "hi there", map[string]any{"model": "gemini"})).True()

	turns, err := repo.Turn().ListByUser(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Array(t, turns).Length(2)
	gt.Value(t, turns[0].Role).Equal(types.TurnRoleHuman)
	gt.Value(t, turns[1].Metadata["model"]).Equal(any("gemini"))
}

func TestContext(t *testing.T) {
	t.Run("short history is returned unchanged", func(t *testing.T) {
		repo := memory.New()
		svc := history.New(repo.Turn())

		seedTurns(t, repo, "u1", "s_a", []string{"one", "two", "three"})

		turns := svc.Context(context.Background(), "u1", "s_a", 20)
		gt.Array(t, turns).Length(3)
		gt.Value(t, turns[0].Content).Equal("one")
	})

	t.Run("history of 10 or fewer turns never compresses", func(t *testing.T) {
		repo := memory.New()
		svc := history.New(repo.Turn(), history.WithTokenCeiling(1))

		contents := make([]string, 10)
		for i := range contents {
			contents[i] = strings.Repeat("x", 100)
		}
		seedTurns(t, repo, "u1", "s_a", contents)

		turns := svc.Context(context.Background(), "u1", "s_a", 20)
		gt.Array(t, turns).Length(10)
	})

	t.Run("oversized history compresses to 11 entries", func(t *testing.T) {
		repo := memory.New()
		svc := history.New(repo.Turn(), history.WithTokenCeiling(100))

		contents := make([]string, 15)
		for i := range contents {
			contents[i] = fmt.Sprintf("message %02d ", i) + strings.Repeat("x", 100)
		}
		seedTurns(t, repo, "u1", "s_a", contents)

		turns := svc.Context(context.Background(), "u1", "s_a", 20)
		gt.Array(t, turns).Length(11)

		gt.Value(t, turns[0].Role).Equal(types.TurnRoleAI)
		gt.Bool(t, strings.HasPrefix(turns[0].Content, "[Previous conversation summary: ")).True()
		gt.Bool(t, strings.HasSuffix(turns[0].Content, "]")).True()

		gt.Bool(t, strings.HasPrefix(turns[1].Content, "message 05")).True()
		gt.Bool(t, strings.HasPrefix(turns[10].Content, "message 14")).True()
	})

	t.Run("under the ceiling stays uncompressed regardless of count", func(t *testing.T) {
		repo := memory.New()
		svc := history.New(repo.Turn())

		contents := make([]string, 15)
		for i := range contents {
			contents[i] = "short"
		}
		seedTurns(t, repo, "u1", "s_a", contents)

		turns := svc.Context(context.Background(), "u1", "s_a", 20)
		gt.Array(t, turns).Length(15)
	})

	t.Run("limit bounds the fetched tail", func(t *testing.T) {
		repo := memory.New()
		svc := history.New(repo.Turn())

		seedTurns(t, repo, "u1", "s_a", []string{"one", "two", "three", "four"})

		turns := svc.Context(context.Background(), "u1", "s_a", 2)
		gt.Array(t, turns).Length(2)
		gt.Value(t, turns[0].Content).Equal("three")
	})
}

func TestSummarize(t *testing.T) {
	turn := func(content string) *model.Turn {
		return &model.Turn{Role: types.TurnRoleHuman, Content: content}
	}

	cases := []struct {
		name     string
		turns    []*model.Turn
		expected string
	}{
		{
			name:     "no keywords",
			turns:    []*model.Turn{turn("hello there"), turn("how are you")},
			expected: "General resume consultation",
		},
		{
			name:     "topic only",
			turns:    []*model.Turn{turn("tell me about my Education history")},
			expected: "Discussed: education",
		},
		{
			name:     "action only",
			turns:    []*model.Turn{turn("please HELP me out")},
			expected: "Actions: seeking advice",
		},
		{
			name:     "topics and actions combined",
			turns:    []*model.Turn{turn("update my work experience"), turn("add skills")},
			expected: "Discussed: work experience, skills; Actions: editing, adding content",
		},
		{
			name:     "summary keyword maps to professional summary",
			turns:    []*model.Turn{turn("change my summary")},
			expected: "Discussed: professional summary; Actions: editing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, history.Summarize(tc.turns)).Equal(tc.expected)
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	turns := []*model.Turn{
		{Content: strings.Repeat("a", 10)},
		{Content: strings.Repeat("b", 11)},
	}
	gt.Number(t, history.EstimateTokens(turns)).Equal(5)
}

func TestPruneOlderThan(t *testing.T) {
	repo := memory.New()
	svc := history.New(repo.Turn())
	ctx := context.Background()

	old := time.Now().UTC().Add(-40 * 24 * time.Hour)
	fresh := time.Now().UTC().Add(-time.Hour)
	for _, at := range []time.Time{old, old.Add(time.Minute), fresh} {
		_, err := repo.Turn().Append(ctx, &model.Turn{
			UserID: "u1", SessionID: "s_a", Role: types.TurnRoleHuman,
			Content: "msg", CreatedAt: at,
		})
		gt.NoError(t, err).Required()
	}

	deleted, err := svc.PruneOlderThan(ctx, 30)
	gt.NoError(t, err).Required()
	gt.Number(t, deleted).Equal(2)

	remaining, err := repo.Turn().ListByUser(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Array(t, remaining).Length(1)
}
