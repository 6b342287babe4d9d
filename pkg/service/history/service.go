package history

import (
	"context"
	"strings"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

const (
	// DefaultTokenCeiling is the estimated token budget for a prompt's history
	DefaultTokenCeiling = 16000

	// DefaultFetchLimit bounds how many turns are read for one context
	DefaultFetchLimit = 50

	// recentKeep is how many turns survive compression verbatim
	recentKeep = 10
)

// Service is the append-only conversation store plus the context compressor
// that keeps prompt history inside a token budget.
type Service struct {
	turns        interfaces.TurnRepository
	tokenCeiling int
	fetchLimit   int
}

type Option func(*Service)

// WithTokenCeiling overrides the estimated token budget
func WithTokenCeiling(n int) Option {
	return func(s *Service) {
		s.tokenCeiling = n
	}
}

// WithFetchLimit overrides how many turns are read per context
func WithFetchLimit(n int) Option {
	return func(s *Service) {
		s.fetchLimit = n
	}
}

func New(turns interfaces.TurnRepository, opts ...Option) *Service {
	s := &Service{
		turns:        turns,
		tokenCeiling: DefaultTokenCeiling,
		fetchLimit:   DefaultFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stores one turn. Returns false (and logs) instead of propagating
// storage errors.
func (s *Service) Append(ctx context.Context, userID, sessionID string, role types.TurnRole, content string, metadata map[string]any) bool {
	_, err := s.turns.Append(ctx, &model.Turn{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
	})
	if err != nil {
		logging.From(ctx).Error("failed to save turn",
			"error", err, "user_id", userID, "session_id", sessionID, "role", role)
		return false
	}
	return true
}

// RecentTurns returns the most recent limit turns in chronological order,
// without compression. Degrades to an empty list on storage errors.
func (s *Service) RecentTurns(ctx context.Context, userID, sessionID string, limit int) []*model.Turn {
	if limit <= 0 {
		limit = s.fetchLimit
	}
	turns, err := s.turns.ListRecent(ctx, userID, sessionID, limit)
	if err != nil {
		logging.From(ctx).Error("failed to load turns",
			"error", err, "user_id", userID, "session_id", sessionID)
		return []*model.Turn{}
	}
	return turns
}

// Context returns the conversation history ready for prompt inclusion: the
// most recent limit turns, compressed when the estimated token count exceeds
// the ceiling. Compression keeps the last 10 turns verbatim and folds
// everything older into one synthetic AI summary turn.
func (s *Service) Context(ctx context.Context, userID, sessionID string, limit int) []*model.Turn {
	turns := s.RecentTurns(ctx, userID, sessionID, limit)

	if estimateTokens(turns) <= s.tokenCeiling || len(turns) <= recentKeep {
		return turns
	}

	older := turns[:len(turns)-recentKeep]
	recent := turns[len(turns)-recentKeep:]

	summaryTurn := &model.Turn{
		UserID:    userID,
		SessionID: sessionID,
		Role:      types.TurnRoleAI,
		Content:   "[Previous conversation summary: " + summarize(older) + "]",
	}

	compressed := append([]*model.Turn{summaryTurn}, recent...)
	logging.From(ctx).Info("compressed conversation",
		"user_id", userID, "session_id", sessionID,
		"before", len(turns), "after", len(compressed))
	return compressed
}

// PruneOlderThan bulk-deletes turns older than the given number of days across
// all users and returns how many were removed.
func (s *Service) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	deleted, err := s.turns.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logging.From(ctx).Info("pruned old turns", "deleted", deleted, "days", days)
	return deleted, nil
}

// estimateTokens is the rough 4-characters-per-token heuristic
func estimateTokens(turns []*model.Turn) int {
	total := 0
	for _, turn := range turns {
		total += len(turn.Content)
	}
	return total / 4
}

// summarize builds a deterministic keyword summary of older turns. It never
// calls the LLM, so a fixed input always yields the same string.
func summarize(turns []*model.Turn) string {
	var hasTopic [4]bool
	var hasAction [3]bool

	for _, turn := range turns {
		content := strings.ToLower(turn.Content)

		if strings.Contains(content, "experience") || strings.Contains(content, "work") {
			hasTopic[0] = true
		}
		if strings.Contains(content, "education") {
			hasTopic[1] = true
		}
		if strings.Contains(content, "skills") {
			hasTopic[2] = true
		}
		if strings.Contains(content, "summary") {
			hasTopic[3] = true
		}

		if strings.Contains(content, "update") || strings.Contains(content, "edit") || strings.Contains(content, "change") {
			hasAction[0] = true
		}
		if strings.Contains(content, "add") || strings.Contains(content, "create") {
			hasAction[1] = true
		}
		if strings.Contains(content, "help") {
			hasAction[2] = true
		}
	}

	topicNames := []string{"work experience", "education", "skills", "professional summary"}
	actionNames := []string{"editing", "adding content", "seeking advice"}

	topics := make([]string, 0, len(topicNames))
	for i, name := range topicNames {
		if hasTopic[i] {
			topics = append(topics, name)
		}
	}
	actions := make([]string, 0, len(actionNames))
	for i, name := range actionNames {
		if hasAction[i] {
			actions = append(actions, name)
		}
	}

	parts := make([]string, 0, 2)
	if len(topics) > 0 {
		parts = append(parts, "Discussed: "+strings.Join(topics, ", "))
	}
	if len(actions) > 0 {
		parts = append(parts, "Actions: "+strings.Join(actions, ", "))
	}
	if len(parts) == 0 {
		return "General resume consultation"
	}
	return strings.Join(parts, "; ")
}
