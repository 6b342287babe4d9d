package session

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/utils/logging"
)

const (
	// DefaultTimeout is how long after the last turn a session keeps being
	// reused for new messages
	DefaultTimeout = 30 * time.Minute

	// activeWindow marks a session as active when its last turn is this recent
	activeWindow = 24 * time.Hour

	titleMaxLen = 50
)

// Service owns chat session identity. Sessions are not stored entities: they
// are derived from the turn log, so creating one is just minting an ID.
//
// Storage errors never propagate from this layer; operations log the error
// and return an empty or false result so the chat keeps working.
type Service struct {
	turns   interfaces.TurnRepository
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Service)

// WithTimeout overrides the session reuse window
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

func withNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(turns interfaces.TurnRepository, opts ...Option) *Service {
	s := &Service{
		turns:   turns,
		timeout: DefaultTimeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the session ID of the user's most recent turn when it is
// newer than the timeout, otherwise a freshly minted one.
func (s *Service) GetOrCreate(ctx context.Context, userID string) string {
	latest, err := s.turns.Latest(ctx, userID)
	if err != nil {
		logging.From(ctx).Error("failed to look up latest turn, starting new session",
			"error", err, "user_id", userID)
		return s.newSessionID(userID)
	}

	if latest != nil && s.now().Sub(latest.CreatedAt) < s.timeout {
		return latest.SessionID
	}

	sessionID := s.newSessionID(userID)
	logging.From(ctx).Info("created new session", "session_id", sessionID, "user_id", userID)
	return sessionID
}

// CreateNew always mints a new session ID, ignoring recency
func (s *Service) CreateNew(ctx context.Context, userID string) string {
	sessionID := s.newSessionID(userID)
	logging.From(ctx).Info("created new session", "session_id", sessionID, "user_id", userID)
	return sessionID
}

// List aggregates the user's turns into one summary per session, most recent
// activity first.
func (s *Service) List(ctx context.Context, userID string, limit int) []*model.SessionSummary {
	turns, err := s.turns.ListByUser(ctx, userID)
	if err != nil {
		logging.From(ctx).Error("failed to list turns", "error", err, "user_id", userID)
		return []*model.SessionSummary{}
	}

	byID := make(map[string]*model.SessionSummary)
	order := make([]string, 0)
	for _, turn := range turns {
		summary, ok := byID[turn.SessionID]
		if !ok {
			summary = &model.SessionSummary{
				SessionID:    turn.SessionID,
				CreatedAt:    turn.CreatedAt,
				LastActivity: turn.CreatedAt,
			}
			byID[turn.SessionID] = summary
			order = append(order, turn.SessionID)
		}

		summary.MessageCount++
		if turn.CreatedAt.Before(summary.CreatedAt) {
			summary.CreatedAt = turn.CreatedAt
		}
		if turn.CreatedAt.After(summary.LastActivity) {
			summary.LastActivity = turn.CreatedAt
		}
		if summary.Title == "" && turn.Role == types.TurnRoleHuman {
			summary.Title = truncateTitle(turn.Content)
		}
	}

	now := s.now()
	summaries := make([]*model.SessionSummary, 0, len(order))
	for _, id := range order {
		summary := byID[id]
		if summary.Title == "" {
			summary.Title = "Chat on " + summary.CreatedAt.Format("2006-01-02 15:04")
		}
		summary.IsActive = now.Sub(summary.LastActivity) < activeWindow
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastActivity.After(summaries[j].LastActivity)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// Delete removes all turns of the session. Returns false when the session had
// no turns or the delete failed.
func (s *Service) Delete(ctx context.Context, userID, sessionID string) bool {
	deleted, err := s.turns.DeleteSession(ctx, userID, sessionID)
	if err != nil {
		logging.From(ctx).Error("failed to delete session",
			"error", err, "user_id", userID, "session_id", sessionID)
		return false
	}
	return deleted > 0
}

// Stats reports the user's total turns, turns in the last 7 days, and last
// activity time.
func (s *Service) Stats(ctx context.Context, userID string) *model.ConversationStats {
	turns, err := s.turns.ListByUser(ctx, userID)
	if err != nil {
		logging.From(ctx).Error("failed to load turns for stats", "error", err, "user_id", userID)
		return &model.ConversationStats{}
	}

	stats := &model.ConversationStats{TotalMessages: len(turns)}
	recentCutoff := s.now().Add(-7 * 24 * time.Hour)
	for _, turn := range turns {
		if turn.CreatedAt.After(recentCutoff) {
			stats.RecentMessages++
		}
		if stats.LastActivity == nil || turn.CreatedAt.After(*stats.LastActivity) {
			t := turn.CreatedAt
			stats.LastActivity = &t
		}
	}
	return stats
}

func (s *Service) newSessionID(userID string) string {
	return fmt.Sprintf("session_%s_%s_%s",
		userID, s.now().Format("20060102_150405"), uuid.New().String()[:8])
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	return string(runes[:titleMaxLen]) + "..."
}
