package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/service/history"
	"github.com/resume-lab/vitae/pkg/service/session"
)

// SessionUseCase exposes conversation session management
type SessionUseCase struct {
	sessions *session.Service
	history  *history.Service
}

// List returns the user's session summaries, most recently active first
func (uc *SessionUseCase) List(ctx context.Context, userID string, limit int) ([]*model.SessionSummary, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot list sessions")
	}
	return uc.sessions.List(ctx, userID, limit), nil
}

// Create starts a fresh session and returns its ID
func (uc *SessionUseCase) Create(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", goerr.Wrap(ErrMissingUserID, "cannot create session")
	}
	return uc.sessions.CreateNew(ctx, userID), nil
}

// Turns returns the most recent turns of one session in chronological order
func (uc *SessionUseCase) Turns(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot get session turns")
	}
	return uc.history.RecentTurns(ctx, userID, sessionID, limit), nil
}

// Delete removes a session and all its turns. A session that never stored a
// turn does not exist, so deleting it fails with ErrSessionNotFound.
func (uc *SessionUseCase) Delete(ctx context.Context, userID, sessionID string) error {
	if userID == "" {
		return goerr.Wrap(ErrMissingUserID, "cannot delete session")
	}
	if !uc.sessions.Delete(ctx, userID, sessionID) {
		return goerr.Wrap(ErrSessionNotFound, "cannot delete session",
			goerr.V("userID", userID),
			goerr.V("sessionID", sessionID),
		)
	}
	return nil
}

// Stats returns aggregate conversation statistics for the user
func (uc *SessionUseCase) Stats(ctx context.Context, userID string) (*model.ConversationStats, error) {
	if userID == "" {
		return nil, goerr.Wrap(ErrMissingUserID, "cannot get conversation stats")
	}
	return uc.sessions.Stats(ctx, userID), nil
}
