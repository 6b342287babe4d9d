package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/usecase"
	"github.com/resume-lab/vitae/pkg/utils/errutil"
)

type chatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrMissingUserID, "chat request without user_id"), http.StatusBadRequest)
		return
	}

	reply, err := s.uc.Chat.SendMessage(ctx, req.UserID, req.SessionID, req.Message)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, chatResponse{
		Response:  reply.Response,
		UserID:    reply.UserID,
		SessionID: reply.SessionID,
	})
}

type sessionSummaryDTO struct {
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

func (s *Server) listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := s.uc.Session.List(ctx, r.URL.Query().Get("user_id"), queryInt(r, "limit"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	items := make([]sessionSummaryDTO, len(sessions))
	for i, sess := range sessions {
		items[i] = sessionSummaryDTO{
			SessionID:    sess.SessionID,
			Title:        sess.Title,
			MessageCount: sess.MessageCount,
			CreatedAt:    sess.CreatedAt,
			LastActivity: sess.LastActivity,
			IsActive:     sess.IsActive,
		}
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"sessions": items})
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	sessionID, err := s.uc.Session.Create(ctx, req.UserID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

type turnDTO struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func turnDTOs(turns []*model.Turn) []turnDTO {
	items := make([]turnDTO, len(turns))
	for i, turn := range turns {
		items[i] = turnDTO{
			ID:        string(turn.ID),
			Role:      turn.Role.String(),
			Content:   turn.Content,
			Metadata:  turn.Metadata,
			CreatedAt: turn.CreatedAt,
		}
	}
	return items
}

func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := s.uc.Session.Turns(ctx, r.URL.Query().Get("user_id"), sessionID, queryInt(r, "limit"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   turnDTOs(turns),
	})
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.uc.Session.Delete(ctx, r.URL.Query().Get("user_id"), sessionID); err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) conversationStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.uc.Session.Stats(ctx, r.URL.Query().Get("user_id"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := map[string]any{
		"total_messages":  stats.TotalMessages,
		"recent_messages": stats.RecentMessages,
	}
	if stats.LastActivity != nil {
		resp["last_activity"] = stats.LastActivity
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

// queryInt parses an integer query parameter, returning 0 when absent or bad
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
