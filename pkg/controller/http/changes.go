package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/utils/errutil"
)

type trackChangesRequest struct {
	UserID      string          `json:"user_id"`
	OldResume   *model.Snapshot `json:"old_resume"`
	NewResume   *model.Snapshot `json:"new_resume"`
	SessionID   string          `json:"session_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

type changeDTO struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	SessionID   string         `json:"session_id,omitempty"`
	ChangeType  string         `json:"change_type"`
	Section     string         `json:"section"`
	FieldPath   string         `json:"field_path"`
	OldValue    any            `json:"old_value"`
	NewValue    any            `json:"new_value"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func changeDTOs(changes []*model.ResumeChange) []changeDTO {
	items := make([]changeDTO, len(changes))
	for i, c := range changes {
		items[i] = changeDTO{
			ID:          string(c.ID),
			UserID:      c.UserID,
			SessionID:   c.SessionID,
			ChangeType:  string(c.ChangeType),
			Section:     c.Section,
			FieldPath:   c.FieldPath,
			OldValue:    c.OldValue,
			NewValue:    c.NewValue,
			Description: c.Description,
			Timestamp:   c.Timestamp,
			Metadata:    c.Metadata,
		}
	}
	return items
}

func (s *Server) trackChangesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req trackChangesRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	changes, err := s.uc.Change.Track(ctx, req.UserID, req.OldResume, req.NewResume, req.SessionID, req.Description)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"changes": changeDTOs(changes),
		"count":   len(changes),
	})
}

func (s *Server) changeHistoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	changes, err := s.uc.Change.History(ctx, q.Get("user_id"), q.Get("session_id"), q.Get("change_type"), queryInt(r, "limit"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"changes": changeDTOs(changes)})
}

type valueDiffDTO struct {
	Kind      string   `json:"kind"`
	OldValue  any      `json:"old_value"`
	NewValue  any      `json:"new_value"`
	DiffLines []string `json:"diff_lines,omitempty"`
	CharDiff  int      `json:"char_diff,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

func (s *Server) changeDiffHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	changeID := model.ChangeID(chi.URLParam(r, "changeID"))

	diff, err := s.uc.Change.Diff(ctx, changeID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := map[string]any{
		"change_id":   string(diff.ChangeID),
		"field_path":  diff.FieldPath,
		"section":     diff.Section,
		"change_type": string(diff.ChangeType),
		"timestamp":   diff.Timestamp,
		"description": diff.Description,
	}
	if diff.Diff != nil {
		resp["diff"] = valueDiffDTO{
			Kind:      diff.Diff.Kind,
			OldValue:  diff.Diff.OldValue,
			NewValue:  diff.Diff.NewValue,
			DiffLines: diff.Diff.DiffLines,
			CharDiff:  diff.Diff.CharDiff,
			Summary:   diff.Diff.Summary,
		}
	}
	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) revertChangeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	changeID := model.ChangeID(chi.URLParam(r, "changeID"))

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	data, err := s.uc.Change.Revert(ctx, req.UserID, changeID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"revert_data": map[string]any{
			"field_path": data.FieldPath,
			"value":      data.Value,
			"section":    data.Section,
		},
	})
}
