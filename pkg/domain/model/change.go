package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

// ChangeID is a UUID-based identifier for ResumeChange
type ChangeID string

// NewChangeID generates a new UUID v4 ChangeID
func NewChangeID() ChangeID {
	return ChangeID(uuid.New().String())
}

// ResumeChange is a fine-grained, typed description of one field-level
// difference between two resume snapshots. Changes are append-only: a revert
// is recorded as a new change with old/new swapped, never as a mutation of
// history.
type ResumeChange struct {
	ID          ChangeID
	UserID      string
	SessionID   string
	ChangeType  types.ChangeType
	Section     string
	FieldPath   string // dotted path, e.g. "experience.0"
	OldValue    any
	NewValue    any
	Description string
	Timestamp   time.Time
	Metadata    map[string]any
}

// ChangeDiff is the detailed diff view of one change
type ChangeDiff struct {
	ChangeID    ChangeID
	FieldPath   string
	Section     string
	ChangeType  types.ChangeType
	Timestamp   time.Time
	Description string
	Diff        *ValueDiff
}

// ValueDiff describes how a value changed. Kind is "text" for string pairs
// (with unified diff lines and a character delta) or "json" for everything
// else (with a one-line type-change summary).
type ValueDiff struct {
	Kind      string
	OldValue  any
	NewValue  any
	DiffLines []string
	CharDiff  int
	Summary   string
}

// RevertData is what the caller should write back to undo a change. The
// tracker records the revert but does not apply it to the resume store.
type RevertData struct {
	FieldPath string
	Value     any
	Section   string
}
