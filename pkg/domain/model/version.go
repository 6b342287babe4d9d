package model

import (
	"time"

	"github.com/google/uuid"
)

// VersionID is a UUID-based identifier for ResumeVersion
type VersionID string

// NewVersionID generates a new UUID v4 VersionID
func NewVersionID() VersionID {
	return VersionID(uuid.New().String())
}

// ResumeVersion is an audit-trail record of the resume's full content after a
// mutating tool call. Coarser than ResumeChange: one record per tool call,
// storing the whole snapshot rather than a diff. Version numbers are strictly
// increasing per resume with no gaps or reuse.
type ResumeVersion struct {
	ID             VersionID
	UserID         string
	ResumeID       ResumeID
	VersionNumber  int
	Content        *Snapshot
	ChangesSummary string
	CreatedBy      string // "user" or "ai"
	CreatedAt      time.Time
}
