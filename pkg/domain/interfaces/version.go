package interfaces

import (
	"context"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

// VersionRepository defines the interface for ResumeVersion persistence
type VersionRepository interface {
	// Create stores a new version. The repository assigns the next version
	// number for the resume atomically: numbers are strictly increasing with
	// no gaps or reuse even under concurrent writers.
	Create(ctx context.Context, version *model.ResumeVersion) (*model.ResumeVersion, error)

	// ListByResume retrieves versions of a resume, newest first
	ListByResume(ctx context.Context, resumeID model.ResumeID, limit int) ([]*model.ResumeVersion, error)
}
