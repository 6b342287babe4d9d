package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

type versionRepository struct {
	mu       sync.RWMutex
	versions map[model.ResumeID][]*model.ResumeVersion
}

func newVersionRepository() *versionRepository {
	return &versionRepository{
		versions: make(map[model.ResumeID][]*model.ResumeVersion),
	}
}

// copyVersion creates a deep copy of a version record
func copyVersion(v *model.ResumeVersion) *model.ResumeVersion {
	copied := *v
	if v.Content != nil {
		content := v.Content.Clone()
		copied.Content = content
	}
	return &copied
}

func (r *versionRepository) Create(ctx context.Context, version *model.ResumeVersion) (*model.ResumeVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyVersion(version)
	if created.ID == "" {
		created.ID = model.NewVersionID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	// version numbers are assigned here, not by the caller
	highest := 0
	for _, v := range r.versions[created.ResumeID] {
		if v.VersionNumber > highest {
			highest = v.VersionNumber
		}
	}
	created.VersionNumber = highest + 1

	r.versions[created.ResumeID] = append(r.versions[created.ResumeID], created)
	return copyVersion(created), nil
}

func (r *versionRepository) ListByResume(ctx context.Context, resumeID model.ResumeID, limit int) ([]*model.ResumeVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.ResumeVersion, 0, len(r.versions[resumeID]))
	for _, v := range r.versions[resumeID] {
		matched = append(matched, copyVersion(v))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].VersionNumber > matched[j].VersionNumber
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
