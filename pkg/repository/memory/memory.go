package memory

import (
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
)

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	profile *profileRepository
	resume  *resumeRepository
	turn    *turnRepository
	change  *changeRepository
	version *versionRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile: newProfileRepository(),
		resume:  newResumeRepository(),
		turn:    newTurnRepository(),
		change:  newChangeRepository(),
		version: newVersionRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Resume() interfaces.ResumeRepository {
	return m.resume
}

func (m *Memory) Turn() interfaces.TurnRepository {
	return m.turn
}

func (m *Memory) Change() interfaces.ChangeRepository {
	return m.change
}

func (m *Memory) Version() interfaces.VersionRepository {
	return m.version
}

func (m *Memory) Close() error {
	return nil
}

func copyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
