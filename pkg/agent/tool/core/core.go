package core

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// New builds the resume editing tools for the chat use case. All tools operate
// on the most recently updated resume owned by userID. Mutating tools record a
// ResumeVersion after each commit and feed the change tracker; sessionID tags
// the tracked changes so they can be filtered per conversation.
func New(repo interfaces.Repository, tracker *tracker.Service, userID, sessionID string) []gollem.Tool {
	return []gollem.Tool{
		&getResumeSectionTool{repo: repo, userID: userID},
		&getFullProfileTool{repo: repo, userID: userID},
		&updateWorkExperienceTool{repo: repo, tracker: tracker, userID: userID, sessionID: sessionID},
		&editProfessionalSummaryTool{repo: repo, tracker: tracker, userID: userID, sessionID: sessionID},
		&manageSkillsTool{repo: repo, tracker: tracker, userID: userID, sessionID: sessionID},
		&searchResumeContentTool{repo: repo, userID: userID},
	}
}

// latestResume fetches the user's current resume. (nil, nil) means the user
// has no resume yet, which each tool reports as a structured failure rather
// than an error.
func latestResume(ctx context.Context, repo interfaces.Repository, userID string) (*model.Resume, error) {
	resume, err := repo.Resume().GetLatestByProfile(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest resume",
			goerr.V("userID", userID),
		)
	}
	return resume, nil
}

// recordMutation stores a version snapshot of the committed resume and tracks
// the field-level diff. Version creation is part of the mutation contract:
// its failure is surfaced. Change tracking is best-effort inside the tracker.
func recordMutation(ctx context.Context, repo interfaces.Repository, trk *tracker.Service, userID, sessionID string, resume *model.Resume, before *model.Snapshot, section, summary string) error {
	version := &model.ResumeVersion{
		UserID:         userID,
		ResumeID:       resume.ID,
		Content:        resume.Snapshot(),
		ChangesSummary: fmt.Sprintf("%s: %s", section, summary),
		CreatedBy:      "ai",
	}
	if _, err := repo.Version().Create(ctx, version); err != nil {
		return goerr.Wrap(err, "failed to create resume version",
			goerr.V("userID", userID),
			goerr.V("resumeID", resume.ID),
			goerr.V("section", section),
		)
	}

	if trk != nil {
		trk.Track(ctx, userID, before, resume.Snapshot(), sessionID, "")
	}
	return nil
}

// failure builds the structured error result returned for domain-level
// problems (unknown section, missing resume, bad arguments). extra keys are
// merged in so each tool can keep its usual result shape.
func failure(message string, extra map[string]any) map[string]any {
	result := map[string]any{
		"success": false,
		"error":   message,
	}
	for k, v := range extra {
		result[k] = v
	}
	return result
}

// extractInt extracts an int value from args, accepting int, int64, or
// float64 since JSON decoding produces float64.
func extractInt(args map[string]any, key string) (int, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
