package core

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/agent/tool"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// editProfessionalSummaryTool replaces the professional summary section
type editProfessionalSummaryTool struct {
	repo      interfaces.Repository
	tracker   *tracker.Service
	userID    string
	sessionID string
}

func (t *editProfessionalSummaryTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "edit_professional_summary",
		Description: "Replace the resume's professional summary with new content",
		Parameters: map[string]*gollem.Parameter{
			"new_summary": {
				Type:        gollem.TypeString,
				Description: "The new professional summary text",
				Required:    true,
			},
		},
	}
}

func (t *editProfessionalSummaryTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	newSummary, _ := args["new_summary"].(string)

	tool.Update(ctx, "Updating professional summary...")
	resume, err := latestResume(ctx, t.repo, t.userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return failure("No resume found. Please create a resume first.", map[string]any{"preview": nil}), nil
	}

	before := resume.Snapshot()
	oldSummary := resume.Summary
	resume.Summary = strings.TrimSpace(newSummary)

	updated, err := t.repo.Resume().Update(ctx, resume)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update professional summary",
			goerr.V("userID", t.userID),
			goerr.V("resumeID", resume.ID),
		)
	}

	if err := recordMutation(ctx, t.repo, t.tracker, t.userID, t.sessionID, updated, before, "summary", "Professional summary updated"); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"message": "Successfully updated professional summary",
		"preview": map[string]any{
			"action":  "update_summary",
			"before":  oldSummary,
			"after":   updated.Summary,
			"summary": "Updated professional summary",
		},
	}, nil
}
