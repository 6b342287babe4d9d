package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/agent/tool"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// updateWorkExperienceTool adds, updates, or removes a work experience entry
type updateWorkExperienceTool struct {
	repo      interfaces.Repository
	tracker   *tracker.Service
	userID    string
	sessionID string
}

func (t *updateWorkExperienceTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "update_work_experience",
		Description: "Add, update, or remove a work experience entry on the resume",
		Parameters: map[string]*gollem.Parameter{
			"experience_data": {
				Type:        gollem.TypeObject,
				Description: "Work experience fields. For add, company, title and start_date are required; end_date defaults to Present. For update, only the supplied fields are changed.",
				Required:    false,
				Properties: map[string]*gollem.Parameter{
					"company":     {Type: gollem.TypeString, Description: "Company name"},
					"title":       {Type: gollem.TypeString, Description: "Job title"},
					"start_date":  {Type: gollem.TypeString, Description: "Start date"},
					"end_date":    {Type: gollem.TypeString, Description: "End date, or Present"},
					"description": {Type: gollem.TypeString, Description: "Role description"},
					"location":    {Type: gollem.TypeString, Description: "Work location"},
				},
			},
			"action": {
				Type:        gollem.TypeString,
				Description: "Operation to perform",
				Required:    true,
				Enum: []string{
					types.ExperienceAdd.String(),
					types.ExperienceUpdate.String(),
					types.ExperienceRemove.String(),
				},
			},
			"experience_index": {
				Type:        gollem.TypeInteger,
				Description: "0-based index of the entry to update or remove",
				Required:    false,
			},
		},
	}
}

func (t *updateWorkExperienceTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	action, _ := args["action"].(string)
	data, _ := args["experience_data"].(map[string]any)

	tool.Update(ctx, fmt.Sprintf("Updating work experience (%s)...", action))
	resume, err := latestResume(ctx, t.repo, t.userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return failure("No resume found. Please create a resume first.", map[string]any{"preview": nil}), nil
	}

	before := resume.Snapshot()
	original := experienceMaps(resume.Experience)

	parsed, parseErr := types.ParseExperienceAction(strings.ToLower(action))
	if parseErr != nil {
		return failure(fmt.Sprintf("Unknown action: %s", action), map[string]any{"preview": nil}), nil
	}

	switch parsed {
	case types.ExperienceAdd:
		for _, field := range []string{"company", "title", "start_date"} {
			if _, ok := data[field]; !ok {
				return failure(fmt.Sprintf("Missing required field: %s", field), map[string]any{"preview": nil}), nil
			}
		}
		entry := model.ExperienceEntry{
			ID:        uuid.New().String(),
			EndDate:   "Present",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		entry.Merge(data)
		resume.Experience = append(resume.Experience, entry)

	case types.ExperienceUpdate:
		index, ok := extractInt(args, "experience_index")
		if !ok || index < 0 || index >= len(resume.Experience) {
			return failure("Invalid experience index for update", map[string]any{"preview": nil}), nil
		}
		resume.Experience[index].Merge(data)
		resume.Experience[index].UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	case types.ExperienceRemove:
		index, ok := extractInt(args, "experience_index")
		if !ok || index < 0 || index >= len(resume.Experience) {
			return failure("Invalid experience index for removal", map[string]any{"preview": nil}), nil
		}
		resume.Experience = append(resume.Experience[:index], resume.Experience[index+1:]...)
	}

	updated, err := t.repo.Resume().Update(ctx, resume)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update work experience",
			goerr.V("userID", t.userID),
			goerr.V("resumeID", resume.ID),
			goerr.V("action", action),
		)
	}

	verb := pastTense(action)
	if err := recordMutation(ctx, t.repo, t.tracker, t.userID, t.sessionID, updated, before, "experience", fmt.Sprintf("Work experience %s", action)); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully %s work experience", verb),
		"preview": map[string]any{
			"action":  action,
			"before":  original,
			"after":   experienceMaps(updated.Experience),
			"summary": fmt.Sprintf("%s work experience entry", capitalize(verb)),
		},
	}, nil
}

func experienceMaps(entries []model.ExperienceEntry) []map[string]any {
	maps := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		maps = append(maps, e.Map())
	}
	return maps
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pastTense(action string) string {
	switch strings.ToLower(action) {
	case "add":
		return "added"
	case "update":
		return "updated"
	case "remove":
		return "removed"
	case "replace":
		return "replaced"
	default:
		return strings.ToLower(action) + "ed"
	}
}
