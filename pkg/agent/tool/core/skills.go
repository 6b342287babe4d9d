package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/agent/tool"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"github.com/resume-lab/vitae/pkg/service/tracker"
)

// manageSkillsTool adds, removes, or replaces resume skills
type manageSkillsTool struct {
	repo      interfaces.Repository
	tracker   *tracker.Service
	userID    string
	sessionID string
}

func (t *manageSkillsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "manage_skills",
		Description: "Add, remove, or replace skills on the resume. Accepts a flat list of skills or a map of category to skill list; categorized input is flattened.",
		Parameters: map[string]*gollem.Parameter{
			"skills_data": {
				Type:        gollem.TypeArray,
				Description: "Skills to add, remove, or set",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeString,
				},
			},
			"action": {
				Type:        gollem.TypeString,
				Description: "Operation to perform",
				Required:    true,
				Enum: []string{
					types.SkillsAdd.String(),
					types.SkillsRemove.String(),
					types.SkillsReplace.String(),
				},
			},
		},
	}
}

func (t *manageSkillsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	action, _ := args["action"].(string)

	tool.Update(ctx, fmt.Sprintf("Managing skills (%s)...", action))
	resume, err := latestResume(ctx, t.repo, t.userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return failure("No resume found. Please create a resume first.", map[string]any{"preview": nil}), nil
	}

	incoming, ok := flattenSkills(args["skills_data"])
	if !ok {
		return failure("Invalid skills data format", map[string]any{"preview": nil}), nil
	}

	before := resume.Snapshot()
	original := append([]string{}, resume.Skills...)

	parsed, parseErr := types.ParseSkillsAction(strings.ToLower(action))
	if parseErr != nil {
		return failure(fmt.Sprintf("Unknown action: %s", action), map[string]any{"preview": nil}), nil
	}

	switch parsed {
	case types.SkillsAdd:
		current := append([]string{}, resume.Skills...)
		for _, skill := range incoming {
			trimmed := strings.TrimSpace(skill)
			if trimmed != "" && !containsSkill(current, trimmed) {
				current = append(current, trimmed)
			}
		}
		resume.Skills = current

	case types.SkillsRemove:
		kept := make([]string, 0, len(resume.Skills))
		for _, skill := range resume.Skills {
			if !containsSkill(incoming, skill) {
				kept = append(kept, skill)
			}
		}
		resume.Skills = kept

	case types.SkillsReplace:
		replaced := make([]string, 0, len(incoming))
		for _, skill := range incoming {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				replaced = append(replaced, trimmed)
			}
		}
		resume.Skills = replaced
	}

	updated, err := t.repo.Resume().Update(ctx, resume)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update skills",
			goerr.V("userID", t.userID),
			goerr.V("resumeID", resume.ID),
			goerr.V("action", action),
		)
	}

	verb := pastTense(action)
	if err := recordMutation(ctx, t.repo, t.tracker, t.userID, t.sessionID, updated, before, "skills", fmt.Sprintf("Skills %s", action)); err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully %s skills", verb),
		"preview": map[string]any{
			"action":  action,
			"before":  original,
			"after":   append([]string{}, updated.Skills...),
			"summary": fmt.Sprintf("%s skills", capitalize(verb)),
		},
	}, nil
}

// flattenSkills normalizes the skills_data argument into a flat list. A plain
// list passes through; a category map is flattened in sorted category order so
// the result is deterministic.
func flattenSkills(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		skills := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			skills = append(skills, s)
		}
		return skills, true
	case map[string]any:
		categories := make([]string, 0, len(v))
		for category := range v {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		var skills []string
		for _, category := range categories {
			flattened, ok := flattenSkills(v[category])
			if !ok {
				return nil, false
			}
			skills = append(skills, flattened...)
		}
		return skills, true
	default:
		return nil, false
	}
}

func containsSkill(skills []string, target string) bool {
	for _, skill := range skills {
		if skill == target {
			return true
		}
	}
	return false
}
