package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/resume-lab/vitae/pkg/agent/tool"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

// getResumeSectionTool retrieves one section of the user's current resume
type getResumeSectionTool struct {
	repo   interfaces.Repository
	userID string
}

func (t *getResumeSectionTool) Spec() gollem.ToolSpec {
	sections := types.AllResumeSections()
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.String()
	}

	return gollem.ToolSpec{
		Name:        "get_resume_section",
		Description: "Get the current content of a specific resume section",
		Parameters: map[string]*gollem.Parameter{
			"section_name": {
				Type:        gollem.TypeString,
				Description: "Section to retrieve",
				Required:    true,
				Enum:        names,
			},
		},
	}
}

func (t *getResumeSectionTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	sectionName, _ := args["section_name"].(string)

	tool.Update(ctx, fmt.Sprintf("Reading %s section...", sectionName))
	resume, err := latestResume(ctx, t.repo, t.userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return failure("No resume found for user", map[string]any{"data": nil}), nil
	}

	section, err := types.ParseResumeSection(strings.ToLower(sectionName))
	if err != nil {
		return failure(fmt.Sprintf("Unknown section: %s", sectionName), map[string]any{"data": nil}), nil
	}

	var data any
	switch section {
	case types.SectionContact:
		data = resume.Contact()
	case types.SectionSummary:
		data = resume.Summary
	case types.SectionExperience:
		entries := make([]map[string]any, 0, len(resume.Experience))
		for _, e := range resume.Experience {
			entries = append(entries, e.Map())
		}
		data = entries
	case types.SectionEducation:
		entries := make([]map[string]any, 0, len(resume.Education))
		for _, e := range resume.Education {
			entries = append(entries, e.Map())
		}
		data = entries
	case types.SectionSkills:
		data = append([]string{}, resume.Skills...)
	}

	var lastModified any
	if !resume.UpdatedAt.IsZero() {
		lastModified = resume.UpdatedAt.Format(time.RFC3339)
	}
	return map[string]any{
		"success":       true,
		"section":       sectionName,
		"data":          data,
		"last_modified": lastModified,
	}, nil
}

// getFullProfileTool retrieves the user's account profile
type getFullProfileTool struct {
	repo   interfaces.Repository
	userID string
}

func (t *getFullProfileTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "get_full_profile",
		Description: "Get the user's complete profile information",
		Parameters:  map[string]*gollem.Parameter{},
	}
}

func (t *getFullProfileTool) Run(ctx context.Context, _ map[string]any) (map[string]any, error) {
	tool.Update(ctx, "Reading profile...")
	profile, err := t.repo.Profile().Get(ctx, t.userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile",
			goerr.V("userID", t.userID),
		)
	}
	if profile == nil {
		return failure("Profile not found", map[string]any{"data": nil}), nil
	}

	var lastActive any
	if !profile.LastActive.IsZero() {
		lastActive = profile.LastActive.Format(time.RFC3339)
	}
	return map[string]any{
		"success": true,
		"data": map[string]any{
			"id":                profile.ID,
			"name":              profile.Name,
			"title":             profile.Title,
			"email":             profile.Email,
			"phone":             profile.Phone,
			"location":          profile.Location,
			"linkedin":          profile.Linkedin,
			"website":           profile.Website,
			"bio":               profile.Bio,
			"subscription_plan": profile.SubscriptionPlan,
			"resumes_created":   profile.ResumesCreated,
			"last_active":       lastActive,
		},
	}, nil
}

// searchResumeContentTool searches the resume text for a query string
type searchResumeContentTool struct {
	repo   interfaces.Repository
	userID string
}

func (t *searchResumeContentTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "search_resume_content",
		Description: "Search the resume's summary, work experience, and skills for specific content",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "Text to search for (case-insensitive substring match)",
				Required:    true,
			},
		},
	}
}

func (t *searchResumeContentTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)

	tool.Update(ctx, fmt.Sprintf("Searching resume for %q...", query))
	resume, err := latestResume(ctx, t.repo, t.userID)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return failure("No resume found", map[string]any{"matches": []map[string]any{}}), nil
	}

	needle := strings.ToLower(query)
	matches := []map[string]any{}

	if resume.Summary != "" && strings.Contains(strings.ToLower(resume.Summary), needle) {
		matches = append(matches, map[string]any{
			"section":    "summary",
			"content":    resume.Summary,
			"match_type": "text",
		})
	}

	for i, entry := range resume.Experience {
		if experienceMatches(entry.Map(), needle) {
			matches = append(matches, map[string]any{
				"section":    "experience",
				"index":      i,
				"content":    entry.Map(),
				"match_type": "experience_entry",
			})
		}
	}

	var matchingSkills []string
	for _, skill := range resume.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			matchingSkills = append(matchingSkills, skill)
		}
	}
	if len(matchingSkills) > 0 {
		matches = append(matches, map[string]any{
			"section":    "skills",
			"content":    matchingSkills,
			"match_type": "skills",
		})
	}

	return map[string]any{
		"success":       true,
		"query":         query,
		"matches":       matches,
		"total_matches": len(matches),
	}, nil
}

func experienceMatches(entry map[string]any, needle string) bool {
	for _, value := range entry {
		if strings.Contains(strings.ToLower(fmt.Sprint(value)), needle) {
			return true
		}
	}
	return false
}
