package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/domain/model"
)

func TestExperienceEntry_Merge(t *testing.T) {
	entry := model.ExperienceEntry{
		ID:        "exp-1",
		Company:   "Initech",
		Title:     "Engineer",
		StartDate: "2020-01",
		EndDate:   "Present",
	}

	entry.Merge(map[string]any{
		"title":       "Senior Engineer",
		"description": "Led the platform team",
		"id":          "exp-override", // must be ignored
		"start_date":  2020,           // non-string, must be ignored
	})

	gt.V(t, entry.ID).Equal("exp-1")
	gt.V(t, entry.Company).Equal("Initech")
	gt.V(t, entry.Title).Equal("Senior Engineer")
	gt.V(t, entry.Description).Equal("Led the platform team")
	gt.V(t, entry.StartDate).Equal("2020-01")
}

func TestResume_Snapshot(t *testing.T) {
	resume := &model.Resume{
		ID:        model.NewResumeID(),
		ProfileID: "u1",
		Name:      "Jordan Example",
		Email:     "jordan@example.com",
		Summary:   "Seasoned backend engineer",
		Skills:    []string{"Go", "SQL"},
		Experience: []model.ExperienceEntry{
			{ID: "exp-1", Company: "Initech", Title: "Engineer", StartDate: "2020-01"},
		},
		Education: []model.EducationEntry{
			{ID: "edu-1", School: "State University", Degree: "BSc"},
		},
	}

	snap := resume.Snapshot()
	gt.V(t, snap.Summary).Equal("Seasoned backend engineer")
	gt.A(t, snap.Skills.Technical).Length(2)
	gt.A(t, snap.Experience).Length(1)
	gt.V(t, snap.Experience[0]["company"]).Equal("Initech")
	gt.A(t, snap.Education).Length(1)
	gt.V(t, snap.PersonalInfo["email"]).Equal("jordan@example.com")

	// Snapshot must be detached from the record
	snap.Skills.Technical[0] = "Rust"
	gt.V(t, resume.Skills[0]).Equal("Go")
}
