package model

import (
	"time"

	"github.com/google/uuid"
)

// ResumeID is a UUID-based identifier for Resume
type ResumeID string

// NewResumeID generates a new UUID v4 ResumeID
func NewResumeID() ResumeID {
	return ResumeID(uuid.New().String())
}

// Resume is the authoritative resume record. A profile may own several resume
// records historically; tools always target the most recently updated one.
type Resume struct {
	ID        ResumeID
	ProfileID string

	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	Linkedin string
	Website  string

	Summary    string
	Experience []ExperienceEntry
	Education  []EducationEntry
	Skills     []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExperienceEntry is one work experience item in a resume
type ExperienceEntry struct {
	ID          string
	Company     string
	Title       string
	StartDate   string
	EndDate     string
	Description string
	Location    string
	CreatedAt   string
	UpdatedAt   string
}

// Map converts the entry to a generic map, the shape used by tool results and
// snapshot diffing.
func (e ExperienceEntry) Map() map[string]any {
	m := map[string]any{
		"id":          e.ID,
		"company":     e.Company,
		"title":       e.Title,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"description": e.Description,
		"location":    e.Location,
	}
	if e.CreatedAt != "" {
		m["created_at"] = e.CreatedAt
	}
	if e.UpdatedAt != "" {
		m["updated_at"] = e.UpdatedAt
	}
	return m
}

// Merge overwrites the entry's fields with the keys present in data. Unknown
// keys are ignored; the entry id and timestamps are never merged.
func (e *ExperienceEntry) Merge(data map[string]any) {
	for key, value := range data {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "company":
			e.Company = s
		case "title":
			e.Title = s
		case "start_date":
			e.StartDate = s
		case "end_date":
			e.EndDate = s
		case "description":
			e.Description = s
		case "location":
			e.Location = s
		}
	}
}

// EducationEntry is one education item in a resume
type EducationEntry struct {
	ID          string
	School      string
	Degree      string
	Field       string
	StartDate   string
	EndDate     string
	Description string
}

// Map converts the entry to a generic map
func (e EducationEntry) Map() map[string]any {
	return map[string]any{
		"id":          e.ID,
		"school":      e.School,
		"degree":      e.Degree,
		"field":       e.Field,
		"start_date":  e.StartDate,
		"end_date":    e.EndDate,
		"description": e.Description,
	}
}

// Contact returns the contact section of the resume as a map
func (r *Resume) Contact() map[string]any {
	return map[string]any{
		"name":     r.Name,
		"title":    r.Title,
		"email":    r.Email,
		"phone":    r.Phone,
		"location": r.Location,
		"linkedin": r.Linkedin,
		"website":  r.Website,
	}
}

// Snapshot converts the resume record into the diffable snapshot shape used by
// the change tracker. The flat skill list maps to the technical category.
func (r *Resume) Snapshot() *Snapshot {
	snap := &Snapshot{
		PersonalInfo: r.Contact(),
		Summary:      r.Summary,
		Skills: SkillsSection{
			Technical: append([]string{}, r.Skills...),
		},
	}
	for _, e := range r.Experience {
		snap.Experience = append(snap.Experience, e.Map())
	}
	for _, e := range r.Education {
		snap.Education = append(snap.Education, e.Map())
	}
	return snap
}
