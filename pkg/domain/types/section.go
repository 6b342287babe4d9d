package types

import "fmt"

// ResumeSection identifies a readable section of a resume
type ResumeSection string

const (
	SectionContact    ResumeSection = "contact"
	SectionSummary    ResumeSection = "summary"
	SectionExperience ResumeSection = "experience"
	SectionEducation  ResumeSection = "education"
	SectionSkills     ResumeSection = "skills"
)

// AllResumeSections returns all valid resume sections
func AllResumeSections() []ResumeSection {
	return []ResumeSection{
		SectionContact,
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills,
	}
}

// IsValid checks if the resume section is valid
func (s ResumeSection) IsValid() bool {
	switch s {
	case SectionContact,
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionSkills:
		return true
	default:
		return false
	}
}

// String returns the string representation of the resume section
func (s ResumeSection) String() string {
	return string(s)
}

// ParseResumeSection parses a string into a ResumeSection
func ParseResumeSection(s string) (ResumeSection, error) {
	section := ResumeSection(s)
	if !section.IsValid() {
		return "", fmt.Errorf("unknown section: %s", s)
	}
	return section, nil
}
