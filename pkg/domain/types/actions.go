package types

import "fmt"

// ExperienceAction is the operation applied to the experience list
type ExperienceAction string

const (
	ExperienceAdd    ExperienceAction = "add"
	ExperienceUpdate ExperienceAction = "update"
	ExperienceRemove ExperienceAction = "remove"
)

// IsValid checks if the experience action is valid
func (a ExperienceAction) IsValid() bool {
	switch a {
	case ExperienceAdd, ExperienceUpdate, ExperienceRemove:
		return true
	default:
		return false
	}
}

// String returns the string representation of the experience action
func (a ExperienceAction) String() string {
	return string(a)
}

// ParseExperienceAction parses a string into an ExperienceAction
func ParseExperienceAction(s string) (ExperienceAction, error) {
	a := ExperienceAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action: %s", s)
	}
	return a, nil
}

// SkillsAction is the operation applied to the skills list
type SkillsAction string

const (
	SkillsAdd     SkillsAction = "add"
	SkillsRemove  SkillsAction = "remove"
	SkillsReplace SkillsAction = "replace"
)

// IsValid checks if the skills action is valid
func (a SkillsAction) IsValid() bool {
	switch a {
	case SkillsAdd, SkillsRemove, SkillsReplace:
		return true
	default:
		return false
	}
}

// String returns the string representation of the skills action
func (a SkillsAction) String() string {
	return string(a)
}

// ParseSkillsAction parses a string into a SkillsAction
func ParseSkillsAction(s string) (SkillsAction, error) {
	a := SkillsAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action: %s", s)
	}
	return a, nil
}
