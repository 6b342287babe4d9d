package types

import "fmt"

// ChangeType classifies a single tracked resume change
type ChangeType string

const (
	ChangePersonalInfo   ChangeType = "personal_info"
	ChangeSummary        ChangeType = "summary"
	ChangeExperienceAdd  ChangeType = "experience_add"
	ChangeExperienceEdit ChangeType = "experience_edit"
	ChangeExperienceDel  ChangeType = "experience_delete"
	ChangeSkillsAdd      ChangeType = "skills_add"
	ChangeSkillsEdit     ChangeType = "skills_edit"
	ChangeSkillsDel      ChangeType = "skills_delete"
	ChangeEducationAdd   ChangeType = "education_add"
	ChangeEducationEdit  ChangeType = "education_edit"
	ChangeEducationDel   ChangeType = "education_delete"
	ChangeFormat         ChangeType = "format_change"
	ChangeOther          ChangeType = "other"
)

// AllChangeTypes returns all valid change types
func AllChangeTypes() []ChangeType {
	return []ChangeType{
		ChangePersonalInfo,
		ChangeSummary,
		ChangeExperienceAdd,
		ChangeExperienceEdit,
		ChangeExperienceDel,
		ChangeSkillsAdd,
		ChangeSkillsEdit,
		ChangeSkillsDel,
		ChangeEducationAdd,
		ChangeEducationEdit,
		ChangeEducationDel,
		ChangeFormat,
		ChangeOther,
	}
}

// IsValid checks if the change type is valid
func (t ChangeType) IsValid() bool {
	switch t {
	case ChangePersonalInfo,
		ChangeSummary,
		ChangeExperienceAdd,
		ChangeExperienceEdit,
		ChangeExperienceDel,
		ChangeSkillsAdd,
		ChangeSkillsEdit,
		ChangeSkillsDel,
		ChangeEducationAdd,
		ChangeEducationEdit,
		ChangeEducationDel,
		ChangeFormat,
		ChangeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the change type
func (t ChangeType) String() string {
	return string(t)
}

// ParseChangeType parses a string into a ChangeType
func ParseChangeType(s string) (ChangeType, error) {
	t := ChangeType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid change type: %s", s)
	}
	return t, nil
}

// ArrayChangeType resolves the ADD/EDIT/DELETE change type for an array-valued
// section ("experience" or "education").
func ArrayChangeType(section string, kind ArrayChangeKind) ChangeType {
	switch section {
	case "experience":
		switch kind {
		case ArrayChangeAdd:
			return ChangeExperienceAdd
		case ArrayChangeDelete:
			return ChangeExperienceDel
		default:
			return ChangeExperienceEdit
		}
	case "education":
		switch kind {
		case ArrayChangeAdd:
			return ChangeEducationAdd
		case ArrayChangeDelete:
			return ChangeEducationDel
		default:
			return ChangeEducationEdit
		}
	default:
		return ChangeOther
	}
}

// ArrayChangeKind is the kind of positional array change
type ArrayChangeKind int

const (
	ArrayChangeAdd ArrayChangeKind = iota
	ArrayChangeEdit
	ArrayChangeDelete
)
