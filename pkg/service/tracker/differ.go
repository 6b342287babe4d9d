package tracker

import (
	"fmt"
	"reflect"
	"sort"
	"unicode/utf8"

	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
)

// Detected is one field-level difference found by a Differ, before it is
// stamped with identity and persisted as a ResumeChange.
type Detected struct {
	ChangeType  types.ChangeType
	Section     string
	FieldPath   string
	OldValue    any
	NewValue    any
	Description string
	Metadata    map[string]any
}

// Differ computes the field-level differences between two resume snapshots.
// The default implementation compares list sections positionally; replacing it
// with a content-addressed diff only requires a new Differ.
type Differ interface {
	Diff(oldSnap, newSnap *model.Snapshot) []Detected
}

// PositionalDiffer treats element i of old and new list sections as the same
// logical item purely by index. Reordering or mid-list insertion therefore
// shows up as edits of every shifted element.
type PositionalDiffer struct{}

var _ Differ = &PositionalDiffer{}

func (d *PositionalDiffer) Diff(oldSnap, newSnap *model.Snapshot) []Detected {
	changes := make([]Detected, 0)
	changes = append(changes, diffPersonalInfo(oldSnap.PersonalInfo, newSnap.PersonalInfo)...)
	changes = append(changes, diffSummary(oldSnap.Summary, newSnap.Summary)...)
	changes = append(changes, diffArray(oldSnap.Experience, newSnap.Experience, "experience")...)
	changes = append(changes, diffSkills(oldSnap.Skills, newSnap.Skills)...)
	changes = append(changes, diffArray(oldSnap.Education, newSnap.Education, "education")...)
	return changes
}

// diffPersonalInfo walks the union of keys and reports every differing value
func diffPersonalInfo(oldInfo, newInfo map[string]any) []Detected {
	keySet := make(map[string]struct{}, len(oldInfo)+len(newInfo))
	for key := range oldInfo {
		keySet[key] = struct{}{}
	}
	for key := range newInfo {
		keySet[key] = struct{}{}
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changes := make([]Detected, 0)
	for _, key := range keys {
		oldValue := oldInfo[key]
		newValue := newInfo[key]
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		changes = append(changes, Detected{
			ChangeType:  types.ChangePersonalInfo,
			Section:     "personalInfo",
			FieldPath:   "personalInfo." + key,
			OldValue:    oldValue,
			NewValue:    newValue,
			Description: fmt.Sprintf("Updated %s in personalInfo", key),
			Metadata:    map[string]any{"field": key},
		})
	}
	return changes
}

func diffSummary(oldSummary, newSummary string) []Detected {
	if oldSummary == newSummary {
		return nil
	}
	return []Detected{{
		ChangeType:  types.ChangeSummary,
		Section:     "summary",
		FieldPath:   "summary",
		OldValue:    oldSummary,
		NewValue:    newSummary,
		Description: "Updated professional summary",
		Metadata:    map[string]any{"char_diff": utf8.RuneCountInString(newSummary) - utf8.RuneCountInString(oldSummary)},
	}}
}

// diffArray compares a positional list section. The length pass (tail adds or
// deletes) and the overlap pass (edits) are independent: a pure append yields
// only ADD records, a pure truncation only DELETE records.
func diffArray(oldArray, newArray []map[string]any, section string) []Detected {
	changes := make([]Detected, 0)

	if len(newArray) > len(oldArray) {
		for i := len(oldArray); i < len(newArray); i++ {
			changes = append(changes, Detected{
				ChangeType:  types.ArrayChangeType(section, types.ArrayChangeAdd),
				Section:     section,
				FieldPath:   fmt.Sprintf("%s.%d", section, i),
				OldValue:    nil,
				NewValue:    newArray[i],
				Description: fmt.Sprintf("Added new %s entry", section),
				Metadata:    map[string]any{"index": i},
			})
		}
	} else if len(newArray) < len(oldArray) {
		for i := len(newArray); i < len(oldArray); i++ {
			changes = append(changes, Detected{
				ChangeType:  types.ArrayChangeType(section, types.ArrayChangeDelete),
				Section:     section,
				FieldPath:   fmt.Sprintf("%s.%d", section, i),
				OldValue:    oldArray[i],
				NewValue:    nil,
				Description: fmt.Sprintf("Removed %s entry", section),
				Metadata:    map[string]any{"index": i},
			})
		}
	}

	for i := 0; i < len(oldArray) && i < len(newArray); i++ {
		if reflect.DeepEqual(oldArray[i], newArray[i]) {
			continue
		}
		changes = append(changes, Detected{
			ChangeType:  types.ArrayChangeType(section, types.ArrayChangeEdit),
			Section:     section,
			FieldPath:   fmt.Sprintf("%s.%d", section, i),
			OldValue:    oldArray[i],
			NewValue:    newArray[i],
			Description: fmt.Sprintf("Modified %s entry #%d", section, i+1),
			Metadata:    map[string]any{"index": i},
		})
	}

	return changes
}

// diffSkills reports one SKILLS_EDIT per category whose list changed, with the
// set differences in metadata
func diffSkills(oldSkills, newSkills model.SkillsSection) []Detected {
	categories := []struct {
		name    string
		oldList []string
		newList []string
	}{
		{"technical", oldSkills.Technical, newSkills.Technical},
		{"soft", oldSkills.Soft, newSkills.Soft},
	}

	changes := make([]Detected, 0)
	for _, cat := range categories {
		if equalStrings(cat.oldList, cat.newList) {
			continue
		}
		changes = append(changes, Detected{
			ChangeType:  types.ChangeSkillsEdit,
			Section:     "skills",
			FieldPath:   "skills." + cat.name,
			OldValue:    cat.oldList,
			NewValue:    cat.newList,
			Description: fmt.Sprintf("Updated %s skills", cat.name),
			Metadata: map[string]any{
				"skill_type": cat.name,
				"added":      setDifference(cat.newList, cat.oldList),
				"removed":    setDifference(cat.oldList, cat.newList),
			},
		})
	}
	return changes
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// setDifference returns the members of a that are not in b, sorted
func setDifference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	diff := make([]string, 0)
	for _, s := range a {
		if _, ok := inB[s]; ok {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		diff = append(diff, s)
	}
	sort.Strings(diff)
	return diff
}
