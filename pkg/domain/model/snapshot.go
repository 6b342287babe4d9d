package model

// Snapshot is the full resume content at one instant, used as input to
// diffing. List-valued sections are compared positionally: element i in old vs
// new is treated as the same logical item purely by index.
type Snapshot struct {
	PersonalInfo map[string]any   `json:"personalInfo"`
	Summary      string           `json:"summary"`
	Experience   []map[string]any `json:"experience"`
	Skills       SkillsSection    `json:"skills"`
	Education    []map[string]any `json:"education"`
}

// SkillsSection is the categorized skills shape carried by snapshots
type SkillsSection struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	copied := &Snapshot{
		Summary: s.Summary,
		Skills: SkillsSection{
			Technical: append([]string(nil), s.Skills.Technical...),
			Soft:      append([]string(nil), s.Skills.Soft...),
		},
	}
	if s.PersonalInfo != nil {
		copied.PersonalInfo = make(map[string]any, len(s.PersonalInfo))
		for k, v := range s.PersonalInfo {
			copied.PersonalInfo[k] = v
		}
	}
	if s.Experience != nil {
		copied.Experience = make([]map[string]any, 0, len(s.Experience))
		for _, e := range s.Experience {
			entry := make(map[string]any, len(e))
			for k, v := range e {
				entry[k] = v
			}
			copied.Experience = append(copied.Experience, entry)
		}
	}
	if s.Education != nil {
		copied.Education = make([]map[string]any, 0, len(s.Education))
		for _, e := range s.Education {
			entry := make(map[string]any, len(e))
			for k, v := range e {
				entry[k] = v
			}
			copied.Education = append(copied.Education, entry)
		}
	}
	return copied
}
