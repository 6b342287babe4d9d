package tracker

import (
	"fmt"
	"strings"

	"github.com/resume-lab/vitae/pkg/domain/model"
)

// valueDiff renders how a single value changed: a unified line diff when both
// sides are strings, otherwise a one-line type-change summary with both raw
// values attached.
func valueDiff(oldValue, newValue any) *model.ValueDiff {
	oldText, oldIsString := oldValue.(string)
	newText, newIsString := newValue.(string)

	if oldIsString && newIsString {
		return &model.ValueDiff{
			Kind:      "text",
			OldValue:  oldValue,
			NewValue:  newValue,
			DiffLines: unifiedDiff(oldText, newText),
			CharDiff:  len(newText) - len(oldText),
		}
	}

	return &model.ValueDiff{
		Kind:     "json",
		OldValue: oldValue,
		NewValue: newValue,
		Summary:  fmt.Sprintf("Changed from %s to %s", valueKind(oldValue), valueKind(newValue)),
	}
}

// unifiedDiff produces a conventional unified diff of two strings as one hunk
// with full context. Equal inputs yield no lines.
func unifiedDiff(oldText, newText string) []string {
	if oldText == newText {
		return []string{}
	}

	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	lines := make([]string, 0, len(oldLines)+len(newLines)+3)
	lines = append(lines,
		"--- old",
		"+++ new",
		fmt.Sprintf("@@ -1,%d +1,%d @@", len(oldLines), len(newLines)),
	)

	common := lcsTable(oldLines, newLines)
	i, j := 0, 0
	for i < len(oldLines) && j < len(newLines) {
		switch {
		case oldLines[i] == newLines[j]:
			lines = append(lines, " "+oldLines[i])
			i++
			j++
		case common[i+1][j] >= common[i][j+1]:
			lines = append(lines, "-"+oldLines[i])
			i++
		default:
			lines = append(lines, "+"+newLines[j])
			j++
		}
	}
	for ; i < len(oldLines); i++ {
		lines = append(lines, "-"+oldLines[i])
	}
	for ; j < len(newLines); j++ {
		lines = append(lines, "+"+newLines[j])
	}

	return lines
}

// lcsTable[i][j] is the length of the longest common subsequence of
// oldLines[i:] and newLines[j:]
func lcsTable(oldLines, newLines []string) [][]int {
	table := make([][]int, len(oldLines)+1)
	for i := range table {
		table[i] = make([]int, len(newLines)+1)
	}
	for i := len(oldLines) - 1; i >= 0; i-- {
		for j := len(newLines) - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}
	return table
}

func valueKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int32, int64, float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any, []string, []map[string]any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
