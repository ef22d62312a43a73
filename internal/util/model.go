package util

import (
	"sort"
	"strings"
)

// GetModelOrder returns the sort order for a model key (lower sorts first).
func GetModelOrder(modelKey string) int {
	lower := strings.ToLower(modelKey)
	newer := strings.Contains(lower, "4-5")

	rank := 100
	switch {
	case strings.Contains(lower, "opus"):
		rank = 10
	case strings.Contains(lower, "sonnet"):
		rank = 20
	case strings.Contains(lower, "haiku"):
		rank = 30
	}
	if rank < 100 && !newer {
		rank++
	}
	return rank
}

// SortModels returns a copy of models ordered opus, sonnet, haiku, newer
// generations first, then alphabetically.
func SortModels(models []string) []string {
	sorted := make([]string, len(models))
	copy(sorted, models)

	sort.Slice(sorted, func(i, j int) bool {
		orderI := GetModelOrder(sorted[i])
		orderJ := GetModelOrder(sorted[j])

		if orderI != orderJ {
			return orderI < orderJ
		}
		return sorted[i] < sorted[j]
	})

	return sorted
}
