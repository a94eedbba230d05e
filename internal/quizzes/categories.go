package quizzes

import "strings"

// categoryAlias maps raw model category wording to a canonical display
// label. Ordered so normalization is deterministic.
type categoryAlias struct {
	raw       string
	canonical string
}

var categoryAliases = []categoryAlias{
	{"Technical Skills", "Technical Skills"},
	{"Technical", "Technical Skills"},
	{"Programming", "Technical Skills"},
	{"Coding", "Technical Skills"},
	{"Development", "Technical Skills"},
	{"Software", "Technical Skills"},
	{"Experience", "Experience"},
	{"Work Experience", "Experience"},
	{"Professional Experience", "Experience"},
	{"Employment", "Experience"},
	{"Education", "Education"},
	{"Academic", "Education"},
	{"Training", "Education"},
	{"Presentation", "Presentation"},
	{"Communication", "Presentation"},
	{"Soft Skills", "Presentation"},
	{"Leadership", "Leadership"},
	{"Management", "Leadership"},
	{"Project Management", "Leadership"},
	{"Problem Solving", "Problem Solving"},
	{"Analytical", "Problem Solving"},
	{"Critical Thinking", "Problem Solving"},
	{"General", "General Skills"},
}

// NormalizeCategory maps a model-produced category label onto the
// canonical display label. Exact match wins, then case-insensitive
// substring matching in either direction, then the raw label passes
// through untouched.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "General Skills"
	}

	for _, alias := range categoryAliases {
		if alias.raw == category {
			return alias.canonical
		}
	}

	lower := strings.ToLower(category)
	for _, alias := range categoryAliases {
		key := strings.ToLower(alias.raw)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return alias.canonical
		}
	}

	return category
}
