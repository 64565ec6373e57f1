package filter

import (
	"strings"

	"github.com/careerdex/careerdex/internal/domain/document"
)

// Filters restricts search candidates by their structured fields. All set
// fields must match for a candidate to survive; matching is case-insensitive
// substring containment except Experience, which is an exact bracket match
// ("1-3", "5+"). Filtering happens after vector retrieval, so callers
// over-fetch candidates when filters are present.
type Filters struct {
	Skill      string
	Title      string
	Experience string
	Education  string
}

// IsEmpty reports whether no filter field is set.
func (f Filters) IsEmpty() bool {
	return f.Skill == "" && f.Title == "" && f.Experience == "" && f.Education == ""
}

// Matches reports whether the metadata row passes every set filter.
func (f Filters) Matches(row document.MetadataRow) bool {
	if f.Skill != "" && !containsFold(row.Skills, f.Skill) {
		return false
	}
	if f.Title != "" && !containsFold(row.Titles, f.Title) {
		return false
	}
	if f.Education != "" && !containsFold(row.Education, f.Education) {
		return false
	}
	if f.Experience != "" {
		found := false
		for _, sr := range row.SalaryRanges {
			if sr.Experience == f.Experience {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(entries []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), needle) {
			return true
		}
	}
	return false
}
