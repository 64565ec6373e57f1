package sdk

import "time"

// Filters restricts search candidates by structured fields. All set fields
// must match.
type Filters struct {
	Skill      string `json:"skill,omitempty"`
	Title      string `json:"title,omitempty"`
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`
}

// SearchRequest is the body of POST /v1/search. An empty or "combined"
// domain searches across all domains with intent weighting.
type SearchRequest struct {
	Query   string   `json:"query"`
	Domain  string   `json:"domain,omitempty"`
	TopK    int      `json:"top_k,omitempty"`
	Filters *Filters `json:"filters,omitempty"`
}

// SalaryRange pairs an experience bracket with a salary band.
type SalaryRange struct {
	Experience string `json:"experience"`
	Salary     string `json:"salary"`
}

// SearchResult is a single hit.
type SearchResult struct {
	ID           string        `json:"id"`
	Domain       string        `json:"domain"`
	Title        string        `json:"title"`
	Similarity   float64       `json:"similarity"`
	Preview      string        `json:"preview,omitempty"`
	Skills       []string      `json:"skills,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	SalaryRanges []SalaryRange `json:"salary_ranges,omitempty"`
	Source       string        `json:"source,omitempty"`
	URL          string        `json:"url,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Items    []SearchResult `json:"items"`
	Total    int            `json:"total"`
	Intent   string         `json:"intent"`
	Keywords []string       `json:"keywords"`
}

// BuildResult summarizes one completed index build.
type BuildResult struct {
	Domain       string        `json:"domain"`
	Documents    int           `json:"documents"`
	Dimensions   int           `json:"dimensions"`
	TotalTokens  int           `json:"total_tokens"`
	Duration     time.Duration `json:"duration_ns"`
	IndexPath    string        `json:"index_location"`
	MetadataPath string        `json:"metadata_location"`
}

// HealthReport is the body of GET /health.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
