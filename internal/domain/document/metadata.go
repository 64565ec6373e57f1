package document

import "github.com/careerdex/careerdex/internal/domain"

// previewLimit caps the preview text stored per row, in runes.
const previewLimit = 300

// MetadataRow is the display and filter data for one indexed vector.
// Row i of a metadata table describes the vector at row i of its index;
// the two artifacts are persisted and replaced together.
type MetadataRow struct {
	DocumentID   string            `json:"id"`
	Domain       domain.Domain     `json:"domain"`
	Title        string            `json:"title"`
	Titles       []string          `json:"titles,omitempty"`
	Preview      string            `json:"preview,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	SalaryRanges []SalaryRange     `json:"salary_ranges,omitempty"`
	Education    []string          `json:"education,omitempty"`
	Source       string            `json:"source,omitempty"`
	URL          string            `json:"url,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// NewMetadataRow projects a document onto its metadata row.
func NewMetadataRow(d *Document) MetadataRow {
	row := MetadataRow{
		DocumentID:   d.ID(),
		Domain:       d.Domain(),
		Title:        d.Title(),
		Titles:       d.Titles(),
		Preview:      truncate(d.Body(), previewLimit),
		Skills:       d.Skills(),
		Tags:         d.Tags(),
		SalaryRanges: d.SalaryRanges(),
		Education:    d.Education(),
		Source:       d.Source(),
		URL:          d.URL(),
	}
	return row
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
