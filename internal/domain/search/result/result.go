package result

import (
	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
)

// Result is a single search hit: a metadata row plus its similarity score.
type Result struct {
	row   document.MetadataRow
	score float64
}

// New creates a search result.
func New(row document.MetadataRow, score float64) Result {
	return Result{row: row, score: score}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.row.DocumentID }

// Domain returns the document's knowledge domain.
func (r *Result) Domain() domain.Domain { return r.row.Domain }

// Title returns the display title.
func (r *Result) Title() string { return r.row.Title }

// Score returns the similarity score in (0, 1].
func (r *Result) Score() float64 { return r.score }

// Row returns the full metadata row.
func (r *Result) Row() document.MetadataRow { return r.row }

// WithScore returns a copy with the score replaced (used by rerankers).
func (r *Result) WithScore(score float64) Result {
	return Result{row: r.row, score: score}
}
