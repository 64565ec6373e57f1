package query

import (
	"strings"

	"github.com/careerdex/careerdex/internal/domain/search/filter"
)

// Intent is the classified purpose of a query, used to weight cross-domain
// results.
type Intent string

const (
	// IntentUnspecified marks queries with no intent signal at all. It
	// weights like IntentJob downstream but keeps the distinction visible
	// to callers.
	IntentUnspecified Intent = "unspecified"
	// IntentJob marks queries about roles, responsibilities, and salaries.
	IntentJob Intent = "job"
	// IntentResume marks queries about resumes, applications, and interviews.
	IntentResume Intent = "resume"
	// IntentProfile marks queries about the user's own skills and background.
	IntentProfile Intent = "profile"
)

// Query is a normalized free-text query, ephemeral per request.
type Query struct {
	raw        string
	normalized string
	keywords   []string
	intent     Intent
	filters    filter.Filters
}

// New creates a Query. Normalization and classification happen in the
// normalizer package; this is the carrier between it and retrieval.
func New(raw, normalized string, keywords []string, intent Intent, filters filter.Filters) Query {
	return Query{
		raw:        raw,
		normalized: normalized,
		keywords:   append([]string(nil), keywords...),
		intent:     intent,
		filters:    filters,
	}
}

// Raw returns the original query text.
func (q *Query) Raw() string { return q.raw }

// Normalized returns the lowercased, spelling-corrected text.
func (q *Query) Normalized() string { return q.normalized }

// Keywords returns the extracted keywords. Non-empty for non-empty input.
func (q *Query) Keywords() []string { return q.keywords }

// KeywordString returns the keywords joined by spaces. The deterministic
// embedder keys on exact text, and keyword strings are more stable across
// query phrasings than the raw query.
func (q *Query) KeywordString() string { return strings.Join(q.keywords, " ") }

// Intent returns the classified intent.
func (q *Query) Intent() Intent { return q.intent }

// Filters returns the structured filters.
func (q *Query) Filters() filter.Filters { return q.filters }
