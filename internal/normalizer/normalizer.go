// Package normalizer turns free-text queries into normalized Query values:
// misspelling correction, keyword extraction, and intent classification.
package normalizer

import (
	"sort"
	"strings"

	"github.com/careerdex/careerdex/internal/domain/query"
	"github.com/careerdex/careerdex/internal/domain/search/filter"
)

// Normalizer cleans and classifies free-text queries. It is stateless and
// safe for concurrent use.
type Normalizer struct {
	tables Tables
}

// New creates a normalizer with the given tables. Zero-value tables fall
// back to the defaults per table, so configuration may override just one.
func New(tables Tables) *Normalizer {
	def := DefaultTables()
	if tables.Corrections == nil {
		tables.Corrections = def.Corrections
	}
	if tables.Tech == nil {
		tables.Tech = def.Tech
	}
	if tables.Job == nil {
		tables.Job = def.Job
	}
	if tables.Resume == nil {
		tables.Resume = def.Resume
	}
	if tables.Profile == nil {
		tables.Profile = def.Profile
	}
	return &Normalizer{tables: tables}
}

// Normalize lowercases and corrects the raw text, extracts keywords, and
// classifies intent. Keywords are never empty for non-empty input.
func (n *Normalizer) Normalize(raw string, filters filter.Filters) query.Query {
	normalized := n.correct(strings.ToLower(strings.TrimSpace(raw)))

	techHits := scan(normalized, n.tables.Tech)
	jobHits := scan(normalized, n.tables.Job)
	resumeHits := scan(normalized, n.tables.Resume)
	profileHits := scan(normalized, n.tables.Profile)

	keywords := dedupe(append(append(append(techHits, jobHits...), resumeHits...), profileHits...))
	if len(keywords) == 0 {
		keywords = n.fallbackKeywords(normalized)
	}

	intent := classify(len(techHits)+len(jobHits), len(resumeHits), len(profileHits))

	return query.New(raw, normalized, keywords, intent, filters)
}

// correct replaces each whitespace token found in the corrections table.
// It is a closed map, not a fuzzy match: unknown tokens pass through.
func (n *Normalizer) correct(text string) string {
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if fixed, ok := n.tables.Corrections[tok]; ok {
			tokens[i] = fixed
		}
	}
	return strings.Join(tokens, " ")
}

// fallbackKeywords returns the non-trivial tokens of the text, with trailing
// question marks and interrogative particles stripped. When even that leaves
// nothing, the whole normalized text becomes the single keyword.
func (n *Normalizer) fallbackKeywords(normalized string) []string {
	var keywords []string
	for _, tok := range strings.Fields(normalized) {
		tok = strings.TrimRight(tok, "?？")
		if tok == "" {
			continue
		}
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		keywords = append(keywords, tok)
	}
	if len(keywords) == 0 && normalized != "" {
		keywords = []string{strings.TrimRight(normalized, "?？")}
	}
	return dedupe(keywords)
}

// scan collects the canonical keyword of every table term contained in the
// text. Containment (not token membership) keeps unsegmented Thai working.
// Terms are scanned longest-first so "software engineer" wins over "engineer".
func scan(text string, table map[string]string) []string {
	terms := make([]string, 0, len(table))
	for term := range table {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	var hits []string
	for _, term := range terms {
		if strings.Contains(text, term) {
			hits = append(hits, table[term])
		}
	}
	return dedupe(hits)
}

// classify picks the intent with the highest match count. Profile-specific
// language is rarer and more specific, so ties resolve profile over resume
// over job; all-zero counts mean no signal at all.
func classify(jobCount, resumeCount, profileCount int) query.Intent {
	maxCount := jobCount
	if resumeCount > maxCount {
		maxCount = resumeCount
	}
	if profileCount > maxCount {
		maxCount = profileCount
	}

	switch {
	case maxCount == 0:
		return query.IntentUnspecified
	case profileCount == maxCount:
		return query.IntentProfile
	case resumeCount == maxCount:
		return query.IntentResume
	default:
		return query.IntentJob
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
