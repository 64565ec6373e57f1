package retrieve

import (
	"sort"
	"strings"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
	"github.com/careerdex/careerdex/internal/domain/search/result"
)

// LexicalWeights are the keyword-containment scores per field class. The
// divisor turns the accumulated integer score into a similarity-shaped
// number; it is an approximation, not comparable with embedding similarity.
type LexicalWeights struct {
	IDTitle    int
	TitleField int
	Tag        int
	Body       int
	Divisor    float64
}

// DefaultLexicalWeights returns the standard 5/3/2/1 scoring with a
// divide-by-10 normalization.
func DefaultLexicalWeights() LexicalWeights {
	return LexicalWeights{IDTitle: 5, TitleField: 3, Tag: 2, Body: 1, Divisor: 10}
}

// SearchLexical scores every document in the domain by keyword containment:
// ID/primary title, structured title fields, tag and skill entries, and body
// text, each at its configured weight, accumulated across keywords. Documents
// with zero matches are excluded rather than ranked at zero.
func (s *Service) SearchLexical(keywords []string, d domain.Domain, k int) ([]result.Result, error) {
	if k < 1 {
		return nil, domain.ErrInvalidTopK
	}

	docs, err := s.lexicalDocuments(d)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(docs))
	for i := range docs {
		score := s.scoreDocument(&docs[i], keywords)
		if score == 0 {
			continue
		}
		row := document.NewMetadataRow(&docs[i])
		results = append(results, result.New(row, float64(score)/s.lexical.Divisor))
	}

	sortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// lexicalDocuments returns the scoring corpus for a domain; the combined
// domain scores over every single-domain corpus.
func (s *Service) lexicalDocuments(d domain.Domain) ([]document.Document, error) {
	if d != domain.DomainCombined {
		return s.catalog.Documents(d)
	}
	var all []document.Document
	for _, sd := range domain.Domains() {
		docs, err := s.catalog.Documents(sd)
		if err != nil {
			return nil, err
		}
		all = append(all, docs...)
	}
	return all, nil
}

func (s *Service) scoreDocument(doc *document.Document, keywords []string) int {
	id := strings.ToLower(doc.ID())
	title := strings.ToLower(doc.Title())
	// Alias titles beyond the primary one; the primary is already covered
	// by the ID/title weight.
	var aliases []string
	if all := doc.Titles(); len(all) > 1 {
		aliases = lowerAll(all[1:])
	}
	tags := lowerAll(append(append([]string(nil), doc.Tags()...), doc.Skills()...))
	body := strings.ToLower(doc.Body())

	var score int
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(id, kw) || strings.Contains(title, kw) {
			score += s.lexical.IDTitle
		}
		if containsAny(aliases, kw) {
			score += s.lexical.TitleField
		}
		if containsAny(tags, kw) {
			score += s.lexical.Tag
		}
		if strings.Contains(body, kw) {
			score += s.lexical.Body
		}
	}
	return score
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func containsAny(entries []string, kw string) bool {
	for _, e := range entries {
		if strings.Contains(e, kw) {
			return true
		}
	}
	return false
}

// sortResults orders by score descending, ties by document ID ascending.
func sortResults(results []result.Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		return results[i].ID() < results[j].ID()
	})
}
