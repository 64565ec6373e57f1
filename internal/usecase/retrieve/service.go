// Package retrieve implements k-NN search over the per-domain indexes with
// lexical fallback and intent-weighted cross-domain fusion.
package retrieve

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/query"
	"github.com/careerdex/careerdex/internal/domain/search/result"
	"github.com/careerdex/careerdex/internal/embedding"
	"github.com/careerdex/careerdex/internal/index"
	"github.com/careerdex/careerdex/internal/metrics"
)

// Config wires a retrieval service.
type Config struct {
	Store    IndexLoader
	Catalog  Catalog
	Embedder Embedder
	// EmbedderName selects the query text: the deterministic embedder keys
	// on exact text, so its queries embed the keyword string rather than
	// the normalized phrasing.
	EmbedderName      string
	FilterOverfetch   int
	CombinedOverfetch int
	Fusion            FusionWeights
	Lexical           LexicalWeights
	Logger            *zap.Logger
}

// Service answers search requests. It is read-only over the index artifacts
// and safe for concurrent use.
type Service struct {
	store             IndexLoader
	catalog           Catalog
	embedder          Embedder
	deterministic     bool
	filterOverfetch   int
	combinedOverfetch int
	fusion            FusionWeights
	lexical           LexicalWeights
	logger            *zap.Logger
}

// New creates a retrieval service, filling zero-valued tuning knobs with
// defaults.
func New(cfg Config) *Service {
	if cfg.FilterOverfetch < 3 {
		cfg.FilterOverfetch = 3
	}
	if cfg.CombinedOverfetch <= 0 {
		cfg.CombinedOverfetch = 2
	}
	if cfg.Fusion == (FusionWeights{}) {
		cfg.Fusion = DefaultFusionWeights()
	}
	if cfg.Lexical == (LexicalWeights{}) {
		cfg.Lexical = DefaultLexicalWeights()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		store:             cfg.Store,
		catalog:           cfg.Catalog,
		embedder:          cfg.Embedder,
		deterministic:     cfg.EmbedderName == embedding.Name,
		filterOverfetch:   cfg.FilterOverfetch,
		combinedOverfetch: cfg.CombinedOverfetch,
		fusion:            cfg.Fusion,
		lexical:           cfg.Lexical,
		logger:            cfg.Logger,
	}
}

// Search answers a single-domain query: k-NN over the domain index with
// post-retrieval filters and lexical top-up, or pure lexical scoring when
// the index cannot serve.
func (s *Service) Search(ctx context.Context, q query.Query, d domain.Domain, k int) ([]result.Result, error) {
	if k < 1 {
		return nil, domain.ErrInvalidTopK
	}

	start := time.Now()
	chain := []strategy{
		{name: "vector", run: s.searchVector},
		{name: "lexical", run: s.searchLexicalStrategy},
	}
	results, served, err := s.runChain(ctx, chain, q, d, k)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(d), "none", "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(d), served, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(string(d), served).Observe(time.Since(start).Seconds())
	return results, nil
}

// SearchCombined answers a cross-domain query over the combined index,
// discounting each hit by its domain's intent weight. When the combined
// index is unavailable the best single domain for the intent answers
// instead, unweighted; when no vector path can serve, lexical scoring over
// every domain's corpus answers.
func (s *Service) SearchCombined(ctx context.Context, q query.Query, k int) ([]result.Result, error) {
	if k < 1 {
		return nil, domain.ErrInvalidTopK
	}

	start := time.Now()
	chain := []strategy{
		{name: "combined", run: s.searchCombinedVector},
		{name: "lexical", run: s.searchLexicalStrategy},
	}
	results, served, err := s.runChain(ctx, chain, q, domain.DomainCombined, k)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(domain.DomainCombined), "none", "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(domain.DomainCombined), served, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(string(domain.DomainCombined), served).
		Observe(time.Since(start).Seconds())
	return results, nil
}

// searchCombinedVector runs k-NN over the combined index with intent
// weighting and the post-retrieval filter pass. A missing combined index
// degrades to vector search over the best single domain for the intent.
func (s *Service) searchCombinedVector(ctx context.Context, q query.Query, _ domain.Domain, k int) ([]result.Result, error) {
	handle, err := s.store.Load(domain.DomainCombined)
	if err != nil {
		s.logger.Warn("Combined index unavailable, searching best single domain",
			zap.String("intent", string(q.Intent())),
			zap.Error(err),
		)
		metrics.SearchDegradedTotal.WithLabelValues(string(domain.DomainCombined), "combined").Inc()
		return s.searchVector(ctx, q, bestDomain(q.Intent()), k)
	}

	fetchK := s.combinedOverfetch * k
	if !q.Filters().IsEmpty() {
		fetchK *= s.filterOverfetch
	}

	candidates, err := s.knn(ctx, q, handle, fetchK)
	if err != nil {
		return nil, err
	}

	filters := q.Filters()
	results := candidates[:0]
	for _, r := range candidates {
		if filters.Matches(r.Row()) {
			results = append(results, r)
		}
	}

	weights := s.fusion.ForIntent(q.Intent())
	for i := range results {
		if w, ok := weights[results[i].Domain()]; ok {
			results[i] = results[i].WithScore(results[i].Score() * w)
		}
	}

	sortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// searchVector is the primary strategy: embed, k-NN, filter, top up.
func (s *Service) searchVector(ctx context.Context, q query.Query, d domain.Domain, k int) ([]result.Result, error) {
	handle, err := s.store.Load(d)
	if err != nil {
		return nil, err
	}

	fetchK := k
	if !q.Filters().IsEmpty() {
		fetchK = k * s.filterOverfetch
	}

	candidates, err := s.knn(ctx, q, handle, fetchK)
	if err != nil {
		return nil, err
	}

	filters := q.Filters()
	results := candidates[:0]
	for _, r := range candidates {
		if filters.Matches(r.Row()) {
			results = append(results, r)
		}
	}
	sortResults(results)

	// Filtered-out candidates may leave fewer than k survivors; lexical
	// results fill the gap behind the primary ranking, never ahead of it.
	if len(results) < k {
		results = s.topUp(results, q, d, k)
	}

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// searchLexicalStrategy adapts SearchLexical to the strategy signature.
func (s *Service) searchLexicalStrategy(_ context.Context, q query.Query, d domain.Domain, k int) ([]result.Result, error) {
	return s.SearchLexical(q.Keywords(), d, k)
}

// knn embeds the query and converts hits to scored results, with L2
// distance mapped to similarity via 1/(1+d).
func (s *Service) knn(ctx context.Context, q query.Query, handle *index.Handle, fetchK int) ([]result.Result, error) {
	text := q.Normalized()
	if s.deterministic {
		text = q.KeywordString()
	}

	emb, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := handle.Search(emb.Embedding, fetchK)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	results := make([]result.Result, len(hits))
	for i, hit := range hits {
		results[i] = result.New(handle.Row(hit.Row), 1/(1+hit.Distance))
	}
	return results, nil
}

// topUp appends lexical results for missing slots, skipping IDs already
// present. The primary ordering stays ahead of fallback entries.
func (s *Service) topUp(primary []result.Result, q query.Query, d domain.Domain, k int) []result.Result {
	extra, err := s.SearchLexical(q.Keywords(), d, k)
	if err != nil {
		s.logger.Warn("Lexical top-up failed", zap.String("domain", string(d)), zap.Error(err))
		return primary
	}

	seen := make(map[string]struct{}, len(primary))
	for i := range primary {
		seen[primary[i].ID()] = struct{}{}
	}
	for _, r := range extra {
		if len(primary) >= k {
			break
		}
		if _, ok := seen[r.ID()]; ok {
			continue
		}
		primary = append(primary, r)
	}
	return primary
}
