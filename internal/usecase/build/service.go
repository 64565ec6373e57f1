// Package build turns document sets into persisted vector indexes.
package build

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
	"github.com/careerdex/careerdex/internal/index"
	"github.com/careerdex/careerdex/internal/metrics"
)

// Result summarizes one completed build, including where the live
// artifacts were written.
type Result struct {
	Domain       domain.Domain `json:"domain"`
	Documents    int           `json:"documents"`
	Dimensions   int           `json:"dimensions"`
	TotalTokens  int           `json:"total_tokens"`
	Duration     time.Duration `json:"duration_ns"`
	IndexPath    string        `json:"index_location"`
	MetadataPath string        `json:"metadata_location"`
}

// Service builds vector indexes from catalog documents. One service instance
// is bound to one embedder, so a single index never mixes vectors from
// different embedding sources.
type Service struct {
	store        IndexStore
	catalog      Catalog
	embedder     Embedder
	embedderName string
	logger       *zap.Logger
}

// New creates a build service. embedderName is recorded in build metadata so
// retrieval can tell which embedder produced a loaded index.
func New(store IndexStore, catalog Catalog, embedder Embedder, embedderName string, logger *zap.Logger) *Service {
	return &Service{
		store:        store,
		catalog:      catalog,
		embedder:     embedder,
		embedderName: embedderName,
		logger:       logger,
	}
}

// Build embeds the given documents and persists the index for domain d.
// Every document must belong to d unless d is the combined domain, which
// accepts any mix and tags each row with its source domain.
func (s *Service) Build(ctx context.Context, d domain.Domain, docs []document.Document) (Result, error) {
	start := time.Now()

	if len(docs) == 0 {
		metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
		return Result{}, fmt.Errorf("build %s: %w", d, domain.ErrNoDocuments)
	}
	if d != domain.DomainCombined {
		for i := range docs {
			if docs[i].Domain() != d {
				metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
				return Result{}, fmt.Errorf("build %s: document %q is from %s: %w",
					d, docs[i].ID(), docs[i].Domain(), domain.ErrMixedDomains)
			}
		}
	}

	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].EmbeddingText()
	}

	batch, err := s.batchEmbed(ctx, texts)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
		return Result{}, fmt.Errorf("build %s: %w", d, err)
	}

	idx, err := index.NewFlat(len(batch.Embeddings[0]))
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
		return Result{}, fmt.Errorf("build %s: %w", d, err)
	}
	rows := make([]document.MetadataRow, len(docs))
	for i := range docs {
		if err = idx.Add(batch.Embeddings[i]); err != nil {
			metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
			return Result{}, fmt.Errorf("build %s: document %q: %w", d, docs[i].ID(), err)
		}
		rows[i] = document.NewMetadataRow(&docs[i])
	}

	if err = s.store.Save(d, idx, rows, s.embedderName); err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(string(d), "error").Inc()
		return Result{}, fmt.Errorf("build %s: %w", d, err)
	}

	metrics.IndexBuildsTotal.WithLabelValues(string(d), "success").Inc()
	metrics.IndexDocuments.WithLabelValues(string(d)).Set(float64(idx.Len()))

	res := Result{
		Domain:       d,
		Documents:    len(docs),
		Dimensions:   idx.Dim(),
		TotalTokens:  batch.TotalTokens,
		Duration:     time.Since(start),
		IndexPath:    s.store.IndexPath(d),
		MetadataPath: s.store.MetadataPath(d),
	}
	s.logger.Info("Built index",
		zap.String("domain", string(d)),
		zap.Int("documents", res.Documents),
		zap.Int("dimensions", res.Dimensions),
		zap.Int("total_tokens", res.TotalTokens),
		zap.Duration("duration", res.Duration),
		zap.String("index_path", res.IndexPath),
	)
	return res, nil
}

// BuildDomain loads one domain's documents from the catalog and builds its index.
func (s *Service) BuildDomain(ctx context.Context, d domain.Domain) (Result, error) {
	if d == domain.DomainCombined {
		return s.BuildCombined(ctx)
	}
	docs, err := s.catalog.Documents(d)
	if err != nil {
		return Result{}, fmt.Errorf("load %s documents: %w", d, err)
	}
	return s.Build(ctx, d, docs)
}

// BuildCombined builds the cross-domain index from every catalog document,
// in job, advice, profile order.
func (s *Service) BuildCombined(ctx context.Context) (Result, error) {
	var all []document.Document
	for _, d := range domain.Domains() {
		docs, err := s.catalog.Documents(d)
		if err != nil {
			return Result{}, fmt.Errorf("load %s documents: %w", d, err)
		}
		all = append(all, docs...)
	}
	return s.Build(ctx, domain.DomainCombined, all)
}

// BuildAll builds each single-domain index plus the combined index. Domains
// with no documents are skipped with a warning; the combined build still
// requires at least one document overall.
func (s *Service) BuildAll(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(domain.Domains())+1)

	for _, d := range domain.Domains() {
		docs, err := s.catalog.Documents(d)
		if err != nil {
			return results, fmt.Errorf("load %s documents: %w", d, err)
		}
		if len(docs) == 0 {
			s.logger.Warn("No documents for domain, skipping build", zap.String("domain", string(d)))
			continue
		}
		res, err := s.Build(ctx, d, docs)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	combined, err := s.BuildCombined(ctx)
	if err != nil {
		return results, err
	}
	return append(results, combined), nil
}

func (s *Service) batchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embedder.(domain.BatchEmbedder); ok {
		batch, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return batch, nil
	}
	return domain.BatchFallback(ctx, s.embedder, texts)
}
