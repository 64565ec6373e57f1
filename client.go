// Package careerdex embeds the career knowledge retrieval engine in a Go
// process: per-domain vector indexes over jobs, advice and profiles, with
// lexical fallback and intent-weighted cross-domain search.
package careerdex

import (
	"context"
	"fmt"

	"github.com/careerdex/careerdex/internal/db"
	dbRedis "github.com/careerdex/careerdex/internal/db/redis"
	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/search/result"
	"github.com/careerdex/careerdex/internal/embedding"
	"github.com/careerdex/careerdex/internal/index"
	"github.com/careerdex/careerdex/internal/metrics"
	"github.com/careerdex/careerdex/internal/normalizer"
	"github.com/careerdex/careerdex/internal/repository/catalog"
	"github.com/careerdex/careerdex/internal/repository/embcache"
	builduc "github.com/careerdex/careerdex/internal/usecase/build"
	retrieveuc "github.com/careerdex/careerdex/internal/usecase/retrieve"
)

// Client is the careerdex SDK entry point.
type Client struct {
	cache    db.Store
	buildSvc *builduc.Service
	retrSvc  *retrieveuc.Service
	norm     *normalizer.Normalizer
}

// New creates a careerdex Client over a data directory. Without options the
// client reads documents from "data", keeps indexes under "data/vector_db",
// and embeds with the deterministic fallback embedder.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}
	if cfg.indexDir == "" {
		cfg.indexDir = cfg.dataDir + "/vector_db"
	}

	var cache db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("careerdex: create cache store: %w", err)
		}
		cache = s
	}

	var emb domain.Embedder
	name := cfg.embedderName
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
		if name == "" {
			name = "custom"
		}
	} else {
		emb = embedding.NewDeterministic(cfg.dimensions)
		name = embedding.Name
	}
	if cache != nil {
		emb = embcache.New(emb, cache, "careerdex:", metrics.EmbeddingCacheTotal, cfg.logger)
	}

	store := index.NewStore(cfg.indexDir, cfg.logger)
	cat := catalog.New(cfg.dataDir, cfg.logger)

	return &Client{
		cache:    cache,
		buildSvc: builduc.New(store, cat, emb, name, cfg.logger),
		retrSvc: retrieveuc.New(retrieveuc.Config{
			Store:        store,
			Catalog:      cat,
			Embedder:     emb,
			EmbedderName: name,
			Fusion:       cfg.fusion,
			Logger:       cfg.logger,
		}),
		norm: normalizer.New(normalizer.Tables{}),
	}, nil
}

// Close releases the embedding cache connection, if any.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Build rebuilds every domain index plus the combined index.
func (c *Client) Build(ctx context.Context) ([]BuildResult, error) {
	results, err := c.buildSvc.BuildAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("careerdex: build: %w", err)
	}
	out := make([]BuildResult, len(results))
	for i, r := range results {
		out[i] = BuildResult{
			Domain:       string(r.Domain),
			Documents:    r.Documents,
			Dimensions:   r.Dimensions,
			TotalTokens:  r.TotalTokens,
			Duration:     r.Duration,
			IndexPath:    r.IndexPath,
			MetadataPath: r.MetadataPath,
		}
	}
	return out, nil
}

// BuildDomain rebuilds one domain's index ("job", "advice", "profile",
// "combined").
func (c *Client) BuildDomain(ctx context.Context, d string) (BuildResult, error) {
	dom, err := domain.ParseDomain(d)
	if err != nil {
		return BuildResult{}, fmt.Errorf("careerdex: %w", err)
	}
	r, err := c.buildSvc.BuildDomain(ctx, dom)
	if err != nil {
		return BuildResult{}, fmt.Errorf("careerdex: build %s: %w", d, err)
	}
	return BuildResult{
		Domain:       string(r.Domain),
		Documents:    r.Documents,
		Dimensions:   r.Dimensions,
		TotalTokens:  r.TotalTokens,
		Duration:     r.Duration,
		IndexPath:    r.IndexPath,
		MetadataPath: r.MetadataPath,
	}, nil
}

// Search answers a free-text query. An empty or "combined" domain searches
// across all domains with intent weighting.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	topK := opts.TopK
	if topK == 0 {
		topK = 5
	}

	q := c.norm.Normalize(query, opts.filters())

	var (
		hits []result.Result
		err  error
	)
	if opts.Domain == "" || opts.Domain == string(domain.DomainCombined) {
		hits, err = c.retrSvc.SearchCombined(ctx, q, topK)
	} else {
		var d domain.Domain
		d, err = domain.ParseDomain(opts.Domain)
		if err == nil {
			hits, err = c.retrSvc.Search(ctx, q, d, topK)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("careerdex: search: %w", err)
	}

	out := make([]Result, len(hits))
	for i := range hits {
		row := hits[i].Row()
		out[i] = Result{
			ID:         row.DocumentID,
			Domain:     string(row.Domain),
			Title:      row.Title,
			Similarity: hits[i].Score(),
			Preview:    row.Preview,
			Skills:     row.Skills,
			Tags:       row.Tags,
			Source:     row.Source,
			URL:        row.URL,
		}
	}
	return out, nil
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
