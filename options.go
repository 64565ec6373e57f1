package careerdex

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain/search/filter"
	retrieveuc "github.com/careerdex/careerdex/internal/usecase/retrieve"
)

// Embedder vectorizes text. Implementations plug a real embedding provider
// into the client; without one the deterministic fallback embedder is used.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult is a vector plus the token usage that produced it.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Result is a single search hit.
type Result struct {
	ID         string
	Domain     string
	Title      string
	Similarity float64
	Preview    string
	Skills     []string
	Tags       []string
	Source     string
	URL        string
}

// BuildResult summarizes one completed index build.
type BuildResult struct {
	Domain       string
	Documents    int
	Dimensions   int
	TotalTokens  int
	Duration     time.Duration
	IndexPath    string
	MetadataPath string
}

// SearchOptions tunes a Search call. The zero value searches all domains
// with the default result count.
type SearchOptions struct {
	// Domain restricts the search to one domain ("job", "advice", "profile").
	// Empty or "combined" searches across all domains with intent weighting.
	Domain string
	// TopK is the maximum number of results; zero means 5.
	TopK int
	// Skill, Title, Experience and Education filter candidates by their
	// structured fields after vector retrieval.
	Skill      string
	Title      string
	Experience string
	Education  string
}

func (o SearchOptions) filters() filter.Filters {
	return filter.Filters{
		Skill:      o.Skill,
		Title:      o.Title,
		Experience: o.Experience,
		Education:  o.Education,
	}
}

type clientConfig struct {
	dataDir       string
	indexDir      string
	dimensions    int
	embedder      Embedder
	embedderName  string
	cacheAddrs    []string
	cachePassword string
	fusion        retrieveuc.FusionWeights
	logger        *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:    "data",
		dimensions: 384,
		logger:     zap.NewNop(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithDataDir sets the document catalog root (default "data").
func WithDataDir(dir string) Option {
	return func(c *clientConfig) { c.dataDir = dir }
}

// WithIndexDir sets the index artifact root (default "<data_dir>/vector_db").
func WithIndexDir(dir string) Option {
	return func(c *clientConfig) { c.indexDir = dir }
}

// WithDimensions sets the vector dimension for the deterministic embedder
// (default 384). Ignored when a custom embedder is set.
func WithDimensions(dim int) Option {
	return func(c *clientConfig) {
		if dim > 0 {
			c.dimensions = dim
		}
	}
}

// WithEmbedder sets a custom embedding provider. The name is recorded in
// build metadata; indexes built with one embedder are only searchable with
// the same one.
func WithEmbedder(e Embedder, name string) Option {
	return func(c *clientConfig) {
		c.embedder = e
		c.embedderName = name
	}
}

// WithRedisCache enables the Redis embedding cache.
func WithRedisCache(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
	}
}

// WithFusionWeights overrides the intent weights for combined search
// (defaults 1.0, 0.65, 0.5).
func WithFusionWeights(match, related, distant float64) Option {
	return func(c *clientConfig) {
		c.fusion = retrieveuc.FusionWeights{Match: match, Related: related, Distant: distant}
	}
}

// WithLogger sets the client logger (default no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
