// Package embedding provides the deterministic fallback embedder used when no
// real embedding provider is configured.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/careerdex/careerdex/internal/domain"
)

// Name identifies the deterministic embedder in build metadata.
const Name = "deterministic"

// Deterministic is a pseudo-random embedder keyed by the text's hash: the
// same text always yields the same unit-normalized vector, across calls and
// process restarts. It implements the same Embedder contract as a real
// provider, so retrieval code never branches on model availability.
//
// Vectors carry no semantic signal. A "deterministic" build is only
// comparable with queries embedded the same way, which is why build metadata
// records the embedder name and retrieval embeds the keyword string rather
// than free phrasing in this mode.
type Deterministic struct {
	dim int
}

var _ domain.Embedder = (*Deterministic)(nil)

// NewDeterministic creates a deterministic embedder of the given dimension.
func NewDeterministic(dim int) *Deterministic {
	return &Deterministic{dim: dim}
}

// Dim returns the output vector dimension.
func (d *Deterministic) Dim() int { return d.dim }

// Embed returns the hash-seeded unit vector for the text.
func (d *Deterministic) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float32, d.dim)
	var norm float64
	for i := range vec {
		v := rng.Float64()
		vec[i] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

// BatchEmbed embeds each text independently; determinism is per-text, so the
// batch path is just a loop.
func (d *Deterministic) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchFallback(ctx, d, texts)
}

// HealthCheck always succeeds; the fallback has no external dependency.
func (d *Deterministic) HealthCheck(_ context.Context) error { return nil }
