package embcache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/db"
	"github.com/careerdex/careerdex/internal/domain"
)

// fakeEmbedder answers every text with the same vector and counts calls.
type fakeEmbedder struct {
	vec        []float32
	tokens     int
	embedErr   error
	batchErr   error
	batchCalls int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if f.embedErr != nil {
		return domain.EmbeddingResult{}, f.embedErr
	}
	return domain.EmbeddingResult{
		Embedding:    f.vec,
		PromptTokens: f.tokens,
		TotalTokens:  f.tokens,
	}, nil
}

func (f *fakeEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	f.batchCalls++
	if f.batchErr != nil {
		return domain.BatchEmbeddingResult{}, f.batchErr
	}
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = f.vec
	}
	return domain.BatchEmbeddingResult{
		Embeddings:   embeddings,
		PromptTokens: f.tokens * len(texts),
		TotalTokens:  f.tokens * len(texts),
	}, nil
}

// fakeKV is an in-memory store with injectable failures.
type fakeKV struct {
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func newCached(t *testing.T, inner *fakeEmbedder, kv *fakeKV) *CachedEmbedder {
	t.Helper()
	return New(inner, kv, "test:", nil, zap.NewNop())
}
