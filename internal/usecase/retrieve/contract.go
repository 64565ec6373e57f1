package retrieve

import (
	"context"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
	"github.com/careerdex/careerdex/internal/index"
)

// IndexLoader loads the live index/metadata pair for a domain.
type IndexLoader interface {
	Load(d domain.Domain) (*index.Handle, error)
}

// Catalog supplies the raw documents for lexical scoring.
type Catalog interface {
	Documents(d domain.Domain) ([]document.Document, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
