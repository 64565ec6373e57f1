package build

import (
	"context"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
	"github.com/careerdex/careerdex/internal/index"
)

// IndexStore persists built index/metadata pairs and reports where the
// live artifacts land.
type IndexStore interface {
	Save(d domain.Domain, idx *index.Flat, rows []document.MetadataRow, embedder string) error
	IndexPath(d domain.Domain) string
	MetadataPath(d domain.Domain) string
}

// Catalog supplies the source documents per domain.
type Catalog interface {
	Documents(d domain.Domain) ([]document.Document, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
