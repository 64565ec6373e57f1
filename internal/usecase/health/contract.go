package health

import (
	"context"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/index"
)

// IndexLoader loads index handles for availability checks.
type IndexLoader interface {
	Load(d domain.Domain) (*index.Handle, error)
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks embedding-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
