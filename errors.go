package careerdex

import "github.com/careerdex/careerdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnknownDomain          = domain.ErrUnknownDomain
	ErrNoDocuments            = domain.ErrNoDocuments
	ErrMixedDomains           = domain.ErrMixedDomains
	ErrIndexNotFound          = domain.ErrIndexNotFound
	ErrIndexCorrupted         = domain.ErrIndexCorrupted
	ErrInvalidTopK            = domain.ErrInvalidTopK
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrDocumentNotFound       = domain.ErrDocumentNotFound
)
