package domain

import "errors"

var (
	// ErrUnknownDomain signals a domain identifier outside the known set.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrNoDocuments signals an empty document set passed to a build.
	ErrNoDocuments = errors.New("no documents")
	// ErrMixedDomains signals a build batch containing documents from more than one domain.
	ErrMixedDomains = errors.New("documents from mixed domains")
	// ErrIndexNotFound signals a missing index or metadata artifact.
	ErrIndexNotFound = errors.New("index not found")
	// ErrIndexCorrupted signals a metadata/vector count disagreement detected at load.
	ErrIndexCorrupted = errors.New("index corrupted")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidTopK signals a k below 1 on a search request.
	ErrInvalidTopK = errors.New("top k must be at least 1")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrDocumentNotFound signals a missing document in the catalog.
	ErrDocumentNotFound = errors.New("document not found")
)
