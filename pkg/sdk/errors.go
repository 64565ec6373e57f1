package sdk

import "fmt"

// Error codes returned by the API server.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnknownDomain    = "unknown_domain"
	CodeInvalidTopK      = "invalid_top_k"
	CodeNoDocuments      = "no_documents"
	CodeMixedDomains     = "mixed_domains"
	CodeIndexNotFound    = "index_not_found"
	CodeIndexCorrupted   = "index_corrupted"
	CodeEmbeddingError   = "embedding_provider_error"
	CodeDocumentNotFound = "document_not_found"
	CodeInternalError    = "internal_error"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("careerdex api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("careerdex api: %d: %s", e.Status, e.Message)
}
