// Package chi exposes the retrieval and build services over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
	"github.com/careerdex/careerdex/internal/domain/search/filter"
	"github.com/careerdex/careerdex/internal/domain/search/result"
	"github.com/careerdex/careerdex/internal/normalizer"
	builduc "github.com/careerdex/careerdex/internal/usecase/build"
	healthuc "github.com/careerdex/careerdex/internal/usecase/health"
	retrieveuc "github.com/careerdex/careerdex/internal/usecase/retrieve"
)

// Error codes returned in error response bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnknownDomain    = "unknown_domain"
	codeInvalidTopK      = "invalid_top_k"
	codeNoDocuments      = "no_documents"
	codeMixedDomains     = "mixed_domains"
	codeIndexNotFound    = "index_not_found"
	codeIndexCorrupted   = "index_corrupted"
	codeVectorMismatch   = "vector_dim_mismatch"
	codeEmbeddingError   = "embedding_provider_error"
	codeDocumentNotFound = "document_not_found"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the HTTP API: search, index builds, health, metrics.
type Server struct {
	retrieval     *retrieveuc.Service
	builds        *builduc.Service
	health        *healthuc.Service
	normalizer    *normalizer.Normalizer
	defaultTopK   int
	maxTopK       int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. Zero top-k limits fall back to 5/50.
func NewServer(
	retrieval *retrieveuc.Service,
	builds *builduc.Service,
	health *healthuc.Service,
	norm *normalizer.Normalizer,
	defaultTopK, maxTopK int,
	logger *zap.Logger,
) *Server {
	if defaultTopK < 1 {
		defaultTopK = 5
	}
	if maxTopK < 1 {
		maxTopK = 50
	}
	s := &Server{
		retrieval:   retrieval,
		builds:      builds,
		health:      health,
		normalizer:  norm,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidTopK, http.StatusBadRequest, codeInvalidTopK),
		sentinelHandler(domain.ErrUnknownDomain, http.StatusBadRequest, codeUnknownDomain),
		sentinelHandler(domain.ErrNoDocuments, http.StatusBadRequest, codeNoDocuments),
		sentinelHandler(domain.ErrMixedDomains, http.StatusBadRequest, codeMixedDomains),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeVectorMismatch),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusServiceUnavailable, codeIndexNotFound),
		sentinelHandler(domain.ErrIndexCorrupted, http.StatusServiceUnavailable, codeIndexCorrupted),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// Routes registers the API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Post("/build", s.BuildAll)
		r.Post("/domains/{domain}/build", s.BuildDomain)
	})
}

type searchFilters struct {
	Skill      string `json:"skill,omitempty"`
	Title      string `json:"title,omitempty"`
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`
}

type searchRequest struct {
	Query   string         `json:"query"`
	Domain  string         `json:"domain,omitempty"`
	TopK    int            `json:"top_k,omitempty"`
	Filters *searchFilters `json:"filters,omitempty"`
}

type searchResult struct {
	ID           string                 `json:"id"`
	Domain       string                 `json:"domain"`
	Title        string                 `json:"title"`
	Similarity   float64                `json:"similarity"`
	Preview      string                 `json:"preview,omitempty"`
	Skills       []string               `json:"skills,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	SalaryRanges []document.SalaryRange `json:"salary_ranges,omitempty"`
	Source       string                 `json:"source,omitempty"`
	URL          string                 `json:"url,omitempty"`
}

type searchResponse struct {
	Items    []searchResult `json:"items"`
	Total    int            `json:"total"`
	Intent   string         `json:"intent"`
	Keywords []string       `json:"keywords"`
}

// Search handles POST /v1/search. An absent or "combined" domain searches
// across all domains with intent weighting.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Query is required")
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k exceeds maximum")
		return
	}

	var filters filter.Filters
	if req.Filters != nil {
		filters = filter.Filters{
			Skill:      req.Filters.Skill,
			Title:      req.Filters.Title,
			Experience: req.Filters.Experience,
			Education:  req.Filters.Education,
		}
	}

	q := s.normalizer.Normalize(req.Query, filters)

	var (
		results []result.Result
		err     error
	)
	if req.Domain == "" || req.Domain == string(domain.DomainCombined) {
		results, err = s.retrieval.SearchCombined(r.Context(), q, topK)
	} else {
		var d domain.Domain
		d, err = domain.ParseDomain(req.Domain)
		if err == nil {
			results, err = s.retrieval.Search(r.Context(), q, d, topK)
		}
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResult, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:    items,
		Total:    len(items),
		Intent:   string(q.Intent()),
		Keywords: q.Keywords(),
	})
}

type buildResponse struct {
	Results []builduc.Result `json:"results"`
}

// BuildAll handles POST /v1/build. It rebuilds every domain index plus the
// combined index.
func (s *Server) BuildAll(w http.ResponseWriter, r *http.Request) {
	results, err := s.builds.BuildAll(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildResponse{Results: results})
}

// BuildDomain handles POST /v1/domains/{domain}/build.
func (s *Server) BuildDomain(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.builds.BuildDomain(r.Context(), d)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HealthCheck handles GET /health. Degraded reports 503 even though lexical
// search still answers; orchestrators treat it as "do not route new traffic".
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToItem(res *result.Result) searchResult {
	row := res.Row()
	return searchResult{
		ID:           row.DocumentID,
		Domain:       string(row.Domain),
		Title:        row.Title,
		Similarity:   res.Score(),
		Preview:      row.Preview,
		Skills:       row.Skills,
		Tags:         row.Tags,
		SalaryRanges: row.SalaryRanges,
		Source:       row.Source,
		URL:          row.URL,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidTopK,
		domain.ErrUnknownDomain,
		domain.ErrNoDocuments,
		domain.ErrMixedDomains,
		domain.ErrVectorDimMismatch,
		domain.ErrDocumentNotFound,
		domain.ErrIndexNotFound,
		domain.ErrIndexCorrupted,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
