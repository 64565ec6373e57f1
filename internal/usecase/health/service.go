// Package health aggregates component availability checks.
package health

import (
	"context"

	"github.com/careerdex/careerdex/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; retrieval still answers, possibly
	// from the lexical fallback.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	indexes   IndexLoader
	embedding EmbeddingChecker
	cache     CachePinger
}

// New creates a Service. embedding and cache can be nil.
func New(indexes IndexLoader, embedding EmbeddingChecker, cache CachePinger) *Service {
	return &Service{indexes: indexes, embedding: embedding, cache: cache}
}

// Check runs health checks against every index plus the optional embedding
// provider and cache. A missing index degrades but never fails the report;
// those queries are served lexically.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	for _, d := range append(domain.Domains(), domain.DomainCombined) {
		name := "index:" + string(d)
		if _, err := s.indexes.Load(d); err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
