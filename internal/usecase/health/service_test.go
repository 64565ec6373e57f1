package health

import (
	"context"
	"errors"
	"testing"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/index"
)

type mockLoader struct {
	missing map[domain.Domain]bool
}

func (m *mockLoader) Load(d domain.Domain) (*index.Handle, error) {
	if m.missing[d] {
		return nil, domain.ErrIndexNotFound
	}
	return &index.Handle{}, nil
}

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockLoader{}, &mockEmbeddingChecker{}, &mockCachePinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["index:job"] != CheckOK || r.Checks["index:combined"] != CheckOK {
		t.Errorf("expected index checks ok, got %v", r.Checks)
	}
	if r.Checks["embedding"] != CheckOK || r.Checks["cache"] != CheckOK {
		t.Errorf("expected embedding and cache ok, got %v", r.Checks)
	}
}

func TestCheck_MissingIndexDegrades(t *testing.T) {
	svc := New(&mockLoader{missing: map[domain.Domain]bool{domain.DomainAdvice: true}}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index:advice"] != CheckError {
		t.Errorf("expected index:advice error, got %v", r.Checks)
	}
	if r.Checks["index:job"] != CheckOK {
		t.Errorf("expected index:job ok, got %v", r.Checks)
	}
}

func TestCheck_EmbeddingError(t *testing.T) {
	svc := New(&mockLoader{}, &mockEmbeddingChecker{err: errors.New("timeout")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["embedding"] != CheckError {
		t.Errorf("expected embedding error, got %v", r.Checks)
	}
}

func TestCheck_NilOptionalChecksAbsent(t *testing.T) {
	svc := New(&mockLoader{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["embedding"]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
	if _, ok := r.Checks["cache"]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
}
