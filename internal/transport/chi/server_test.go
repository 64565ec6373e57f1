package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/embedding"
	"github.com/careerdex/careerdex/internal/index"
	"github.com/careerdex/careerdex/internal/normalizer"
	"github.com/careerdex/careerdex/internal/repository/catalog"
	builduc "github.com/careerdex/careerdex/internal/usecase/build"
	healthuc "github.com/careerdex/careerdex/internal/usecase/health"
	retrieveuc "github.com/careerdex/careerdex/internal/usecase/retrieve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newTestRouter wires real services over a temp data directory seeded with
// one document per domain.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tmp := t.TempDir()
	dataDir := filepath.Join(tmp, "data")
	indexDir := filepath.Join(tmp, "index")

	writeFile(t, filepath.Join(dataDir, "normalized_jobs", "sw-dev.json"), `{
		"id": "sw-dev",
		"titles": ["Software Developer"],
		"description": "Designs and builds applications.",
		"skills": ["go", "sql"]
	}`)
	writeFile(t, filepath.Join(dataDir, "career_advices.json"), `[
		{"id": "adv-1", "title": "Resume tips", "content": "Keep your resume short.", "tags": ["resume"]}
	]`)
	writeFile(t, filepath.Join(dataDir, "profiles", "users.json"), `[
		{"id": "user-1", "name": "Somchai", "institution": "KMUTT", "skills": ["python"]}
	]`)

	logger := zap.NewNop()
	emb := embedding.NewDeterministic(16)
	store := index.NewStore(indexDir, logger)
	cat := catalog.New(dataDir, logger)

	buildSvc := builduc.New(store, cat, emb, embedding.Name, logger)
	retrSvc := retrieveuc.New(retrieveuc.Config{
		Store:        store,
		Catalog:      cat,
		Embedder:     emb,
		EmbedderName: embedding.Name,
		Logger:       logger,
	})
	healthSvc := healthuc.New(store, nil, nil)
	norm := normalizer.New(normalizer.Tables{})

	server := NewServer(retrSvc, buildSvc, healthSvc, norm, 5, 50, logger)
	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestSearch_InvalidBody_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeBadRequest {
		t.Errorf("code: got %s, want %s", resp.Code, codeBadRequest)
	}
}

func TestSearch_MissingQuery_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{"domain": "job"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeValidationFailed {
		t.Errorf("code: got %s, want %s", resp.Code, codeValidationFailed)
	}
}

func TestSearch_NegativeTopK_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{"query": "developer", "domain": "job", "top_k": -1}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeInvalidTopK {
		t.Errorf("code: got %s, want %s", resp.Code, codeInvalidTopK)
	}
}

func TestSearch_TopKAboveMax_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{"query": "developer", "top_k": 1000}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeValidationFailed {
		t.Errorf("code: got %s, want %s", resp.Code, codeValidationFailed)
	}
}

func TestSearch_UnknownDomain_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{"query": "developer", "domain": "jobs"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeUnknownDomain {
		t.Errorf("code: got %s, want %s", resp.Code, codeUnknownDomain)
	}
}

func TestSearch_NoIndex_LexicalFallback(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/search", `{"query": "developer", "domain": "job"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected 1 result, got total=%d items=%d", resp.Total, len(resp.Items))
	}
	if resp.Items[0].ID != "sw-dev" {
		t.Errorf("id: got %s, want sw-dev", resp.Items[0].ID)
	}
	if resp.Intent != "job" {
		t.Errorf("intent: got %s, want job", resp.Intent)
	}
	if len(resp.Keywords) == 0 {
		t.Error("expected keywords in response")
	}
}

func TestBuildAll_ThenSearch(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, "POST", "/v1/build", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("build status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var buildResp buildResponse
	if err := json.NewDecoder(rr.Body).Decode(&buildResp); err != nil {
		t.Fatalf("decode build response: %v", err)
	}
	// job, advice, profile, combined
	if len(buildResp.Results) != 4 {
		t.Fatalf("expected 4 build results, got %d", len(buildResp.Results))
	}

	rr = doJSON(t, r, "POST", "/v1/search", `{"query": "developer", "domain": "job", "top_k": 3}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("search status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 result, got %d", resp.Total)
	}
	if resp.Items[0].ID != "sw-dev" {
		t.Errorf("id: got %s, want sw-dev", resp.Items[0].ID)
	}
	if resp.Items[0].Similarity <= 0 || resp.Items[0].Similarity > 1 {
		t.Errorf("similarity out of range: %v", resp.Items[0].Similarity)
	}
}

func TestSearch_CombinedDefault(t *testing.T) {
	r := newTestRouter(t)

	if rr := doJSON(t, r, "POST", "/v1/build", ""); rr.Code != http.StatusOK {
		t.Fatalf("build status: got %d: %s", rr.Code, rr.Body.String())
	}

	rr := doJSON(t, r, "POST", "/v1/search", `{"query": "developer"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("search status: got %d: %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("expected combined results")
	}
	for _, item := range resp.Items {
		if item.Domain == "" {
			t.Errorf("result %s missing domain tag", item.ID)
		}
	}
}

func TestBuildDomain_Job(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/domains/job/build", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var res builduc.Result
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode build result: %v", err)
	}
	if res.Domain != "job" {
		t.Errorf("domain: got %s, want job", res.Domain)
	}
	if res.Documents != 1 {
		t.Errorf("documents: got %d, want 1", res.Documents)
	}
	if res.IndexPath == "" || res.MetadataPath == "" {
		t.Errorf("missing artifact locations: %q, %q", res.IndexPath, res.MetadataPath)
	}
}

func TestBuildDomain_Unknown_400(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "POST", "/v1/domains/nonsense/build", "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeUnknownDomain {
		t.Errorf("code: got %s, want %s", resp.Code, codeUnknownDomain)
	}
}

func TestHealth_DegradedWithoutIndexes(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "GET", "/health", "")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestHealth_OKAfterBuild(t *testing.T) {
	r := newTestRouter(t)

	if rr := doJSON(t, r, "POST", "/v1/build", ""); rr.Code != http.StatusOK {
		t.Fatalf("build status: got %d: %s", rr.Code, rr.Body.String())
	}

	rr := doJSON(t, r, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status: got %s, want ok", resp.Status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rr := doJSON(t, r, "GET", "/metrics", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}
