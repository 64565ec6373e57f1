package careerdex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
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

func newTestClient(t *testing.T) *Client {
	t.Helper()

	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, "normalized_jobs", "sw-dev.json"), `{
		"id": "sw-dev",
		"titles": ["Software Developer"],
		"description": "Designs and builds applications.",
		"skills": ["go"]
	}`)
	writeFile(t, filepath.Join(dataDir, "career_advices.json"), `[
		{"id": "adv-1", "title": "Resume tips", "content": "Keep your resume short.", "tags": ["resume"]}
	]`)
	writeFile(t, filepath.Join(dataDir, "profiles", "users.json"), `[
		{"id": "user-1", "name": "Somchai", "institution": "KMUTT", "skills": ["python"]}
	]`)

	c, err := New(WithDataDir(dataDir), WithDimensions(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestClient_BuildAndSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	results, err := c.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// job, advice, profile, combined
	if len(results) != 4 {
		t.Fatalf("expected 4 build results, got %d", len(results))
	}
	for _, r := range results {
		if r.Documents == 0 {
			t.Errorf("build %s: expected documents", r.Domain)
		}
		if r.Dimensions != 16 {
			t.Errorf("build %s: dimensions got %d, want 16", r.Domain, r.Dimensions)
		}
	}

	hits, err := c.Search(ctx, "developer", SearchOptions{Domain: "job", TopK: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ID != "sw-dev" || hits[0].Domain != "job" {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
	if hits[0].Similarity <= 0 || hits[0].Similarity > 1 {
		t.Errorf("similarity out of range: %v", hits[0].Similarity)
	}
}

func TestClient_SearchWithoutIndexFallsBackToLexical(t *testing.T) {
	c := newTestClient(t)

	hits, err := c.Search(context.Background(), "developer", SearchOptions{Domain: "job"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "sw-dev" {
		t.Fatalf("expected lexical hit for sw-dev, got %+v", hits)
	}
}

func TestClient_CombinedSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := c.Search(ctx, "developer", SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected combined results")
	}
	for _, h := range hits {
		if h.Domain == "" {
			t.Errorf("hit %s missing domain", h.ID)
		}
	}
}

func TestClient_BuildDomain_Unknown(t *testing.T) {
	c := newTestClient(t)

	if _, err := c.BuildDomain(context.Background(), "nonsense"); err == nil {
		t.Fatal("expected error for unknown domain")
	}
}

func TestClient_SearchWithSkillFilter(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if _, err := c.Build(ctx); err != nil {
		t.Fatalf("Build: %v", err)
	}

	hits, err := c.Search(ctx, "developer", SearchOptions{Domain: "job", Skill: "go"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "sw-dev" {
		t.Fatalf("expected sw-dev for skill go, got %+v", hits)
	}
}
