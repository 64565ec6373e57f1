package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
)

const (
	indexFile    = "index.bin"
	metadataFile = "metadata.json"
	backupsDir   = "backups"
	stagingDir   = ".staging"
)

// metadataTable is the persisted metadata artifact. Row i describes the
// vector at row i of the paired index file. The table carries no build
// timestamp: rebuilding from identical input must reproduce identical
// bytes.
type metadataTable struct {
	Count      int                    `json:"count"`
	Dimensions int                    `json:"dimensions"`
	Embedder   string                 `json:"embedder"`
	Items      []document.MetadataRow `json:"items"`
}

// Handle is an immutable, loaded index version: the vectors plus their
// row-aligned metadata. Request handlers receive a Handle rather than
// reading process-wide state, so a rebuild can swap the on-disk artifacts
// without touching in-flight queries.
type Handle struct {
	domain   domain.Domain
	index    *Flat
	rows     []document.MetadataRow
	embedder string
}

// Domain returns the domain this handle serves.
func (h *Handle) Domain() domain.Domain { return h.domain }

// Len returns the vector count.
func (h *Handle) Len() int { return h.index.Len() }

// Dim returns the vector dimension.
func (h *Handle) Dim() int { return h.index.Dim() }

// Embedder returns the embedder name recorded at build time.
func (h *Handle) Embedder() string { return h.embedder }

// Row returns the metadata row at the given index row.
func (h *Handle) Row(i int) document.MetadataRow { return h.rows[i] }

// Search runs exact k-NN against the loaded vectors.
func (h *Handle) Search(query []float32, k int) ([]Hit, error) {
	return h.index.Search(query, k)
}

// Store owns the per-domain index layout on disk:
//
//	<root>/<domain>/index.bin
//	<root>/<domain>/metadata.json
//	<root>/backups/<domain>-<timestamp>/
//
// Save writes into a staging directory, moves any previous live pair into a
// timestamped backup, then renames staging into place. The two artifacts are
// always replaced together; a reader between the two renames sees "index not
// found" and falls back to lexical search.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string, logger *zap.Logger) *Store {
	return &Store{root: root, logger: logger}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) liveDir(d domain.Domain) string {
	return filepath.Join(s.root, string(d))
}

// IndexPath returns the live index artifact path for a domain.
func (s *Store) IndexPath(d domain.Domain) string {
	return filepath.Join(s.liveDir(d), indexFile)
}

// MetadataPath returns the live metadata artifact path for a domain.
func (s *Store) MetadataPath(d domain.Domain) string {
	return filepath.Join(s.liveDir(d), metadataFile)
}

// Save persists an index and its row-aligned metadata for a domain,
// backing up and replacing any previous version.
func (s *Store) Save(d domain.Domain, idx *Flat, rows []document.MetadataRow, embedder string) error {
	if idx.Len() != len(rows) {
		return fmt.Errorf("%w: %d vectors, %d metadata rows", domain.ErrIndexCorrupted, idx.Len(), len(rows))
	}

	staging := filepath.Join(s.root, stagingDir, string(d))
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}

	indexData, err := idx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err = os.WriteFile(filepath.Join(staging, indexFile), indexData, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	table := metadataTable{
		Count:      len(rows),
		Dimensions: idx.Dim(),
		Embedder:   embedder,
		Items:      rows,
	}
	metaData, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err = os.WriteFile(filepath.Join(staging, metadataFile), metaData, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	// Move the previous live pair out of the way before the swap. This is a
	// precondition for the rest of the build: a crash here leaves no live
	// index at all, never a half-written one masquerading as valid.
	live := s.liveDir(d)
	if _, statErr := os.Stat(live); statErr == nil {
		backup := filepath.Join(s.root, backupsDir,
			fmt.Sprintf("%s-%s", d, time.Now().UTC().Format("20060102T150405.000")))
		if err = os.MkdirAll(filepath.Dir(backup), 0o755); err != nil {
			return fmt.Errorf("create backup dir: %w", err)
		}
		if err = os.Rename(live, backup); err != nil {
			return fmt.Errorf("backup previous index: %w", err)
		}
		s.logger.Info("Backed up previous index",
			zap.String("domain", string(d)), zap.String("backup", backup))
	}

	if err = os.Rename(staging, live); err != nil {
		return fmt.Errorf("swap index into place: %w", err)
	}

	s.logger.Info("Saved index",
		zap.String("domain", string(d)),
		zap.Int("vectors", idx.Len()),
		zap.Int("dimensions", idx.Dim()),
		zap.String("embedder", embedder),
	)
	return nil
}

// Load reads the live index/metadata pair for a domain and validates their
// alignment. Returns domain.ErrIndexNotFound when either artifact is absent
// and domain.ErrIndexCorrupted when row counts disagree; callers degrade to
// lexical search on both.
func (s *Store) Load(d domain.Domain) (*Handle, error) {
	indexData, err := os.ReadFile(s.IndexPath(d))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, s.IndexPath(d))
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	metaData, err := os.ReadFile(s.MetadataPath(d))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, s.MetadataPath(d))
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var idx Flat
	if err = idx.UnmarshalBinary(indexData); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	var table metadataTable
	if err = json.Unmarshal(metaData, &table); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	// Misaligned rows would return wrong documents for right scores, so a
	// count mismatch is fatal for this domain's index.
	if len(table.Items) != idx.Len() {
		return nil, fmt.Errorf("%w: %d metadata rows, %d vectors",
			domain.ErrIndexCorrupted, len(table.Items), idx.Len())
	}
	if table.Dimensions != 0 && table.Dimensions != idx.Dim() {
		return nil, fmt.Errorf("%w: metadata records dim %d, index has %d",
			domain.ErrIndexCorrupted, table.Dimensions, idx.Dim())
	}

	return &Handle{domain: d, index: &idx, rows: table.Items, embedder: table.Embedder}, nil
}
