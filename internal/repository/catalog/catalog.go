// Package catalog reads the source documents from the on-disk JSON layout:
// one file per job under normalized_jobs/, an aggregate career_advices.json,
// and an aggregate profiles/users.json.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/careerdex/careerdex/internal/domain"
	"github.com/careerdex/careerdex/internal/domain/document"
)

const (
	jobsDir     = "normalized_jobs"
	advicesFile = "career_advices.json"
	usersFile   = "profiles/users.json"
)

// Catalog loads documents from a data directory. It is read-only and
// stateless; every call re-reads the filesystem.
type Catalog struct {
	root   string
	logger *zap.Logger
}

// New creates a catalog rooted at dataDir.
func New(dataDir string, logger *zap.Logger) *Catalog {
	return &Catalog{root: dataDir, logger: logger}
}

// Documents returns all documents of one domain, sorted by ID.
func (c *Catalog) Documents(d domain.Domain) ([]document.Document, error) {
	switch d {
	case domain.DomainJob:
		return c.Jobs()
	case domain.DomainAdvice:
		return c.Advices()
	case domain.DomainProfile:
		return c.Profiles()
	default:
		return nil, fmt.Errorf("catalog: %q: %w", d, domain.ErrUnknownDomain)
	}
}

// Get returns a single document by domain and ID.
func (c *Catalog) Get(d domain.Domain, id string) (document.Document, error) {
	docs, err := c.Documents(d)
	if err != nil {
		return document.Document{}, err
	}
	for i := range docs {
		if docs[i].ID() == id {
			return docs[i], nil
		}
	}
	return document.Document{}, fmt.Errorf("catalog: %s/%s: %w", d, id, domain.ErrDocumentNotFound)
}

type jobFile struct {
	ID               string                 `json:"id"`
	Titles           []string               `json:"titles"`
	Description      string                 `json:"description"`
	Responsibilities []string               `json:"responsibilities"`
	Skills           flexibleNames          `json:"skills"`
	SalaryRanges     []document.SalaryRange `json:"salary_ranges"`
	Education        []string               `json:"education"`
}

// Jobs reads every *.json file under normalized_jobs/. Unparseable or
// invalid files are skipped with a warning so one bad document cannot
// block a rebuild of the rest.
func (c *Catalog) Jobs() ([]document.Document, error) {
	pattern := filepath.Join(c.root, jobsDir, "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("catalog: glob jobs: %w", err)
	}
	sort.Strings(paths)

	docs := make([]document.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from our own glob
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", path, err)
		}

		var jf jobFile
		if err := json.Unmarshal(data, &jf); err != nil {
			c.logger.Warn("Skipping unparseable job file", zap.String("path", path), zap.Error(err))
			continue
		}

		doc, err := document.NewJob(jf.ID, document.JobFields{
			Titles:           jf.Titles,
			Description:      jf.Description,
			Responsibilities: jf.Responsibilities,
			Skills:           jf.Skills,
			SalaryRanges:     jf.SalaryRanges,
			Education:        jf.Education,
		})
		if err != nil {
			c.logger.Warn("Skipping invalid job document", zap.String("path", path), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	sortByID(docs)
	return docs, nil
}

type adviceItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Source  string   `json:"source"`
	URL     string   `json:"url"`
}

// Advices reads career_advices.json. The file is either a bare array or an
// object with a "career_advices" array.
func (c *Catalog) Advices() ([]document.Document, error) {
	path := filepath.Join(c.root, advicesFile)
	data, err := os.ReadFile(path) //nolint:gosec // path is config-derived
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var items []adviceItem
	var wrapped struct {
		CareerAdvices []adviceItem `json:"career_advices"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.CareerAdvices != nil {
		items = wrapped.CareerAdvices
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	docs := make([]document.Document, 0, len(items))
	for _, it := range items {
		doc, err := document.NewAdvice(it.ID, document.AdviceFields{
			Title:   it.Title,
			Content: it.Content,
			Tags:    it.Tags,
			Source:  it.Source,
			URL:     it.URL,
		})
		if err != nil {
			c.logger.Warn("Skipping invalid advice document", zap.String("id", it.ID), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	sortByID(docs)
	return docs, nil
}

type userItem struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Institution          string        `json:"institution"`
	EducationStatus      string        `json:"education_status"`
	Skills               flexibleNames `json:"skills"`
	ProgrammingLanguages flexibleNames `json:"programming_languages"`
	Tools                flexibleNames `json:"tools"`
}

// Profiles reads profiles/users.json (bare array of users).
func (c *Catalog) Profiles() ([]document.Document, error) {
	path := filepath.Join(c.root, usersFile)
	data, err := os.ReadFile(path) //nolint:gosec // path is config-derived
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var items []userItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	docs := make([]document.Document, 0, len(items))
	for _, it := range items {
		doc, err := document.NewProfile(it.ID, document.ProfileFields{
			Name:            it.Name,
			Institution:     it.Institution,
			EducationStatus: it.EducationStatus,
			Skills:          it.Skills,
			Languages:       it.ProgrammingLanguages,
			Tools:           it.Tools,
		})
		if err != nil {
			c.logger.Warn("Skipping invalid profile document", zap.String("id", it.ID), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}

	sortByID(docs)
	return docs, nil
}

func sortByID(docs []document.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })
}

// flexibleNames accepts either ["go", "sql"] or [{"name": "go", ...}].
// Both shapes occur in the source data.
type flexibleNames []string

func (f *flexibleNames) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*f = plain
		return nil
	}

	var objs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objs); err != nil {
		return fmt.Errorf("expected array of strings or objects with name: %w", err)
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	*f = names
	return nil
}
