package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/careerdex/careerdex/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// SalaryRange pairs an experience bracket with a salary band, both kept as
// source text ("1-3", "30,000 - 50,000").
type SalaryRange struct {
	Experience string `json:"experience"`
	Salary     string `json:"salary"`
}

// Document is an immutable knowledge unit ready for embedding. The domain tag
// decides which fields are meaningful: job documents carry descriptions,
// responsibilities, skills and salary ranges; advice documents carry content,
// tags and a source; profile documents carry education and tooling fields.
// Identity is (domain, id). Re-ingestion replaces a document, never mutates it.
type Document struct {
	id     string
	domain domain.Domain

	titles           []string
	description      string
	responsibilities []string
	skills           []string
	salaryRanges     []SalaryRange
	education        []string

	content string
	tags    []string
	source  string
	url     string

	institution     string
	educationStatus string
	languages       []string
	tools           []string
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	return nil
}

// JobFields holds the ingestion payload for a job document.
type JobFields struct {
	Titles           []string
	Description      string
	Responsibilities []string
	Skills           []string
	SalaryRanges     []SalaryRange
	Education        []string
}

// NewJob validates and creates a job-domain document.
func NewJob(id string, f JobFields) (Document, error) {
	if err := validateID(id); err != nil {
		return Document{}, err
	}
	if len(f.Titles) == 0 || f.Titles[0] == "" {
		return Document{}, fmt.Errorf("job document %q: at least one title is required", id)
	}
	return Document{
		id:               id,
		domain:           domain.DomainJob,
		titles:           append([]string(nil), f.Titles...),
		description:      f.Description,
		responsibilities: append([]string(nil), f.Responsibilities...),
		skills:           append([]string(nil), f.Skills...),
		salaryRanges:     append([]SalaryRange(nil), f.SalaryRanges...),
		education:        append([]string(nil), f.Education...),
	}, nil
}

// AdviceFields holds the ingestion payload for a career-advice document.
type AdviceFields struct {
	Title   string
	Content string
	Tags    []string
	Source  string
	URL     string
}

// NewAdvice validates and creates an advice-domain document.
func NewAdvice(id string, f AdviceFields) (Document, error) {
	if err := validateID(id); err != nil {
		return Document{}, err
	}
	if f.Title == "" {
		return Document{}, fmt.Errorf("advice document %q: title is required", id)
	}
	if f.Content == "" {
		return Document{}, fmt.Errorf("advice document %q: content is required", id)
	}
	return Document{
		id:      id,
		domain:  domain.DomainAdvice,
		titles:  []string{f.Title},
		content: f.Content,
		tags:    append([]string(nil), f.Tags...),
		source:  f.Source,
		url:     f.URL,
	}, nil
}

// ProfileFields holds the ingestion payload for a user-profile document.
type ProfileFields struct {
	Name            string
	Institution     string
	EducationStatus string
	Skills          []string
	Languages       []string
	Tools           []string
}

// NewProfile validates and creates a profile-domain document.
func NewProfile(id string, f ProfileFields) (Document, error) {
	if err := validateID(id); err != nil {
		return Document{}, err
	}
	if f.Name == "" {
		return Document{}, fmt.Errorf("profile document %q: name is required", id)
	}
	return Document{
		id:              id,
		domain:          domain.DomainProfile,
		titles:          []string{f.Name},
		institution:     f.Institution,
		educationStatus: f.EducationStatus,
		skills:          append([]string(nil), f.Skills...),
		languages:       append([]string(nil), f.Languages...),
		tools:           append([]string(nil), f.Tools...),
	}, nil
}

// ID returns the document identifier, unique within its domain.
func (d *Document) ID() string { return d.id }

// Domain returns the knowledge domain tag.
func (d *Document) Domain() domain.Domain { return d.domain }

// Title returns the primary display title.
func (d *Document) Title() string {
	if len(d.titles) == 0 {
		return ""
	}
	return d.titles[0]
}

// Titles returns all known titles (job postings often carry aliases).
func (d *Document) Titles() []string { return d.titles }

// Description returns the job description text.
func (d *Document) Description() string { return d.description }

// Responsibilities returns the itemized responsibilities.
func (d *Document) Responsibilities() []string { return d.responsibilities }

// Skills returns the skill entries.
func (d *Document) Skills() []string { return d.skills }

// SalaryRanges returns the salary bands keyed by experience bracket.
func (d *Document) SalaryRanges() []SalaryRange { return d.salaryRanges }

// Education returns the education requirements.
func (d *Document) Education() []string { return d.education }

// Content returns the advice article body.
func (d *Document) Content() string { return d.content }

// Tags returns the advice tags.
func (d *Document) Tags() []string { return d.tags }

// Source returns the advice source name.
func (d *Document) Source() string { return d.source }

// URL returns the advice source URL.
func (d *Document) URL() string { return d.url }

// Institution returns the profile's institution.
func (d *Document) Institution() string { return d.institution }

// EducationStatus returns the profile's education status.
func (d *Document) EducationStatus() string { return d.educationStatus }

// Languages returns the profile's programming languages.
func (d *Document) Languages() []string { return d.languages }

// Tools returns the profile's tools.
func (d *Document) Tools() []string { return d.tools }

// Body returns the free-text body used for lexical scoring: the description
// plus responsibilities for jobs, the article content for advice, and the
// education and tooling fields for profiles.
func (d *Document) Body() string {
	switch d.domain {
	case domain.DomainJob:
		parts := append([]string{d.description}, d.responsibilities...)
		return strings.Join(parts, " ")
	case domain.DomainAdvice:
		return d.content
	case domain.DomainProfile:
		parts := []string{d.institution, d.educationStatus}
		parts = append(parts, d.languages...)
		parts = append(parts, d.tools...)
		return strings.Join(parts, " ")
	}
	return ""
}

// EmbeddingText assembles the single embedding-ready text for this document.
// Field order is fixed (titles, description/content, itemized lists, salary
// info, tags) so repeated builds on unchanged input produce byte-identical
// text.
func (d *Document) EmbeddingText() string {
	var parts []string

	switch d.domain {
	case domain.DomainJob:
		parts = append(parts, "ตำแหน่งงาน: "+strings.Join(d.titles, ", "))
		if d.description != "" {
			parts = append(parts, "คำอธิบาย: "+d.description)
		}
		if len(d.responsibilities) > 0 {
			items := make([]string, len(d.responsibilities))
			for i, r := range d.responsibilities {
				items[i] = "- " + r
			}
			parts = append(parts, "ความรับผิดชอบ: "+strings.Join(items, " "))
		}
		if len(d.skills) > 0 {
			parts = append(parts, "ทักษะ: "+strings.Join(d.skills, ", "))
		}
		if len(d.salaryRanges) > 0 {
			items := make([]string, 0, len(d.salaryRanges))
			for _, sr := range d.salaryRanges {
				if sr.Experience != "" && sr.Salary != "" {
					items = append(items, fmt.Sprintf("ประสบการณ์ %s ปี: เงินเดือน %s บาท", sr.Experience, sr.Salary))
				}
			}
			if len(items) > 0 {
				parts = append(parts, "ข้อมูลเงินเดือน: "+strings.Join(items, " "))
			}
		}

	case domain.DomainAdvice:
		// Title and tags are repeated to weight them in the embedding,
		// matching how the advice corpus was originally vectorized.
		title := "หัวข้อ: " + d.Title() + " "
		parts = append(parts, strings.TrimSpace(title+title+title))
		if d.content != "" {
			parts = append(parts, "เนื้อหา: "+d.content)
		}
		if len(d.tags) > 0 {
			tags := "แท็ก: " + strings.Join(d.tags, ", ") + " "
			parts = append(parts, strings.TrimSpace(tags+tags))
		}

	case domain.DomainProfile:
		parts = append(parts, "ชื่อ: "+d.Title())
		if d.institution != "" {
			parts = append(parts, "สถาบันการศึกษา: "+d.institution)
		}
		if d.educationStatus != "" {
			parts = append(parts, "สถานะ: "+d.educationStatus)
		}
		if len(d.skills) > 0 {
			parts = append(parts, "ทักษะ: "+strings.Join(d.skills, ", "))
		}
		if len(d.languages) > 0 {
			parts = append(parts, "ภาษาโปรแกรม: "+strings.Join(d.languages, ", "))
		}
		if len(d.tools) > 0 {
			parts = append(parts, "เครื่องมือ: "+strings.Join(d.tools, ", "))
		}
	}

	return strings.Join(parts, " ")
}
