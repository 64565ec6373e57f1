package document

import (
	"strings"
	"testing"

	"github.com/careerdex/careerdex/internal/domain"
)

func TestNewJob_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		fields  JobFields
		wantErr bool
	}{
		{"valid", "sw-dev", JobFields{Titles: []string{"Software Developer"}}, false},
		{"empty id", "", JobFields{Titles: []string{"Software Developer"}}, true},
		{"id with spaces", "sw dev", JobFields{Titles: []string{"Software Developer"}}, true},
		{"id too long", strings.Repeat("a", 257), JobFields{Titles: []string{"Software Developer"}}, true},
		{"no titles", "sw-dev", JobFields{}, true},
		{"blank first title", "sw-dev", JobFields{Titles: []string{""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJob(tt.id, tt.fields)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewJob(%q): err = %v, wantErr = %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestNewAdvice_Validation(t *testing.T) {
	if _, err := NewAdvice("adv-1", AdviceFields{Title: "Resume tips", Content: "Keep it short."}); err != nil {
		t.Errorf("valid advice rejected: %v", err)
	}
	if _, err := NewAdvice("adv-1", AdviceFields{Content: "no title"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := NewAdvice("adv-1", AdviceFields{Title: "no content"}); err == nil {
		t.Error("expected error for missing content")
	}
}

func TestNewProfile_Validation(t *testing.T) {
	if _, err := NewProfile("user-1", ProfileFields{Name: "Somchai"}); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}
	if _, err := NewProfile("user-1", ProfileFields{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestDocument_Accessors(t *testing.T) {
	d, err := NewJob("sw-dev", JobFields{
		Titles:           []string{"Software Developer", "นักพัฒนาซอฟต์แวร์"},
		Description:      "Builds backend services.",
		Responsibilities: []string{"Write code", "Review code"},
		Skills:           []string{"go", "sql"},
		SalaryRanges:     []SalaryRange{{Experience: "1-3", Salary: "30,000 - 50,000"}},
		Education:        []string{"Bachelor"},
	})
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	if d.ID() != "sw-dev" || d.Domain() != domain.DomainJob {
		t.Errorf("identity = (%s, %s)", d.Domain(), d.ID())
	}
	if d.Title() != "Software Developer" {
		t.Errorf("Title = %q", d.Title())
	}
	if len(d.Titles()) != 2 {
		t.Errorf("Titles = %v", d.Titles())
	}
	if len(d.Skills()) != 2 || d.Skills()[0] != "go" {
		t.Errorf("Skills = %v", d.Skills())
	}
	if len(d.SalaryRanges()) != 1 || d.SalaryRanges()[0].Experience != "1-3" {
		t.Errorf("SalaryRanges = %v", d.SalaryRanges())
	}
}

func TestDocument_FieldsAreCopied(t *testing.T) {
	titles := []string{"Software Developer"}
	d, err := NewJob("sw-dev", JobFields{Titles: titles})
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}

	titles[0] = "mutated"
	if d.Title() != "Software Developer" {
		t.Errorf("Title = %q, caller slice mutation leaked in", d.Title())
	}
}

func TestDocument_Body(t *testing.T) {
	job, _ := NewJob("sw-dev", JobFields{
		Titles:           []string{"Software Developer"},
		Description:      "Builds services.",
		Responsibilities: []string{"Write code"},
	})
	if got := job.Body(); got != "Builds services. Write code" {
		t.Errorf("job Body = %q", got)
	}

	advice, _ := NewAdvice("adv-1", AdviceFields{Title: "Resume tips", Content: "Keep it short."})
	if got := advice.Body(); got != "Keep it short." {
		t.Errorf("advice Body = %q", got)
	}

	profile, _ := NewProfile("user-1", ProfileFields{
		Name:            "Somchai",
		Institution:     "KMUTT",
		EducationStatus: "student",
		Languages:       []string{"Go"},
	})
	if got := profile.Body(); got != "KMUTT student Go" {
		t.Errorf("profile Body = %q", got)
	}
}

func TestDocument_EmbeddingTextDeterministic(t *testing.T) {
	build := func() Document {
		d, err := NewJob("sw-dev", JobFields{
			Titles:       []string{"Software Developer", "นักพัฒนาซอฟต์แวร์"},
			Description:  "Builds backend services.",
			Skills:       []string{"go", "sql"},
			SalaryRanges: []SalaryRange{{Experience: "1-3", Salary: "30,000 - 50,000"}},
		})
		if err != nil {
			t.Fatalf("NewJob: %v", err)
		}
		return d
	}

	a := build()
	b := build()
	if a.EmbeddingText() != b.EmbeddingText() {
		t.Error("EmbeddingText differs across identical builds")
	}
	if !strings.Contains(a.EmbeddingText(), "Software Developer") {
		t.Errorf("EmbeddingText = %q, missing title", a.EmbeddingText())
	}
	if !strings.Contains(a.EmbeddingText(), "30,000 - 50,000") {
		t.Errorf("EmbeddingText = %q, missing salary info", a.EmbeddingText())
	}
}

func TestDocument_EmbeddingTextSkipsIncompleteSalaryRanges(t *testing.T) {
	d, _ := NewJob("sw-dev", JobFields{
		Titles:       []string{"Software Developer"},
		SalaryRanges: []SalaryRange{{Experience: "1-3"}},
	})
	if strings.Contains(d.EmbeddingText(), "เงินเดือน") {
		t.Errorf("EmbeddingText = %q, salary section should be omitted without a salary value", d.EmbeddingText())
	}
}

func TestNewMetadataRow_TruncatesPreview(t *testing.T) {
	long := strings.Repeat("ก", 500)
	d, _ := NewAdvice("adv-1", AdviceFields{Title: "Resume tips", Content: long})

	row := NewMetadataRow(&d)

	if row.DocumentID != "adv-1" || row.Domain != domain.DomainAdvice {
		t.Errorf("row identity = (%s, %s)", row.Domain, row.DocumentID)
	}
	runes := []rune(row.Preview)
	if len(runes) != 303 {
		t.Errorf("preview length = %d runes, want 300 plus ellipsis", len(runes))
	}
	if !strings.HasSuffix(row.Preview, "...") {
		t.Errorf("preview does not end with ellipsis: %q", row.Preview[len(row.Preview)-12:])
	}
}

func TestNewMetadataRow_ShortBodyKeptWhole(t *testing.T) {
	d, _ := NewAdvice("adv-1", AdviceFields{Title: "Resume tips", Content: "Keep it short."})

	row := NewMetadataRow(&d)
	if row.Preview != "Keep it short." {
		t.Errorf("preview = %q", row.Preview)
	}
}
