package wizard

import (
	"context"
	"strings"
	"time"
)

// Format tells how the document content has to be rendered.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatMarkup   Format = "markup"
)

// DetectFormat treats content starting with a markup opening character as
// markup and everything else as markdown.
func DetectFormat(content string) Format {
	if strings.HasPrefix(strings.TrimSpace(content), "<") {
		return FormatMarkup
	}
	return FormatMarkdown
}

// Profile is the generation request record.
type Profile struct {
	FullName   string `json:"fullName" yaml:"fullName"`
	Email      string `json:"email" yaml:"email"`
	Phone      string `json:"phone" yaml:"phone"`
	Summary    string `json:"summary" yaml:"summary"`
	Skills     string `json:"skills" yaml:"skills"`
	Experience string `json:"experience" yaml:"experience"`
	Education  string `json:"education" yaml:"education"`
}

// NewProfile builds a trimmed Profile from fields.
func NewProfile(fields Fields) Profile {
	get := func(name string) string { return strings.TrimSpace(fields[name]) }
	return Profile{
		FullName:   get(FieldFullName),
		Email:      get(FieldEmail),
		Phone:      get(FieldPhone),
		Summary:    get(FieldSummary),
		Skills:     get(FieldSkills),
		Experience: get(FieldExperience),
		Education:  get(FieldEducation),
	}
}

// Fields converts the profile back into form fields.
func (p Profile) Fields() Fields {
	return Fields{
		FieldFullName:   p.FullName,
		FieldEmail:      p.Email,
		FieldPhone:      p.Phone,
		FieldSummary:    p.Summary,
		FieldSkills:     p.Skills,
		FieldExperience: p.Experience,
		FieldEducation:  p.Education,
	}
}

// Generation is the decoded answer of a generator. Score is nil when the
// generator did not send one.
type Generation struct {
	Content     string
	Score       *int
	Error       string
	Suggestions []string
}

// Generator turns a profile into a generated document.
type Generator interface {
	Generate(ctx context.Context, profile Profile) (*Generation, error)
}

// Document is the result of a successful submission.
type Document struct {
	Content     string
	Format      Format
	Score       int
	Suggestions []string
	CreatedAt   time.Time
}

// Exporter is a side-effecting sink for the result document. The returned
// string describes where the document went.
type Exporter interface {
	Name() string
	Export(ctx context.Context, doc *Document) (string, error)
}

// Observer receives controller events. Implementations must not call back
// into the controller.
type Observer interface {
	ObserveTransition(op string, from, to Phase, err error)
	ObserveSubmission(outcome string, took time.Duration)
	ObserveScore(score int)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(string, Phase, Phase, error) {}
func (nopObserver) ObserveSubmission(string, time.Duration)       {}
func (nopObserver) ObserveScore(int)                              {}
