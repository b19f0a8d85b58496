package review

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/cvwizard/internal/wizard"
)

const minSummaryLength = 50

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) DisabledReason() string { return t.reason }

type shortSummary struct{ toggle }

// NewShortSummary suggests expanding a professional summary under 50 characters.
func NewShortSummary() Check { return &shortSummary{} }

func (c *shortSummary) Name() string { return "short_summary" }

func (c *shortSummary) Apply(_ context.Context, in Input) (string, bool) {
	if utf8.RuneCountInString(strings.TrimSpace(in.Fields[wizard.FieldSummary])) < minSummaryLength {
		return "Your professional summary could be more detailed", true
	}
	return "", false
}

type quantifiedExperience struct{ toggle }

// NewQuantifiedExperience suggests numbers when the experience has no digits.
func NewQuantifiedExperience() Check { return &quantifiedExperience{} }

func (c *quantifiedExperience) Name() string { return "quantified_experience" }

func (c *quantifiedExperience) Apply(_ context.Context, in Input) (string, bool) {
	if strings.IndexFunc(in.Fields[wizard.FieldExperience], unicode.IsDigit) >= 0 {
		return "", false
	}
	return "Add quantifiable achievements (e.g., 'Increased sales by 20%')", true
}

type profileLinks struct{ toggle }

// NewProfileLinks suggests linking professional profiles when no field
// carries a link.
func NewProfileLinks() Check { return &profileLinks{} }

func (c *profileLinks) Name() string { return "profile_links" }

func (c *profileLinks) Apply(_ context.Context, in Input) (string, bool) {
	for _, value := range in.Fields {
		if strings.Contains(value, "http") {
			return "", false
		}
	}
	return "Consider adding links to your professional profiles", true
}

type sectionSpacing struct{ toggle }

// NewSectionSpacing suggests blank lines between sections.
func NewSectionSpacing() Check { return &sectionSpacing{} }

func (c *sectionSpacing) Name() string { return "section_spacing" }

func (c *sectionSpacing) Apply(_ context.Context, in Input) (string, bool) {
	if strings.Contains(in.Content, "\n\n") {
		return "", false
	}
	return "Add more spacing between sections for better readability", true
}

type emphasis struct{ toggle }

// NewEmphasis suggests bold or italic highlights.
func NewEmphasis() Check { return &emphasis{} }

func (c *emphasis) Name() string { return "emphasis" }

func (c *emphasis) Apply(_ context.Context, in Input) (string, bool) {
	if strings.Contains(in.Content, "*") {
		return "", false
	}
	return "Use bold/italic formatting to highlight key achievements", true
}
