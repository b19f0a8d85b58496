package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/wizard"
)

// MaxSuggestions caps the number of suggestions returned by Run.
const MaxSuggestions = 5

// Input is what every check looks at: the submitted fields and the
// generated document content.
type Input struct {
	Fields  wizard.Fields
	Content string
}

// Check inspects a generated CV and may produce one suggestion.
type Check interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, in Input) (suggestion string, ok bool)
}

// Status represents runtime information about a check.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// Default returns the built-in checks in the order suggestions are ranked.
func Default() []Check {
	return []Check{
		NewShortSummary(),
		NewQuantifiedExperience(),
		NewProfileLinks(),
		NewSectionSpacing(),
		NewEmphasis(),
	}
}

// DisableByName marks a check with the provided name as disabled while
// keeping it in the list.
func DisableByName(checks []Check, name, reason string) {
	for _, check := range checks {
		if check.Name() == name {
			check.Disable(reason)
		}
	}
}

// Run executes the enabled checks in order and returns at most
// MaxSuggestions suggestions.
func Run(ctx context.Context, logger *zap.Logger, checks []Check, in Input) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	suggestions := make([]string, 0, MaxSuggestions)
	for _, check := range checks {
		if !check.IsEnabled() {
			logger.Debug("review check disabled", zap.String("name", check.Name()))
			continue
		}

		suggestion, ok := check.Apply(ctx, in)
		logger.Debug("review check", zap.String("name", check.Name()), zap.Bool("suggested", ok))
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
		if len(suggestions) == MaxSuggestions {
			break
		}
	}

	return suggestions
}

// Describe returns status entries for the provided checks.
func Describe(checks []Check) []Status {
	statuses := make([]Status, 0, len(checks))
	for _, check := range checks {
		status := Status{Name: check.Name(), Enabled: check.IsEnabled()}
		if r, ok := check.(interface{ DisabledReason() string }); ok {
			status.Reason = r.DisabledReason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}
