package gemini

import (
	"context"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/review"
	"github.com/spigell/cvwizard/internal/wizard"
)

//go:embed system.md
var systemInstruction string

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// CVGenerator writes CVs with Gemini and scores them locally. It is the
// offline counterpart of the backend generator.
type CVGenerator struct {
	client contentGenerator
	checks []review.Check
	logger *zap.Logger
}

// NewCVGenerator returns a wizard.Generator backed by client. Nil checks
// selects review.Default.
func NewCVGenerator(client contentGenerator, checks []review.Check, logger *zap.Logger) *CVGenerator {
	if checks == nil {
		checks = review.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CVGenerator{client: client, checks: checks, logger: logger}
}

// Generate implements wizard.Generator.
func (g *CVGenerator) Generate(ctx context.Context, profile wizard.Profile) (*wizard.Generation, error) {
	content, err := g.client.GenerateContent(ctx, systemInstruction, buildPrompt(profile))
	if err != nil {
		return nil, err
	}

	in := review.Input{Fields: profile.Fields(), Content: content}
	score := review.Score(in)
	suggestions := review.Run(ctx, g.logger, g.checks, in)

	g.logger.Debug("cv reviewed", zap.Int("score", score), zap.Int("suggestions", len(suggestions)))

	return &wizard.Generation{
		Content:     content,
		Score:       &score,
		Suggestions: suggestions,
	}, nil
}

func buildPrompt(p wizard.Profile) string {
	return strings.NewReplacer(
		"{{FULL_NAME}}", p.FullName,
		"{{EMAIL}}", p.Email,
		"{{PHONE}}", p.Phone,
		"{{SUMMARY}}", p.Summary,
		"{{SKILLS}}", p.Skills,
		"{{EXPERIENCE}}", p.Experience,
		"{{EDUCATION}}", p.Education,
	).Replace(promptTemplate)
}
