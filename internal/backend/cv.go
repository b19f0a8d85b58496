package backend

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/cvwizard/internal/utils"
	"github.com/spigell/cvwizard/internal/wizard"
)

const cvPath = "/api/cv/generate/"

type cvAnswer struct {
	CV          string   `mapstructure:"cv"`
	Score       *float64 `mapstructure:"score"`
	Error       string   `mapstructure:"error"`
	Suggestions []string `mapstructure:"improvement_suggestions"`
}

// GenerateCV posts the profile to the CV endpoint. An "error" field in a 2xx
// answer is returned in Generation.Error, not as an error.
func (c *Client) GenerateCV(ctx context.Context, profile wizard.Profile) (*wizard.Generation, error) {
	raw, err := c.postJSON(ctx, cvPath, profile)
	if err != nil {
		return nil, err
	}

	var answer cvAnswer
	if err := decode(raw, &answer); err != nil {
		return nil, err
	}

	gen := &wizard.Generation{
		Content:     answer.CV,
		Error:       answer.Error,
		Suggestions: answer.Suggestions,
	}
	if answer.Score != nil && !math.IsNaN(*answer.Score) {
		score := int(math.Round(math.Max(0, math.Min(100, *answer.Score))))
		gen.Score = &score
	}

	c.logger.Debug("cv endpoint answered",
		zap.Int("content_length", len(answer.CV)),
		zap.String("content_preview", utils.TruncateForLog(answer.CV, 80)),
		zap.Bool("has_score", gen.Score != nil),
		zap.String("error", answer.Error),
	)

	return gen, nil
}

// Generate implements wizard.Generator.
func (c *Client) Generate(ctx context.Context, profile wizard.Profile) (*wizard.Generation, error) {
	return c.GenerateCV(ctx, profile)
}
