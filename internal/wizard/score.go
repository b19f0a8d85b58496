package wizard

import (
	"strings"
	"unicode/utf8"
)

// ScoreConfig weights the completeness heuristic. Cap keeps the
// pre-submission score below the band reserved for the generated result.
type ScoreConfig struct {
	FieldWeight          int      `mapstructure:"field-weight"`
	Fields               []string `mapstructure:"fields"`
	SkillsBonusAbove     int      `mapstructure:"skills-bonus-above"`
	SkillsBonus          int      `mapstructure:"skills-bonus"`
	ExperienceBonusAbove int      `mapstructure:"experience-bonus-above"`
	ExperienceBonus      int      `mapstructure:"experience-bonus"`
	Cap                  int      `mapstructure:"cap"`
}

// DefaultScoreConfig returns the weights used by the CV form.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		FieldWeight:          10,
		Fields:               ProfileFieldNames(),
		SkillsBonusAbove:     5,
		SkillsBonus:          5,
		ExperienceBonusAbove: 200,
		ExperienceBonus:      10,
		Cap:                  95,
	}
}

// WithDefaults fills zero values from DefaultScoreConfig.
func (c ScoreConfig) WithDefaults() ScoreConfig {
	d := DefaultScoreConfig()
	if c.FieldWeight <= 0 {
		c.FieldWeight = d.FieldWeight
	}
	if len(c.Fields) == 0 {
		c.Fields = d.Fields
	}
	if c.SkillsBonusAbove <= 0 {
		c.SkillsBonusAbove = d.SkillsBonusAbove
	}
	if c.SkillsBonus < 0 {
		c.SkillsBonus = d.SkillsBonus
	}
	if c.ExperienceBonusAbove <= 0 {
		c.ExperienceBonusAbove = d.ExperienceBonusAbove
	}
	if c.ExperienceBonus < 0 {
		c.ExperienceBonus = d.ExperienceBonus
	}
	if c.Cap <= 0 {
		c.Cap = d.Cap
	}
	return c
}

// Score computes the completeness score of fields. It is a pure function of
// its input.
func (c ScoreConfig) Score(fields Fields) int {
	score := 0
	for _, name := range c.Fields {
		if strings.TrimSpace(fields[name]) != "" {
			score += c.FieldWeight
		}
	}

	if CountSkills(fields[FieldSkills]) > c.SkillsBonusAbove {
		score += c.SkillsBonus
	}

	if utf8.RuneCountInString(strings.TrimSpace(fields[FieldExperience])) > c.ExperienceBonusAbove {
		score += c.ExperienceBonus
	}

	return min(score, c.Cap)
}

// Feedback returns the message shown next to a score.
func Feedback(score int) string {
	switch {
	case score < 40:
		return "Your CV needs significant improvements"
	case score < 70:
		return "Good start, but could be stronger"
	case score < 85:
		return "Strong CV! Some minor improvements possible"
	default:
		return "Excellent CV! Ready to submit"
	}
}
