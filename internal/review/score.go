package review

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	baseScore     = 50
	maxScore      = 100
	maxSkillScore = 10
)

var (
	achievementWords = []string{"achieved", "improved"}
	leadershipWords  = []string{"led", "managed", "developed"}
)

// Score rates a generated CV between 0 and 100 from the submitted fields and
// the generated content.
func Score(in Input) int {
	score := baseScore

	length := func(field string) int {
		return utf8.RuneCountInString(in.Fields[field])
	}

	if length(wizard.FieldSummary) > 100 {
		score += 5
	}
	if length(wizard.FieldExperience) > 300 {
		score += 10
	}
	if length(wizard.FieldEducation) > 100 {
		score += 5
	}

	content := strings.ToLower(in.Content)
	if containsAny(content, achievementWords) {
		score += 10
	}
	if containsAny(content, leadershipWords) {
		score += 10
	}

	score += min(wizard.CountSkills(in.Fields[wizard.FieldSkills])*2, maxSkillScore)

	return min(score, maxScore)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
