package wizard

import (
	"strings"
	"testing"
)

func filledFields() Fields {
	return Fields{
		FieldFullName:   "Ada Lovelace",
		FieldEmail:      "ada@gmail.com",
		FieldPhone:      "07123456789",
		FieldSummary:    "Engineer",
		FieldSkills:     "go,sql,k8s",
		FieldExperience: "Analytical Engine",
		FieldEducation:  "Home schooled",
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	cfg := DefaultScoreConfig()

	tests := []struct {
		name   string
		mutate func(Fields)
		expect int
	}{
		{name: "empty", mutate: func(f Fields) { clear(f) }, expect: 0},
		{name: "all fields", mutate: func(Fields) {}, expect: 70},
		{name: "one missing", mutate: func(f Fields) { f[FieldSummary] = "  " }, expect: 60},
		{name: "skills bonus", mutate: func(f Fields) { f[FieldSkills] = "a,b,c,d,e,f" }, expect: 75},
		{name: "five skills no bonus", mutate: func(f Fields) { f[FieldSkills] = "a,b,c,d,e" }, expect: 70},
		{name: "trailing commas earn no bonus", mutate: func(f Fields) { f[FieldSkills] = "a,b,c,d,e," }, expect: 70},
		{name: "experience bonus", mutate: func(f Fields) { f[FieldExperience] = strings.Repeat("x", 201) }, expect: 80},
		{
			name: "both bonuses",
			mutate: func(f Fields) {
				f[FieldSkills] = "a,b,c,d,e,f"
				f[FieldExperience] = strings.Repeat("x", 500)
			},
			expect: 85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fields := filledFields()
			tt.mutate(fields)
			if got := cfg.Score(fields); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestScoreCap(t *testing.T) {
	cfg := DefaultScoreConfig()
	cfg.FieldWeight = 15

	fields := filledFields()
	fields[FieldSkills] = "a,b,c,d,e,f"
	fields[FieldExperience] = strings.Repeat("x", 500)

	raw := 7*15 + 5 + 10
	if got := cfg.Score(fields); got != min(raw, 95) {
		t.Fatalf("expected capped score %d, got %d", min(raw, 95), got)
	}
}

func TestScoreDeterministicAndMonotonic(t *testing.T) {
	cfg := DefaultScoreConfig()
	fields := Fields{}

	prev := cfg.Score(fields)
	for _, name := range ProfileFieldNames() {
		fields[name] = "value"
		first := cfg.Score(fields)
		if again := cfg.Score(fields); again != first {
			t.Fatalf("score is not deterministic: %d != %d", first, again)
		}
		if first < prev {
			t.Fatalf("score decreased from %d to %d after filling %s", prev, first, name)
		}
		prev = first
	}
}

func TestFeedback(t *testing.T) {
	cases := map[int]string{
		10: "Your CV needs significant improvements",
		40: "Good start, but could be stronger",
		70: "Strong CV! Some minor improvements possible",
		85: "Excellent CV! Ready to submit",
	}
	for score, want := range cases {
		if got := Feedback(score); got != want {
			t.Errorf("Feedback(%d) = %q, want %q", score, got, want)
		}
	}
}
