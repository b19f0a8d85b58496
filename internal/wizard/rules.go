package wizard

import (
	"fmt"
	"strings"
)

const (
	defaultEmailSuffix = "@gmail.com"
	defaultPhonePrefix = "07"
	defaultPhoneLength = 11
	defaultMinSkills   = 3
)

// Rules holds the field format constraints. The values are deployment
// configuration, not universal formats.
type Rules struct {
	EmailSuffix string `mapstructure:"email-suffix"`
	PhonePrefix string `mapstructure:"phone-prefix"`
	PhoneLength int    `mapstructure:"phone-length"`
	MinSkills   int    `mapstructure:"min-skills"`
}

// DefaultRules returns the rules the CV form ships with.
func DefaultRules() Rules {
	return Rules{
		EmailSuffix: defaultEmailSuffix,
		PhonePrefix: defaultPhonePrefix,
		PhoneLength: defaultPhoneLength,
		MinSkills:   defaultMinSkills,
	}
}

// WithDefaults fills zero values from DefaultRules.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if r.EmailSuffix == "" {
		r.EmailSuffix = d.EmailSuffix
	}
	if r.PhonePrefix == "" {
		r.PhonePrefix = d.PhonePrefix
	}
	if r.PhoneLength <= 0 {
		r.PhoneLength = d.PhoneLength
	}
	if r.MinSkills <= 0 {
		r.MinSkills = d.MinSkills
	}
	return r
}

// Check validates value as the input of step. It returns nil when the value
// is acceptable. The first failing rule wins: required, then the format rule
// of the step kind.
func (r Rules) Check(step Step, value string) *FieldError {
	if step.Field == "" {
		return nil
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if step.Required {
			return &FieldError{Field: step.Field, Message: fmt.Sprintf("%s is required", step.Label)}
		}
		return nil
	}

	switch step.Kind {
	case KindEmail:
		if !strings.HasSuffix(trimmed, r.EmailSuffix) {
			return &FieldError{Field: step.Field, Message: fmt.Sprintf("email must end with %s", r.EmailSuffix)}
		}
	case KindPhone:
		if !strings.HasPrefix(trimmed, r.PhonePrefix) || len(trimmed) != r.PhoneLength {
			return &FieldError{
				Field:   step.Field,
				Message: fmt.Sprintf("phone must start with %s and be %d characters long", r.PhonePrefix, r.PhoneLength),
			}
		}
	case KindSkills:
		if CountSkills(trimmed) < r.MinSkills {
			return &FieldError{Field: step.Field, Message: fmt.Sprintf("list at least %d skills separated by commas", r.MinSkills)}
		}
	}

	return nil
}

// CountSkills returns the number of non-empty comma separated items.
func CountSkills(value string) int {
	count := 0
	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) != "" {
			count++
		}
	}
	return count
}
