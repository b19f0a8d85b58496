package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a token or key can be found.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value.
	File string
	// Env names an environment variable holding the secret value.
	Env string
}

// Load resolves a required secret. Precedence is File, then Env, then Value.
// The returned secret is always trimmed.
func Load(src Source) (string, error) {
	secret, err := resolve(src)
	if err != nil {
		return "", err
	}

	if secret == "" {
		if file := strings.TrimSpace(src.File); file != "" {
			return "", fmt.Errorf("%s file %q is empty", name(src), file)
		}
		return "", fmt.Errorf("%s is not configured", name(src))
	}

	return secret, nil
}

// LoadOptional resolves a secret that may legitimately be absent. Only read
// errors are reported.
func LoadOptional(src Source) (string, error) {
	return resolve(src)
}

func resolve(src Source) (string, error) {
	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name(src), file, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if value := strings.TrimSpace(os.Getenv(env)); value != "" {
			return value, nil
		}
	}

	return strings.TrimSpace(src.Value), nil
}

func name(src Source) string {
	if n := strings.TrimSpace(src.Name); n != "" {
		return n
	}
	return "secret"
}
