// Package profile loads and saves wizard answers as YAML.
package profile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spigell/cvwizard/internal/wizard"
)

const draftPattern = "cv_draft_*.yaml"

// Load reads a YAML profile into wizard fields. Keys other than the wizard
// fields are rejected so that typos do not go unnoticed.
func Load(path string) (wizard.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p wizard.Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	return p.Fields(), nil
}

// SaveDraft writes fields to a new file in dir (the OS temp directory when
// empty) and returns its path.
func SaveDraft(dir string, fields wizard.Fields) (string, error) {
	data, err := yaml.Marshal(wizard.NewProfile(fields))
	if err != nil {
		return "", fmt.Errorf("marshal draft: %w", err)
	}

	f, err := os.CreateTemp(dir, draftPattern)
	if err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}

	return f.Name(), nil
}
