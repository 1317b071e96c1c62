// Package submission reads questionnaire submissions from JSON or YAML files.
package submission

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/cyclecare/internal/assessment"
)

// Submission is one completed questionnaire as posted by the client.
type Submission struct {
	FilePath  string               `json:"-" yaml:"-"`
	// Hash covers the raw file bytes, taken before any redaction.
	Hash      string               `json:"-" yaml:"-"`
	Type      string               `json:"type" yaml:"type"`
	UserID    int                  `json:"user_id" yaml:"user_id"`
	Responses assessment.Responses `json:"responses" yaml:"responses"`
}

// Load reads a submission file and computes its SHA-256 hash. The format is
// picked from the extension: .yaml/.yml for YAML, anything else as JSON.
func Load(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("submission.Load: %w", err)
	}
	s, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("submission.Load: %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// Parse decodes a submission in the given format ("json" or "yaml").
func Parse(data []byte, format string) (*Submission, error) {
	var s Submission
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}
	if s.Responses == nil {
		s.Responses = assessment.Responses{}
	}
	h := sha256.Sum256(data)
	s.Hash = fmt.Sprintf("sha256:%x", h)
	return &s, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
