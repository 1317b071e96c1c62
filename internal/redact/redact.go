// Package redact replaces personal data in free-text answers with [REDACTED]
// before they are stored.
package redact

import (
	"regexp"

	"github.com/dshills/cyclecare/internal/assessment"
)

var patterns []*regexp.Regexp

func init() {
	raw := []string{
		// Email addresses
		`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`,
		// Aadhaar-style 12 digit identifiers grouped in fours
		`\b\d{4}\s\d{4}\s\d{4}\b`,
		// International numbers in 5-5 grouping
		`\+\d{1,3}[\s\-]?\d{5}[\s\-]?\d{5}`,
		// Indian mobile numbers
		`\b[6-9]\d{4}[\s\-]?\d{5}\b`,
		// North American numbers
		`\(?\b\d{3}\)?[\s\-.]?\d{3}[\s\-.]\d{4}\b`,
	}
	for _, r := range raw {
		patterns = append(patterns, regexp.MustCompile(r))
	}
}

// Redact replaces personal data patterns in text with [REDACTED].
func Redact(text string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, "[REDACTED]")
	}
	return text
}

// Responses returns a copy of r with every string answer, including strings
// inside lists, passed through Redact. Category codes contain no matches
// and come through unchanged.
func Responses(r assessment.Responses) assessment.Responses {
	out := r.Clone()
	for k, v := range out {
		switch vv := v.(type) {
		case string:
			out[k] = Redact(vv)
		case []string:
			for i := range vv {
				vv[i] = Redact(vv[i])
			}
		case []any:
			for i, item := range vv {
				if s, ok := item.(string); ok {
					vv[i] = Redact(s)
				}
			}
		}
	}
	return out
}
