// Package schema checks scored results and stored assessments for structural validity.
package schema

import (
	"fmt"
	"strings"

	"github.com/dshills/cyclecare/internal/assessment"
	"github.com/dshills/cyclecare/internal/record"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateResult checks the invariants every result must hold: score within
// [0, 100] and a non-empty summary first. For a supported type the summary
// must also be the one matching the score's tier.
func ValidateResult(t string, res assessment.Result) []ValidationError {
	var errs []ValidationError

	if res.Score < 0 || res.Score > 100 {
		errs = append(errs, ValidationError{"score", fmt.Sprintf("must be within [0, 100], got %d", res.Score)})
	}
	if len(res.Recommendations) == 0 {
		errs = append(errs, ValidationError{"recommendations", "at least one recommendation required"})
		return errs
	}
	for i, r := range res.Recommendations {
		if strings.TrimSpace(r) == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("recommendations[%d]", i), "empty recommendation"})
		}
	}

	rs := assessment.Rules(assessment.Type(t))
	if rs == nil {
		return errs
	}
	var want string
	switch assessment.TierFor(res.Score) {
	case assessment.TierExcellent:
		want = rs.Summaries.Excellent
	case assessment.TierGood:
		want = rs.Summaries.Good
	default:
		want = rs.Summaries.Attention
	}
	if res.Recommendations[0] != want {
		errs = append(errs, ValidationError{"recommendations[0]", fmt.Sprintf("summary does not match tier for score %d", res.Score)})
	}
	return errs
}

// ValidateRecord checks a stored assessment. The result is checked only for
// shape: summaries written under older rules are still accepted.
func ValidateRecord(a *record.Assessment) []ValidationError {
	var errs []ValidationError

	if a.ID == "" {
		errs = append(errs, ValidationError{"id", "required"})
	}
	if a.UserID <= 0 {
		errs = append(errs, ValidationError{"user_id", "must be positive"})
	}
	if strings.TrimSpace(a.Type) == "" {
		errs = append(errs, ValidationError{"type", "required"})
	}
	if a.CreatedAt.IsZero() {
		errs = append(errs, ValidationError{"created_at", "required"})
	}
	errs = append(errs, ValidateResult("", a.Result())...)
	return errs
}
