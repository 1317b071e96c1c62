// Package record persists scored health assessments. A record is scored once
// at submission and stored verbatim; later rule changes never rescore it.
package record

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/cyclecare/internal/assessment"
)

var (
	ErrMissingType = errors.New("assessment type is required")
	ErrInvalidUser = errors.New("user id must be positive")
	ErrExists      = errors.New("assessment already stored")
	ErrNotFound    = errors.New("assessment not found")
)

// Assessment is a stored questionnaire submission with its frozen result.
// ResponsesHash identifies the submitted file as received, before
// redaction, so it does not hash the stored Responses.
type Assessment struct {
	ID              string               `json:"id"`
	UserID          int                  `json:"user_id"`
	Type            string               `json:"type"`
	Responses       assessment.Responses `json:"responses"`
	ResponsesHash   string               `json:"responses_hash,omitempty"`
	Score           int                  `json:"score"`
	Recommendations []string             `json:"recommendations"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Result returns the stored score and recommendations.
func (a *Assessment) Result() assessment.Result {
	return assessment.Result{
		Score:           a.Score,
		Recommendations: append([]string(nil), a.Recommendations...),
	}
}

func (a *Assessment) clone() *Assessment {
	cp := *a
	cp.Responses = a.Responses.Clone()
	cp.Recommendations = append([]string(nil), a.Recommendations...)
	return &cp
}

// Store saves and lists assessments.
type Store interface {
	Create(a *Assessment) error
	Get(userID int, id string) (*Assessment, error)
	ListByUser(userID int) ([]*Assessment, error)
}

// Input is what the submission handler passes in.
type Input struct {
	UserID    int
	Type      string
	Responses assessment.Responses
	Hash      string
}

// Build checks the fields the engine does not, scores the responses once
// and returns the unsaved record with the evaluation behind it. Unknown
// types are kept with the fallback result rather than rejected.
func Build(in Input) (*Assessment, assessment.Evaluation, error) {
	if strings.TrimSpace(in.Type) == "" {
		return nil, assessment.Evaluation{}, ErrMissingType
	}
	if in.UserID <= 0 {
		return nil, assessment.Evaluation{}, ErrInvalidUser
	}

	responses := in.Responses.Clone()
	ev := assessment.Explain(in.Type, responses)

	a := &Assessment{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		Type:            in.Type,
		Responses:       responses,
		ResponsesHash:   in.Hash,
		Score:           ev.Result.Score,
		Recommendations: ev.Result.Recommendations,
		CreatedAt:       time.Now().UTC(),
	}
	return a, ev, nil
}

// Submit builds the record for in and persists it.
func Submit(s Store, in Input) (*Assessment, error) {
	a, _, err := Build(in)
	if err != nil {
		return nil, fmt.Errorf("record.Submit: %w", err)
	}
	if err := s.Create(a); err != nil {
		return nil, fmt.Errorf("record.Submit: %w", err)
	}
	return a, nil
}

// FilterByType keeps assessments of the given type. An empty type keeps all.
func FilterByType(list []*Assessment, t string) []*Assessment {
	if t == "" {
		return list
	}
	var out []*Assessment
	for _, a := range list {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// sortNewestFirst orders by creation time descending, then by ID.
func sortNewestFirst(list []*Assessment) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
