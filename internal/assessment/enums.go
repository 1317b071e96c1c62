package assessment

import "strings"

// Type selects which rule table scores a set of responses.
type Type string

const (
	TypeMenstrual Type = "menstrual"
	TypeHygiene   Type = "hygiene"
	TypeNutrition Type = "nutrition"
	TypeMental    Type = "mental"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMenstrual, TypeHygiene, TypeNutrition, TypeMental:
		return true
	}
	return false
}

// Types returns every supported assessment type in questionnaire order.
func Types() []Type {
	return []Type{TypeMenstrual, TypeHygiene, TypeNutrition, TypeMental}
}

// ParseType normalizes s and reports whether it names a supported type.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Tier is the score band that picks the summary recommendation.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAttention Tier = "attention"
)

func (t Tier) Valid() bool {
	switch t {
	case TierExcellent, TierGood, TierAttention:
		return true
	}
	return false
}

// Tier thresholds are inclusive lower bounds.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

// TierFor returns the band for an already clamped score.
func TierFor(score int) Tier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	default:
		return TierAttention
	}
}
