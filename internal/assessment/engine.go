package assessment

import (
	"fmt"

	"github.com/dshills/cyclecare/internal/ruleset"
)

const (
	baseScore = 100

	// FallbackScore is returned for an unrecognized assessment type.
	FallbackScore = 50
	// FallbackRecommendation is the only recommendation for an unrecognized type.
	FallbackRecommendation = "Please complete a comprehensive health assessment for personalized recommendations."
)

// rules is read-only after init, so concurrent evaluations need no locking.
var rules = mustLoadRules()

func mustLoadRules() map[Type]*ruleset.Ruleset {
	m := make(map[Type]*ruleset.Ruleset, len(Types()))
	for _, t := range Types() {
		rs, err := ruleset.LoadBuiltin(string(t))
		if err != nil {
			panic(fmt.Sprintf("assessment: builtin rules for %s: %v", t, err))
		}
		m[t] = rs
	}
	return m
}

// Rules returns the rule table used for t, or nil if t is not supported.
func Rules(t Type) *ruleset.Ruleset {
	return rules[t]
}

// Evaluate scores responses for the named assessment type. It never fails:
// unknown types get the fallback result and missing answers deduct nothing,
// except where a rule requires a practice to be listed.
func Evaluate(assessmentType string, responses Responses) Result {
	return EvaluateType(Type(assessmentType), responses)
}

// EvaluateType scores responses with the rule table for t. An unsupported t
// gets the fallback result.
func EvaluateType(t Type, responses Responses) Result {
	return explainType(t, responses).Result
}

// Menstrual scores cycle regularity, flow intensity and pain level.
func Menstrual(responses Responses) Result { return EvaluateType(TypeMenstrual, responses) }

// Hygiene scores product change frequency and hand washing.
func Hygiene(responses Responses) Result { return EvaluateType(TypeHygiene, responses) }

// Nutrition scores iron and water intake.
func Nutrition(responses Responses) Result { return EvaluateType(TypeNutrition, responses) }

// Mental scores stress level and sleep quality.
func Mental(responses Responses) Result { return EvaluateType(TypeMental, responses) }

// Explain performs the same evaluation as Evaluate and also reports the tier
// and each deduction that fired.
func Explain(assessmentType string, responses Responses) Evaluation {
	return explainType(Type(assessmentType), responses)
}

func explainType(t Type, responses Responses) Evaluation {
	rs, ok := rules[t]
	if !ok {
		return Evaluation{
			Type: t,
			Result: Result{
				Score:           FallbackScore,
				Recommendations: []string{FallbackRecommendation},
			},
		}
	}

	applied := applyFactors(rs.Factors, responses)

	total := 0
	for _, d := range applied {
		total += d.Points
	}
	score := ComputeScore(total)
	tier := TierFor(score)

	recs := make([]string, 0, len(applied)+1)
	recs = append(recs, summaryFor(rs.Summaries, tier))
	for _, d := range applied {
		recs = append(recs, d.Message)
	}

	return Evaluation{
		Type:    t,
		Known:   true,
		Tier:    tier,
		Applied: applied,
		Result: Result{
			Score:           score,
			Recommendations: recs,
		},
	}
}

// applyFactors checks every factor independently, in declaration order.
func applyFactors(factors []ruleset.Factor, responses Responses) []Deduction {
	var applied []Deduction
	for _, f := range factors {
		switch f.Kind {
		case ruleset.KindChoice:
			answer, ok := responses.Choice(f.Key)
			if !ok {
				continue
			}
			for _, o := range f.Outcomes {
				if answer == o.When {
					applied = append(applied, Deduction{
						Factor: f.ID, Key: f.Key, Answer: answer,
						Points: o.Deduct, Message: o.Message,
					})
					break
				}
			}
		case ruleset.KindRequires:
			// Absent or malformed lists count as empty.
			list, _ := responses.Choices(f.Key)
			for _, o := range f.Outcomes {
				if !contains(list, o.When) {
					applied = append(applied, Deduction{
						Factor: f.ID, Key: f.Key,
						Points: o.Deduct, Message: o.Message,
					})
				}
			}
		}
	}
	return applied
}

// ComputeScore subtracts the summed deductions from the base score and
// clamps the result to [0, 100].
func ComputeScore(totalDeduction int) int {
	score := baseScore - totalDeduction
	if score < 0 {
		score = 0
	}
	if score > baseScore {
		score = baseScore
	}
	return score
}

func summaryFor(s ruleset.Summaries, tier Tier) string {
	switch tier {
	case TierExcellent:
		return s.Excellent
	case TierGood:
		return s.Good
	default:
		return s.Attention
	}
}
