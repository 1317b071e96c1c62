// Package assessment scores health questionnaire responses into a 0-100
// score and an ordered list of recommendations.
package assessment

// Result is the persisted outcome of one evaluation. The first
// recommendation is always the tier summary.
type Result struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Deduction records a factor that fired during evaluation.
type Deduction struct {
	Factor  string `json:"factor"`
	Key     string `json:"key"`
	Answer  string `json:"answer,omitempty"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

// Evaluation is a Result together with how it was reached.
type Evaluation struct {
	Type    Type        `json:"type"`
	Known   bool        `json:"known"`
	Tier    Tier        `json:"tier,omitempty"`
	Applied []Deduction `json:"applied,omitempty"`
	Result  Result      `json:"result"`
}
