// Package ruleset loads the built-in scoring rule tables for each assessment type.
package ruleset

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Kind selects how a factor reads its response value.
type Kind string

const (
	// KindChoice matches a single category code against each outcome.
	KindChoice Kind = "choice"
	// KindRequires deducts when a list of codes lacks the outcome's code.
	KindRequires Kind = "requires"
)

func (k Kind) Valid() bool {
	switch k {
	case KindChoice, KindRequires:
		return true
	}
	return false
}

// Ruleset is the rule table for one assessment type.
type Ruleset struct {
	Name        string    `yaml:"name"`
	Version     int       `yaml:"version"`
	Description string    `yaml:"description"`
	Summaries   Summaries `yaml:"summaries"`
	Factors     []Factor  `yaml:"factors"`
}

// Summaries holds the tier summary text, one per score band.
type Summaries struct {
	Excellent string `yaml:"excellent"`
	Good      string `yaml:"good"`
	Attention string `yaml:"attention"`
}

// Factor is one scored question. Factors are applied in declaration order.
type Factor struct {
	ID       string    `yaml:"id"`
	Key      string    `yaml:"key"`
	Kind     Kind      `yaml:"kind"`
	Outcomes []Outcome `yaml:"outcomes"`
}

// Outcome is a trigger value with its deduction and explanation.
type Outcome struct {
	When    string `yaml:"when"`
	Deduct  int    `yaml:"deduct"`
	Message string `yaml:"message"`
}

// LoadBuiltin loads a built-in ruleset by name.
func LoadBuiltin(name string) (*Ruleset, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("ruleset.LoadBuiltin: unknown ruleset %q: %w", name, err)
	}
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("ruleset.LoadBuiltin: parse %q: %w", name, err)
	}
	if problems := Check(&rs); len(problems) > 0 {
		return nil, fmt.Errorf("ruleset.LoadBuiltin: %q: %s", name, strings.Join(problems, "; "))
	}
	return &rs, nil
}

// List returns the names of all available built-in rulesets, sorted.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Check reports structural problems in a ruleset. An empty result means usable.
func Check(rs *Ruleset) []string {
	var problems []string
	if rs.Name == "" {
		problems = append(problems, "name: required")
	}
	if rs.Summaries.Excellent == "" || rs.Summaries.Good == "" || rs.Summaries.Attention == "" {
		problems = append(problems, "summaries: all three tiers required")
	}
	seen := make(map[string]bool)
	for i, f := range rs.Factors {
		prefix := fmt.Sprintf("factors[%d]", i)
		if f.ID == "" {
			problems = append(problems, prefix+".id: required")
		} else if seen[f.ID] {
			problems = append(problems, fmt.Sprintf("%s.id: duplicate %q", prefix, f.ID))
		} else {
			seen[f.ID] = true
		}
		if f.Key == "" {
			problems = append(problems, prefix+".key: required")
		}
		if !f.Kind.Valid() {
			problems = append(problems, fmt.Sprintf("%s.kind: invalid %q", prefix, f.Kind))
		}
		if len(f.Outcomes) == 0 {
			problems = append(problems, prefix+".outcomes: at least one required")
		}
		if f.Kind == KindRequires && len(f.Outcomes) > 1 {
			problems = append(problems, prefix+".outcomes: requires takes exactly one outcome")
		}
		for j, o := range f.Outcomes {
			op := fmt.Sprintf("%s.outcomes[%d]", prefix, j)
			if o.When == "" {
				problems = append(problems, op+".when: required")
			}
			if o.Deduct <= 0 {
				problems = append(problems, op+".deduct: must be > 0")
			}
			if o.Message == "" {
				problems = append(problems, op+".message: required")
			}
		}
	}
	return problems
}

// MaxDeduction is the largest total a ruleset can subtract in one evaluation.
func MaxDeduction(rs *Ruleset) int {
	total := 0
	for _, f := range rs.Factors {
		best := 0
		for _, o := range f.Outcomes {
			if o.Deduct > best {
				best = o.Deduct
			}
		}
		total += best
	}
	return total
}

// Describe renders a ruleset as plain text for the terminal.
func Describe(rs *Ruleset) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ruleset: %s (v%d)\n", rs.Name, rs.Version)
	if rs.Description != "" {
		fmt.Fprintf(&b, "%s\n", strings.TrimSpace(rs.Description))
	}
	b.WriteString("\n")

	for _, f := range rs.Factors {
		fmt.Fprintf(&b, "%s (%s, %s)\n", f.ID, f.Key, f.Kind)
		for _, o := range f.Outcomes {
			switch f.Kind {
			case KindRequires:
				fmt.Fprintf(&b, "  missing %q  -%d  %s\n", o.When, o.Deduct, o.Message)
			default:
				fmt.Fprintf(&b, "  %q  -%d  %s\n", o.When, o.Deduct, o.Message)
			}
		}
	}

	b.WriteString("\nSummaries:\n")
	fmt.Fprintf(&b, "  >= 80: %s\n", rs.Summaries.Excellent)
	fmt.Fprintf(&b, "  >= 60: %s\n", rs.Summaries.Good)
	fmt.Fprintf(&b, "  <  60: %s\n", rs.Summaries.Attention)
	fmt.Fprintf(&b, "\nMaximum deduction: %d\n", MaxDeduction(rs))

	return b.String()
}
