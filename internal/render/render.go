// Package render produces Markdown output from evaluations and assessment history.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/cyclecare/internal/assessment"
	"github.com/dshills/cyclecare/internal/record"
)

// Markdown renders one evaluation as a Markdown report.
func Markdown(ev assessment.Evaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Assessment\n\n", title(string(ev.Type)))
	fmt.Fprintf(&b, "**Score:** %d / 100\n", ev.Result.Score)
	if ev.Known {
		fmt.Fprintf(&b, "**Tier:** %s\n", ev.Tier)
	}
	b.WriteString("\n")

	if len(ev.Result.Recommendations) > 0 {
		fmt.Fprintf(&b, "%s\n\n", ev.Result.Recommendations[0])
	}

	if len(ev.Applied) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, d := range ev.Applied {
			renderDeduction(&b, d)
		}
	} else if ev.Known {
		b.WriteString("No risk factors found.\n\n")
	}

	return b.String()
}

// History renders a user's stored assessments, newest first.
func History(userID int, list []*record.Assessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Assessment History (user %d)\n\n", userID)
	if len(list) == 0 {
		b.WriteString("No assessments recorded.\n")
		return b.String()
	}

	b.WriteString("| Date | Type | Score | Summary |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, a := range list {
		summary := ""
		if len(a.Recommendations) > 0 {
			summary = a.Recommendations[0]
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			a.CreatedAt.Format("2006-01-02"), a.Type, a.Score, escapeCell(summary))
	}
	b.WriteString("\n")

	return b.String()
}

func renderDeduction(b *strings.Builder, d assessment.Deduction) {
	if d.Answer != "" {
		fmt.Fprintf(b, "- **%s** (%s, -%d): %s\n", d.Key, d.Answer, d.Points, d.Message)
		return
	}
	fmt.Fprintf(b, "- **%s** (-%d): %s\n", d.Key, d.Points, d.Message)
}

func title(s string) string {
	if s == "" {
		return "Health"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
