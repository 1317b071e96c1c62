package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/cyclecare/internal/ruleset"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [type]",
		Short: "List scoring rule sets, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runRules(name, cmd.OutOrStdout())
		},
	}
}

func runRules(name string, stdout io.Writer) error {
	if name != "" {
		rs, err := ruleset.LoadBuiltin(strings.ToLower(name))
		if err != nil {
			return exitError(3, "%v", err)
		}
		_, err = fmt.Fprint(stdout, ruleset.Describe(rs))
		return err
	}

	names, err := ruleset.List()
	if err != nil {
		return fmt.Errorf("failed to list rule sets: %w", err)
	}
	for _, n := range names {
		rs, err := ruleset.LoadBuiltin(n)
		if err != nil {
			return exitError(3, "%v", err)
		}
		fmt.Fprintf(stdout, "%-10s %d factors, max deduction %d\n", rs.Name, len(rs.Factors), ruleset.MaxDeduction(rs))
	}
	return nil
}
