package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/cyclecare/internal/assessment"
	"github.com/dshills/cyclecare/internal/config"
	"github.com/dshills/cyclecare/internal/logging"
	"github.com/dshills/cyclecare/internal/record"
	"github.com/dshills/cyclecare/internal/render"
	"github.com/dshills/cyclecare/internal/schema"
)

type historyFlags struct {
	userID    int
	typ       string
	format    string
	out       string
	dataDir   string
	logLevel  string
	logFormat string
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	f := &historyFlags{logLevel: cfg.LogLevel, logFormat: cfg.LogFormat}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored assessments for a user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.userID, "user", 0, "User ID (required)")
	flags.StringVar(&f.typ, "type", "", "Only show this assessment type")
	flags.StringVar(&f.format, "format", cfg.Format, "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.dataDir, "data-dir", cfg.DataDir, "Directory for stored assessments")

	return cmd
}

func runHistory(f *historyFlags, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, f.logLevel, f.logFormat)

	if f.userID <= 0 {
		return exitError(3, "--user must be a positive user ID")
	}
	if f.format != "json" && f.format != "md" {
		return exitError(3, "unknown format: %s", f.format)
	}
	typ := f.typ
	if t, ok := assessment.ParseType(typ); ok {
		typ = string(t)
	}

	store, err := record.NewFileStore(f.dataDir)
	if err != nil {
		return exitError(6, "failed to open store: %v", err)
	}
	list, skipped, err := store.ListByUserReport(f.userID)
	if err != nil {
		return exitError(6, "failed to read assessments: %v", err)
	}
	for _, u := range skipped {
		logger.Warn("skipped unreadable assessment", "file", u.File, "error", u.Err.Error())
	}
	list = record.FilterByType(list, typ)

	// Stored results are shown as written; invalid ones are only reported.
	for _, a := range list {
		for _, e := range schema.ValidateRecord(a) {
			logger.Warn("stored assessment failed validation", "id", a.ID, "error", e.Error())
		}
	}
	logger.Debug("loaded history", "user_id", f.userID, "count", len(list))

	var output string
	switch f.format {
	case "json":
		if list == nil {
			list = []*record.Assessment{}
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	default:
		output = render.History(f.userID, list)
	}

	return writeOutput(stdout, f.out, output)
}
