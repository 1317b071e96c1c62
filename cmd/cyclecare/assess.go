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
	"github.com/dshills/cyclecare/internal/redact"
	"github.com/dshills/cyclecare/internal/render"
	"github.com/dshills/cyclecare/internal/schema"
	"github.com/dshills/cyclecare/internal/submission"
)

type assessFlags struct {
	typ           string
	userID        int
	format        string
	out           string
	save          bool
	dataDir       string
	redactEnabled bool
	failBelow     int
	verbose       bool
	logLevel      string
	logFormat     string
}

func newAssessCmd(cfg *config.Config) *cobra.Command {
	f := &assessFlags{logLevel: cfg.LogLevel, logFormat: cfg.LogFormat}

	cmd := &cobra.Command{
		Use:   "assess <submission-file>",
		Short: "Score a questionnaire submission and print recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(args[0], f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.typ, "type", "", "Assessment type (overrides the submission): menstrual, hygiene, nutrition, mental")
	flags.IntVar(&f.userID, "user", 0, "User ID (overrides the submission)")
	flags.StringVar(&f.format, "format", cfg.Format, "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.BoolVar(&f.save, "save", false, "Store the scored assessment")
	flags.StringVar(&f.dataDir, "data-dir", cfg.DataDir, "Directory for stored assessments")
	flags.BoolVar(&f.redactEnabled, "redact", true, "Redact personal data from free-text answers")
	flags.IntVar(&f.failBelow, "fail-below", 0, "Exit non-zero if the score is below this value")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	return cmd
}

func runAssess(path string, f *assessFlags, stdout, stderr io.Writer) error {
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	logger := logging.New(stderr, level, f.logFormat)

	if f.format != "json" && f.format != "md" {
		return exitError(3, "unknown format: %s", f.format)
	}

	// 1. Load submission
	logger.Debug("loading submission", "path", path)
	sub, err := submission.Load(path)
	if err != nil {
		return exitError(3, "failed to load submission: %v", err)
	}

	if f.typ != "" {
		if t, ok := assessment.ParseType(f.typ); ok {
			sub.Type = string(t)
		} else {
			sub.Type = f.typ
		}
	}
	if f.userID != 0 {
		sub.UserID = f.userID
	}
	if !assessment.Type(sub.Type).Valid() {
		logger.Warn("unrecognized assessment type, using fallback result", "type", sub.Type)
	}

	// 2. Redact
	if f.redactEnabled {
		logger.Debug("redacting free-text answers")
		sub.Responses = redact.Responses(sub.Responses)
	}

	// 3. Score
	a, ev, err := record.Build(record.Input{
		UserID:    sub.UserID,
		Type:      sub.Type,
		Responses: sub.Responses,
		Hash:      sub.Hash,
	})
	if err != nil {
		return exitError(3, "invalid submission: %v", err)
	}
	logger.Debug("scored submission", "type", sub.Type, "score", ev.Result.Score,
		"tier", ev.Tier, "deductions", len(ev.Applied))

	// 4. Validate
	if errs := schema.ValidateResult(sub.Type, ev.Result); len(errs) > 0 {
		for _, e := range errs {
			logger.Error("result validation", "error", e.Error())
		}
		return exitError(5, "scored result failed validation")
	}

	// 5. Persist
	if f.save {
		store, err := record.NewFileStore(f.dataDir)
		if err != nil {
			return exitError(6, "failed to open store: %v", err)
		}
		if err := store.Create(a); err != nil {
			return exitError(6, "failed to store assessment: %v", err)
		}
		logger.Info("stored assessment", "id", a.ID, "user_id", a.UserID, "dir", f.dataDir)
	}

	// 6. Output
	var output string
	switch f.format {
	case "json":
		data, err := json.MarshalIndent(ev.Result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	default:
		output = render.Markdown(ev)
	}

	if f.out != "" {
		logger.Debug("writing output", "path", f.out)
	}
	if err := writeOutput(stdout, f.out, output); err != nil {
		return err
	}

	// 7. Exit code based on --fail-below
	if f.failBelow > 0 && ev.Result.Score < f.failBelow {
		return exitError(2, "score %d is below %d", ev.Result.Score, f.failBelow)
	}

	return nil
}
