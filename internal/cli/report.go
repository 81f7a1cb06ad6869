package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cdtplus/volprof/internal/parser"
	"github.com/cdtplus/volprof/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
}

// reportResult is the JSON payload for the report command.
type reportResult struct {
	Input   string         `json:"input"`
	Summary report.Summary `json:"summary"`
	Lines   int            `json:"lines_scanned"`
	Matched int            `json:"lines_matched"`
	Skipped int            `json:"lines_skipped"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [logfile]",
		Short: "Parse a simulation log and print the summary",
		Long: `Scan the simulation log and print the scalar summary followed by
one sentence per timeslice record. No chart is rendered.

Unlike run, report treats a missing or unreadable log as an error.
With --strict the first malformed line also fails the command.

Example:
  volprof report
  volprof report ./output.txt --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args, cmd)
		},
	}

	return cmd
}

func runReport(opts *ReportOptions, args []string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	cfg, err := resolveConfig(opts.RootOptions, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}
	input := cfg.Input
	if len(args) == 1 {
		input = args[0]
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   runID,
	}

	res, scanErr := scanLog(logger, input, policyFor(cfg))
	if scanErr != nil {
		if parser.IsFileError(scanErr) {
			formatter.Error(ErrCodeFile, scanErr.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeFile+": input not readable", scanErr)
		}
		formatter.Error(ErrCodeParse, scanErr.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeParse+": malformed input", scanErr)
	}

	formatter.VerboseLog("records: %v", res.Profile.Records)

	if opts.Format == "json" {
		return formatter.Success(reportResult{
			Input:   input,
			Summary: report.Summarize(res.Profile),
			Lines:   res.Lines,
			Matched: res.Matched,
			Skipped: len(res.Skipped),
		})
	}
	if err := report.Write(cmd.OutOrStdout(), res.Profile); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}
	return nil
}
