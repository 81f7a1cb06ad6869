package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cdtplus/volprof/internal/profile"
	"github.com/cdtplus/volprof/internal/report"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ChartOut string
	NoChart  bool
}

// runResult is the JSON payload for the run command.
type runResult struct {
	Input   string         `json:"input"`
	Summary report.Summary `json:"summary"`
	Series  profile.Series `json:"series"`
	Lines   int            `json:"lines_scanned"`
	Matched int            `json:"lines_matched"`
	Skipped int            `json:"lines_skipped"`
	Chart   string         `json:"chart,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [logfile]",
		Short: "Parse a simulation log, print the summary, and plot the volume profile",
		Long: `Run the full pipeline: scan the simulation log, print the scalar
summary and per-timeslice sentences, and render the volume profile
as a line chart.

The log defaults to output.txt in the working directory. Scan
failures do not abort the run: the error is logged with its full
context and reporting and plotting continue with whatever was
extracted before the failure. A missing log yields a zeroed summary
and an empty chart.

Example:
  volprof run
  volprof run ./output.txt --out profile.svg --verbose`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ChartOut, "out", "", "chart output file (.png or .svg)")
	cmd.Flags().BoolVar(&opts.NoChart, "no-chart", false, "skip chart rendering")

	return cmd
}

func runPipeline(opts *RunOptions, args []string, cmd *cobra.Command) error {
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

	res, scanErr := scanLog(logger, input, policyFor(cfg))
	if scanErr != nil {
		// Caught deliberately: log the full diagnostic and keep going
		// with whatever was accumulated before the failure.
		logger.Error("scan failed, continuing with partial data",
			"input", input, "error", scanErr)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   runID,
	}

	// Series building is best-effort here: run mirrors the original
	// pipeline, which never aborts between the scan and the chart.
	series, dropped, _ := res.Profile.Series(profile.PolicySkip)
	for _, re := range dropped {
		logger.Warn("skipping malformed record", "index", re.Index, "tokens", re.Tokens)
	}

	formatter.VerboseLog("records: %v", res.Profile.Records)
	formatter.VerboseLog("timevalues: %v", series.Timevalues)
	formatter.VerboseLog("volume: %v", series.Volume)

	if opts.Format != "json" {
		if err := report.Write(cmd.OutOrStdout(), res.Profile); err != nil {
			return WrapExitError(ExitCommandError, "failed to write report", err)
		}
	}

	chartPath := ""
	if !opts.NoChart {
		chartPath = cfg.Chart.Out
		if opts.ChartOut != "" {
			chartPath = opts.ChartOut
		}
		if err := writeChart(chartPath, series, cfg.Chart); err != nil {
			return WrapExitError(ExitCommandError, ErrCodeChart+": failed to write chart", err)
		}
		logger.Info("chart written", "path", chartPath, "points", series.Len())
	}

	if opts.Format == "json" {
		return formatter.Success(runResult{
			Input:   input,
			Summary: report.Summarize(res.Profile),
			Series:  series,
			Lines:   res.Lines,
			Matched: res.Matched,
			Skipped: len(res.Skipped),
			Chart:   chartPath,
		})
	}
	return nil
}
