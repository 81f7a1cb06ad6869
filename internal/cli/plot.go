package cli

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cdtplus/volprof/internal/parser"
	"github.com/cdtplus/volprof/internal/profile"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	Out    string
	Title  string
	Width  int
	Height int
}

// plotResult is the JSON payload for the plot command.
type plotResult struct {
	Input  string         `json:"input"`
	Chart  string         `json:"chart"`
	Points int            `json:"points"`
	Series profile.Series `json:"series"`
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot [logfile]",
		Short: "Parse a simulation log and render the volume profile chart",
		Long: `Scan the simulation log, derive the (timeslice, volume) series from
the timeslice records, and render it as a line chart. The output
encoding is picked from the --out extension: .svg renders SVG,
anything else PNG.

Unlike run, plot treats a missing or unreadable log as an error.
With --strict the first malformed line or record also fails the
command.

Example:
  volprof plot
  volprof plot ./output.txt --out profile.svg --title "Volume Profile"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "chart output file (.png or .svg)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "chart title")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "chart width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "chart height in pixels")

	return cmd
}

func runPlot(opts *PlotOptions, args []string, cmd *cobra.Command) error {
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
	if opts.Out != "" {
		cfg.Chart.Out = opts.Out
	}
	if opts.Title != "" {
		cfg.Chart.Title = opts.Title
	}
	if opts.Width > 0 {
		cfg.Chart.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Chart.Height = opts.Height
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

	series, dropped, serr := res.Profile.Series(policyFor(cfg))
	if serr != nil {
		formatter.Error(ErrCodeRecord, serr.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeRecord+": malformed timeslice record", serr)
	}
	for _, re := range dropped {
		logger.Warn("skipping malformed record", "index", re.Index, "tokens", re.Tokens)
	}

	formatter.VerboseLog("timevalues: %v", series.Timevalues)
	formatter.VerboseLog("volume: %v", series.Volume)

	if err := writeChart(cfg.Chart.Out, series, cfg.Chart); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeChart+": failed to write chart", err)
	}
	logger.Info("chart written", "path", cfg.Chart.Out, "points", series.Len())

	if opts.Format == "json" {
		return formatter.Success(plotResult{
			Input:  input,
			Chart:  cfg.Chart.Out,
			Points: series.Len(),
			Series: series,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Chart written to %s (%d points)\n", cfg.Chart.Out, series.Len())
	return nil
}
