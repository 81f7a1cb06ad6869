package cli

import (
	"log/slog"
	"os"

	"github.com/cdtplus/volprof/internal/config"
	"github.com/cdtplus/volprof/internal/parser"
	"github.com/cdtplus/volprof/internal/plot"
	"github.com/cdtplus/volprof/internal/profile"
)

// scanLog parses the input log with the given policy, logging every line
// skipped under PolicySkip. The returned result is always usable: on
// failure it carries whatever was accumulated before the failure.
func scanLog(logger *slog.Logger, input string, policy profile.Policy) (*parser.Result, error) {
	res, err := parser.ParseFile(input, policy)
	for _, le := range res.Skipped {
		logger.Warn("skipping malformed line",
			"code", string(le.Code), "line", le.Line, "text", le.Text)
	}
	logger.Debug("scan complete",
		"input", input,
		"lines", res.Lines,
		"matched", res.Matched,
		"records", len(res.Profile.Records),
		"skipped", len(res.Skipped))
	return res, err
}

// writeChart renders the series into path, with the encoding picked from
// the path's extension.
func writeChart(path string, s profile.Series, cc config.ChartConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := plot.Options{
		Title:  cc.Title,
		Width:  cc.Width,
		Height: cc.Height,
		Format: plot.FormatForPath(path),
	}
	if err := plot.Render(f, s, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
