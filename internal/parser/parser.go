// Package parser implements the line classifier and extractor for CDT
// simulation logs.
//
// The scan is a single linear pass. Each line is classified by a fixed
// set of textual prefixes; recognized lines have their maximal runs of
// decimal digits extracted as tokens. Everything else is ignored. There
// is no blanket error swallowing: a scan returns a typed Result carrying
// whatever was accumulated, plus per-line errors identifying exactly
// which line failed and why, so callers decide whether to abort or to
// continue with partial data.
package parser

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cdtplus/volprof/internal/profile"
)

// Recognized line prefixes. Lines matching none of these are ignored.
const (
	prefixMinTimevalue = "Minimum timevalue"
	prefixMaxTimevalue = "Maximum timevalue"
	prefixFinalNumber  = "Final number"
	prefixTimeslice    = "Timeslice"
)

var digitRuns = regexp.MustCompile(`\d+`)

// Result is the outcome of one scan. Profile is never nil, even after a
// failed scan, so callers can report and plot partial data.
type Result struct {
	Profile *profile.Profile

	// Lines is the total number of lines scanned.
	Lines int

	// Matched is the number of lines matching a recognized prefix,
	// including malformed ones.
	Matched int

	// Skipped holds the malformed lines dropped under PolicySkip.
	Skipped []*LineError
}

// Parse scans r line by line and accumulates scalars and timeslice
// records. A recognized line with no digit tokens is malformed: under
// profile.PolicyFail the scan stops and returns the LineError; under
// profile.PolicySkip it is recorded in Result.Skipped and the scan
// continues. The returned Result is always non-nil.
func Parse(r io.Reader, policy profile.Policy) (*Result, error) {
	res := &Result{Profile: profile.New()}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		res.Lines++
		lerr := res.classify(sc.Text())
		if lerr == nil {
			continue
		}
		if policy == profile.PolicyFail {
			return res, lerr
		}
		res.Skipped = append(res.Skipped, lerr)
	}
	if err := sc.Err(); err != nil {
		return res, &FileError{Op: "read", Err: err}
	}
	return res, nil
}

// ParseFile opens path and scans it. The file is closed on every path
// out of the scan. Open failures return a FileError together with an
// empty (but usable) Result, matching the continue-with-empty-aggregates
// behavior callers rely on for missing logs.
func ParseFile(path string, policy profile.Policy) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Result{Profile: profile.New()}, &FileError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()
	return Parse(f, policy)
}

// classify routes one line by prefix, extracting its digit tokens.
func (r *Result) classify(line string) *LineError {
	switch {
	case strings.HasPrefix(line, prefixMinTimevalue):
		return r.scalar(line, &r.Profile.Scalars.MinTimevalue)
	case strings.HasPrefix(line, prefixMaxTimevalue):
		return r.scalar(line, &r.Profile.Scalars.MaxTimevalue)
	case strings.HasPrefix(line, prefixFinalNumber):
		return r.scalar(line, &r.Profile.Scalars.FinalNumber)
	case strings.HasPrefix(line, prefixTimeslice):
		r.Matched++
		toks := digitRuns.FindAllString(line, -1)
		if len(toks) == 0 {
			return &LineError{Code: ErrCodeNoDigits, Line: r.Lines, Text: line}
		}
		r.Profile.Append(profile.Record(toks))
		return nil
	}
	return nil
}

// scalar extracts the first digit token of line into dst as a float.
func (r *Result) scalar(line string, dst *float64) *LineError {
	r.Matched++
	toks := digitRuns.FindAllString(line, -1)
	if len(toks) == 0 {
		return &LineError{Code: ErrCodeNoDigits, Line: r.Lines, Text: line}
	}
	v, err := strconv.ParseFloat(toks[0], 64)
	if err != nil {
		return &LineError{Code: ErrCodeBadNumber, Line: r.Lines, Text: line, Err: err}
	}
	*dst = v
	return nil
}
