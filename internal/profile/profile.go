// Package profile holds the data model for a single scan of a CDT
// simulation log: the scalar summary, the ordered timeslice records, and
// the integer series derived from them for plotting.
package profile

import "strconv"

// ScalarResult holds the three summary numbers extracted once per run.
// Fields start at zero; if a recognized prefix recurs in the input, the
// last match wins.
type ScalarResult struct {
	FinalNumber  float64 `json:"final_number"`
	MinTimevalue float64 `json:"min_timevalue"`
	MaxTimevalue float64 `json:"max_timevalue"`
}

// Record holds the digit tokens extracted from one Timeslice line, in
// left-to-right order. The first two tokens are interpreted as the
// timeslice index and the spacelike face count.
type Record []string

// Profile accumulates everything extracted from one pass over a log.
// Records keep input order and are never deduplicated or sorted.
type Profile struct {
	Scalars ScalarResult `json:"scalars"`
	Records []Record     `json:"records"`
}

// New returns an empty profile ready for accumulation.
func New() *Profile {
	return &Profile{}
}

// Append adds a timeslice record, preserving input order.
func (p *Profile) Append(rec Record) {
	p.Records = append(p.Records, rec)
}

// Policy controls how malformed lines and records are handled.
type Policy int

const (
	// PolicySkip drops the offending line or record and reports it
	// alongside the result.
	PolicySkip Policy = iota

	// PolicyFail stops at the first malformed line or record.
	PolicyFail
)

// Series is the pair of integer sequences derived from the records for
// plotting: timeslice indices on the horizontal axis, spacelike face
// counts on the vertical.
type Series struct {
	Timevalues []int `json:"timevalues"`
	Volume     []int `json:"volume"`
}

// Len returns the number of plot points in the series.
func (s Series) Len() int {
	return len(s.Timevalues)
}

// Series derives the plot series from the accumulated records, in record
// order. A record with fewer than two tokens, or with a token that does
// not fit an int, is a RecordError: under PolicyFail the first one is
// returned as the error; under PolicySkip the record is dropped and
// reported in the second return value.
func (p *Profile) Series(policy Policy) (Series, []*RecordError, error) {
	var s Series
	var skipped []*RecordError
	for i, rec := range p.Records {
		re := recordPoint(i, rec, &s)
		if re == nil {
			continue
		}
		if policy == PolicyFail {
			return s, skipped, re
		}
		skipped = append(skipped, re)
	}
	return s, skipped, nil
}

// recordPoint converts one record to a plot point, appending it to s.
func recordPoint(index int, rec Record, s *Series) *RecordError {
	if len(rec) < 2 {
		return &RecordError{Index: index, Tokens: len(rec)}
	}
	t, err := strconv.Atoi(rec[0])
	if err != nil {
		return &RecordError{Index: index, Tokens: len(rec), Err: err}
	}
	v, err := strconv.Atoi(rec[1])
	if err != nil {
		return &RecordError{Index: index, Tokens: len(rec), Err: err}
	}
	s.Timevalues = append(s.Timevalues, t)
	s.Volume = append(s.Volume, v)
	return nil
}
