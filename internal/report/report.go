// Package report renders the text summary of a scanned profile: the
// three-element scalar result followed by one sentence per timeslice
// record.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cdtplus/volprof/internal/profile"
)

// Write prints the scalar summary in [finalNumber minTimevalue
// maxTimevalue] order, then one sentence per record in input order. A
// record with fewer than two tokens gets a malformed-record notice
// instead of a sentence; it never aborts the report.
func Write(w io.Writer, p *profile.Profile) error {
	s := p.Scalars
	if _, err := fmt.Fprintf(w, "[%s %s %s]\n",
		formatScalar(s.FinalNumber),
		formatScalar(s.MinTimevalue),
		formatScalar(s.MaxTimevalue)); err != nil {
		return err
	}
	for i, rec := range p.Records {
		if _, err := fmt.Fprintln(w, recordLine(i, rec)); err != nil {
			return err
		}
	}
	return nil
}

// Sentence formats the human-readable line for one well-formed record.
func Sentence(rec profile.Record) string {
	return fmt.Sprintf("Timeslice %s has %s spacelike faces.", rec[0], rec[1])
}

// Summary is the JSON shape of a report.
type Summary struct {
	Scalars   profile.ScalarResult `json:"scalars"`
	Records   []profile.Record     `json:"records"`
	Sentences []string             `json:"sentences"`
}

// Summarize builds the JSON-facing summary for a profile. Malformed
// records appear in Records but contribute a notice, not a sentence.
func Summarize(p *profile.Profile) Summary {
	sum := Summary{
		Scalars:   p.Scalars,
		Records:   p.Records,
		Sentences: make([]string, 0, len(p.Records)),
	}
	for i, rec := range p.Records {
		sum.Sentences = append(sum.Sentences, recordLine(i, rec))
	}
	return sum
}

func recordLine(index int, rec profile.Record) string {
	if len(rec) < 2 {
		return fmt.Sprintf("Timeslice record %d is malformed (%d tokens).", index, len(rec))
	}
	return Sentence(rec)
}

// formatScalar prints a scalar with no trailing zeros, so whole numbers
// read as integers.
func formatScalar(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
