package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdtplus/volprof/internal/profile"
)

const sampleLog = `Final number of something = 42
Minimum timevalue = 1
Maximum timevalue = 9
Timeslice 0 has 10 spacelike faces.
Timeslice 1 has 25 spacelike faces.
`

func TestParseSampleLog(t *testing.T) {
	res, err := Parse(strings.NewReader(sampleLog), profile.PolicySkip)
	require.NoError(t, err)

	assert.Equal(t, 42.0, res.Profile.Scalars.FinalNumber)
	assert.Equal(t, 1.0, res.Profile.Scalars.MinTimevalue)
	assert.Equal(t, 9.0, res.Profile.Scalars.MaxTimevalue)
	assert.Equal(t, []profile.Record{{"0", "10"}, {"1", "25"}}, res.Profile.Records)
	assert.Equal(t, 5, res.Lines)
	assert.Equal(t, 5, res.Matched)
	assert.Empty(t, res.Skipped)
}

func TestParseEmptyInput(t *testing.T) {
	res, err := Parse(strings.NewReader(""), profile.PolicySkip)
	require.NoError(t, err)

	assert.Equal(t, profile.ScalarResult{}, res.Profile.Scalars)
	assert.Empty(t, res.Profile.Records)
	assert.Zero(t, res.Lines)
	assert.Zero(t, res.Matched)
}

func TestParseIgnoresUnrecognizedLines(t *testing.T) {
	input := `Starting simulation with 64000 simplices
Minimum timevalue = 5
Pass 12 of 100
some noise 123 456
`
	res, err := Parse(strings.NewReader(input), profile.PolicySkip)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.Profile.Scalars.MinTimevalue)
	assert.Empty(t, res.Profile.Records)
	assert.Equal(t, 4, res.Lines)
	assert.Equal(t, 1, res.Matched)
}

func TestParseExtractsFirstTokenRegardlessOfSurroundingText(t *testing.T) {
	tests := []struct {
		name string
		line string
		get  func(profile.ScalarResult) float64
		want float64
	}{
		{"min plain", "Minimum timevalue = 5", func(s profile.ScalarResult) float64 { return s.MinTimevalue }, 5.0},
		{"min wordy", "Minimum timevalue reached was 7 after 100 passes", func(s profile.ScalarResult) float64 { return s.MinTimevalue }, 7.0},
		{"max", "Maximum timevalue = 16", func(s profile.ScalarResult) float64 { return s.MaxTimevalue }, 16.0},
		{"final", "Final number of simplices = 63998", func(s profile.ScalarResult) float64 { return s.FinalNumber }, 63998.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tt.line+"\n"), profile.PolicySkip)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.get(res.Profile.Scalars))
		})
	}
}

func TestParseLastMatchWins(t *testing.T) {
	input := `Minimum timevalue = 3
Minimum timevalue = 8
`
	res, err := Parse(strings.NewReader(input), profile.PolicySkip)
	require.NoError(t, err)
	assert.Equal(t, 8.0, res.Profile.Scalars.MinTimevalue)
}

func TestParseTimesliceCollectsAllTokens(t *testing.T) {
	input := "Timeslice 3 has 120 spacelike faces and 7 timelike edges\n"
	res, err := Parse(strings.NewReader(input), profile.PolicySkip)
	require.NoError(t, err)
	require.Len(t, res.Profile.Records, 1)
	assert.Equal(t, profile.Record{"3", "120", "7"}, res.Profile.Records[0])
}

func TestParsePreservesRecordOrder(t *testing.T) {
	input := `Timeslice 5 has 30 spacelike faces.
Timeslice 1 has 10 spacelike faces.
Timeslice 5 has 30 spacelike faces.
`
	res, err := Parse(strings.NewReader(input), profile.PolicySkip)
	require.NoError(t, err)

	// Input order, duplicates kept, never sorted.
	assert.Equal(t, []profile.Record{{"5", "30"}, {"1", "10"}, {"5", "30"}}, res.Profile.Records)
}

func TestParseMalformedLineSkipPolicy(t *testing.T) {
	input := `Minimum timevalue = ?
Maximum timevalue = 9
Timeslice (none yet)
`
	res, err := Parse(strings.NewReader(input), profile.PolicySkip)
	require.NoError(t, err)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, ErrCodeNoDigits, res.Skipped[0].Code)
	assert.Equal(t, 1, res.Skipped[0].Line)
	assert.Equal(t, ErrCodeNoDigits, res.Skipped[1].Code)
	assert.Equal(t, 3, res.Skipped[1].Line)

	// Skipped lines must not corrupt the other fields.
	assert.Equal(t, 0.0, res.Profile.Scalars.MinTimevalue)
	assert.Equal(t, 9.0, res.Profile.Scalars.MaxTimevalue)
	assert.Empty(t, res.Profile.Records)
}

func TestParseMalformedLineFailPolicy(t *testing.T) {
	input := `Maximum timevalue = 9
Minimum timevalue = ?
Timeslice 0 has 10 spacelike faces.
`
	res, err := Parse(strings.NewReader(input), profile.PolicyFail)
	require.Error(t, err)
	assert.True(t, IsLineError(err))

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNoDigits, le.Code)
	assert.Equal(t, 2, le.Line)
	assert.Equal(t, "Minimum timevalue = ?", le.Text)

	// Partial result still carries everything scanned before the failure.
	require.NotNil(t, res.Profile)
	assert.Equal(t, 9.0, res.Profile.Scalars.MaxTimevalue)
	assert.Empty(t, res.Profile.Records)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	res, err := ParseFile(path, profile.PolicySkip)
	require.NoError(t, err)
	assert.Equal(t, 42.0, res.Profile.Scalars.FinalNumber)
	assert.Len(t, res.Profile.Records, 2)
}

func TestParseFileMissing(t *testing.T) {
	res, err := ParseFile(filepath.Join(t.TempDir(), "no-such-file.txt"), profile.PolicySkip)
	require.Error(t, err)
	assert.True(t, IsFileError(err))

	// The result stays usable so callers can continue with empty aggregates.
	require.NotNil(t, res)
	require.NotNil(t, res.Profile)
	assert.Equal(t, profile.ScalarResult{}, res.Profile.Scalars)
	assert.Empty(t, res.Profile.Records)
}
