package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotPNG(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	chartPath := filepath.Join(t.TempDir(), "profile.png")

	stdout, _, err := execute(t, "plot", logPath, "--out", chartPath)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "✓ Chart written to")
	assert.Contains(t, stdout.String(), "2 points")

	data, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestPlotSVGWithTitle(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	chartPath := filepath.Join(t.TempDir(), "profile.svg")

	_, _, err := execute(t, "plot", logPath, "--out", chartPath, "--title", "S3 sweep")
	require.NoError(t, err)

	data, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "S3 sweep")
}

func TestPlotJSON(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	chartPath := filepath.Join(t.TempDir(), "profile.png")

	stdout, _, err := execute(t, "plot", logPath, "--out", chartPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, chartPath, data["chart"])
	assert.Equal(t, float64(2), data["points"])
}

func TestPlotStrictShortRecord(t *testing.T) {
	logPath := writeLog(t, "Timeslice 7\n")
	chartPath := filepath.Join(t.TempDir(), "profile.png")

	stdout, _, err := execute(t, "plot", logPath, "--out", chartPath, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeRecord)
	assert.Contains(t, stdout.String(), "timeslice record 0")

	_, statErr := os.Stat(chartPath)
	assert.True(t, os.IsNotExist(statErr), "no chart should be written on a record error")
}

func TestPlotMissingLog(t *testing.T) {
	_, _, err := execute(t, "plot", filepath.Join(t.TempDir(), "absent.txt"), "--out",
		filepath.Join(t.TempDir(), "profile.png"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeFile)
}

func TestPlotUnwritableOutput(t *testing.T) {
	logPath := writeLog(t, sampleLog)

	_, _, err := execute(t, "plot", logPath, "--out",
		filepath.Join(t.TempDir(), "missing-dir", "profile.png"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeChart)
}
