package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psantana5/jobhealth/internal/eventlog"
)

const eventLog = `12:00:00,test job 1,START,10001
12:06:00,test job 1,END,10001
12:10:00,test job 2,START,10002
12:22:00,test job 2,END,10002
12:30:00,test job 3,START,10003
09:00:00,quick,START,10004
09:03:00,quick,END,10004
12:00:00,too short,START
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCmd_Report(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)

	stdout, _, err := execute(t, path)
	require.NoError(t, err)

	expected := "[WARNING] PID 10001 (test job 1): Started at 12:00:00, Ended at 12:06:00, Duration: 0:06:00\n" +
		"[ERROR] PID 10002 (test job 2): Started at 12:10:00, Ended at 12:22:00, Duration: 0:12:00\n" +
		"[INCOMPLETE] PID 10003 (test job 3): Started at 12:30:00, Ended at N/A, Duration: N/A\n"
	assert.Equal(t, expected, stdout)
}

func TestRootCmd_BoundaryIsWarning(t *testing.T) {
	path := writeFile(t, "events.log", "12:00:00,test job,START,20001\n12:10:00,test job,END,20001\n")

	stdout, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Equal(t, "[WARNING] PID 20001 (test job): Started at 12:00:00, Ended at 12:10:00, Duration: 0:10:00\n", stdout)
}

func TestRootCmd_ThresholdFlags(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)

	stdout, _, err := execute(t, path, "--warning-threshold", "1m", "--error-threshold", "2m")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "[ERROR] PID 10004 "), lines[0])
}

func TestRootCmd_ConfigFile(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)
	cfg := writeFile(t, "jobhealth.yaml", "thresholds:\n  warning: 7m\n  error: 30m\n")

	stdout, _, err := execute(t, path, "--config", cfg)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "PID 10001")
	assert.Contains(t, stdout, "[WARNING] PID 10002")
}

func TestRootCmd_BadTimestamp(t *testing.T) {
	path := writeFile(t, "events.log", "12:00:00,a,START,1\n12h00,a,END,1\n")

	stdout, stderr, err := execute(t, path)
	require.Error(t, err)
	assert.Empty(t, stdout, "no partial report on failure")
	assert.Contains(t, err.Error(), "12h00")
	assert.Contains(t, stderr, "report aborted")

	var perr *eventlog.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestRootCmd_BadTimestampLogsToFile(t *testing.T) {
	path := writeFile(t, "events.log", "12:00:00.5,a,START,1\n")
	logFile := filepath.Join(t.TempDir(), "jobhealth.log")

	_, _, err := execute(t, path, "--log-file", logFile)
	require.Error(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "report aborted")
	assert.Contains(t, string(data), "fractional seconds")
}

func TestRootCmd_MissingInput(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "nope.log"))

	var serr *eventlog.SourceError
	assert.True(t, errors.As(err, &serr))
}

func TestRootCmd_RequiresOneArg(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)
}

func TestRootCmd_InvalidThresholds(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)

	_, _, err := execute(t, path, "--warning-threshold", "20m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed")
}

func TestRootCmd_MetricsFile(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)
	metrics := filepath.Join(t.TempDir(), "jobhealth.prom")

	_, _, err := execute(t, path, "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `jobhealth_jobs{severity="WARNING"} 1`)
}

func TestSummaryCmd(t *testing.T) {
	path := writeFile(t, "events.log", eventLog)

	stdout, _, err := execute(t, "summary", path)
	require.NoError(t, err)

	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "OK") {
			assert.Contains(t, line, "1")
		}
	}
	assert.Contains(t, stdout, "INCOMPLETE")
	assert.Contains(t, stdout, "4")
}

func TestConfigShowCmd(t *testing.T) {
	stdout, _, err := execute(t, "config", "show", "--error-threshold", "15m", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stdout, "warning: 5m0s")
	assert.Contains(t, stdout, "error: 15m0s")
	assert.Contains(t, stdout, "level: debug")
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
