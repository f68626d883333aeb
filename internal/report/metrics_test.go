package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAll(t *testing.T) {
	m := NewMetrics()
	m.RecordAll(Classify(sampleJobs(t), DefaultThresholds()))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.jobs.WithLabelValues(string(SeverityOK))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues(string(SeverityWarning))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues(string(SeverityError))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobs.WithLabelValues(string(SeverityIncomplete))))
	assert.Equal(t, 4, testutil.CollectAndCount(m.jobs))
}

func TestMetrics_Export(t *testing.T) {
	m := NewMetrics()
	m.RecordAll(Classify(sampleJobs(t), DefaultThresholds()))

	var buf bytes.Buffer
	require.NoError(t, m.Export(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE jobhealth_jobs gauge")
	assert.Contains(t, out, `jobhealth_jobs{severity="ERROR"} 1`)
	assert.Contains(t, out, `jobhealth_jobs{severity="OK"} 0`)
	assert.Contains(t, out, "# TYPE jobhealth_job_duration_seconds histogram")
	assert.Contains(t, out, "jobhealth_job_duration_seconds_count 2")
	assert.Contains(t, out, "jobhealth_job_duration_seconds_sum 1080")
}

func TestMetrics_WriteTextfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobhealth.prom")

	m := NewMetrics()
	m.RecordResult(result(t, "1", "12:00:00", "12:20:00", SeverityError))
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `jobhealth_jobs{severity="ERROR"} 1`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestMetrics_WriteTextfile_MissingDir(t *testing.T) {
	m := NewMetrics()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "nope", "jobhealth.prom"))
	assert.Error(t, err)
}
