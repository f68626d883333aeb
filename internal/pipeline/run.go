// Package pipeline wires the parse, classify and metrics steps into a
// single batch run.
package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/psantana5/jobhealth/internal/eventlog"
	"github.com/psantana5/jobhealth/internal/logging"
	"github.com/psantana5/jobhealth/internal/observe"
	"github.com/psantana5/jobhealth/internal/report"
)

// Options configures one run
type Options struct {
	Path        string
	Thresholds  report.Thresholds
	MetricsFile string // empty disables the textfile
	Log         *logging.Logger
}

// Outcome is everything a successful run produced
type Outcome struct {
	Results []report.Result
	Summary report.Summary
}

// Run parses the log at opts.Path and classifies every job. The input is
// closed before classification starts. On error no outcome is returned and
// no metrics are written.
func Run(opts Options) (*Outcome, error) {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	log = &logging.Logger{Entry: log.WithField("input", opts.Path)}

	timing := observe.NewTiming()

	jobs, err := eventlog.ParseFile(opts.Path)
	if err != nil {
		return nil, err
	}
	timing.Mark("parse")

	results := report.Classify(jobs, opts.Thresholds)
	summary := report.Summarize(results)
	timing.Mark("classify")

	if opts.MetricsFile != "" {
		metrics := report.NewMetrics()
		metrics.RecordAll(results)
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
		timing.Mark("metrics")
	}

	fields := logrus.Fields{
		"jobs":       summary.Total,
		"hidden_ok":  summary.Hidden(),
		"warning":    summary.Counts[report.SeverityWarning],
		"error":      summary.Counts[report.SeverityError],
		"incomplete": summary.Counts[report.SeverityIncomplete],
	}
	fields["elapsed"] = timing.Duration().String()
	for _, stage := range timing.Stages() {
		fields["stage_"+stage.Name] = stage.Duration.String()
	}
	log.WithFields(fields).Debug("report computed")

	return &Outcome{Results: results, Summary: summary}, nil
}
