package report

// A Result is derived once from a partial job record and never changes.
// Severity and Duration are computed together so they cannot disagree.

import (
	"time"

	"github.com/psantana5/jobhealth/internal/eventlog"
)

// Severity is the health verdict for a single job
type Severity string

const (
	SeverityOK         Severity = "OK"
	SeverityWarning    Severity = "WARNING"
	SeverityError      Severity = "ERROR"
	SeverityIncomplete Severity = "INCOMPLETE"
)

// Severities lists every verdict in report order
var Severities = []Severity{SeverityOK, SeverityWarning, SeverityError, SeverityIncomplete}

// UnknownDescription labels jobs that never logged a START event.
const UnknownDescription = "Unknown"

// Thresholds bound the WARNING and ERROR buckets. Durations are compared
// with strict greater-than, so a job lasting exactly Error is a WARNING.
type Thresholds struct {
	Warning time.Duration
	Error   time.Duration
}

// DefaultThresholds returns the stock 5 minute / 10 minute limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		Warning: 5 * time.Minute,
		Error:   10 * time.Minute,
	}
}

// Severity buckets a completed run. Negative spans are compared as-is.
func (t Thresholds) Severity(d time.Duration) Severity {
	switch {
	case d > t.Error:
		return SeverityError
	case d > t.Warning:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// Result is the classified view of one job.
type Result struct {
	JobID       string         `json:"job_id"`
	Description string         `json:"description"`
	StartTime   *time.Time     `json:"start_time,omitempty"`
	EndTime     *time.Time     `json:"end_time,omitempty"`
	Duration    *time.Duration `json:"duration,omitempty"`
	Severity    Severity       `json:"severity"`
}

// NewResult classifies a single partial record
func NewResult(p *eventlog.PartialJob, t Thresholds) Result {
	r := Result{
		JobID:       p.JobID,
		Description: UnknownDescription,
		StartTime:   copyTime(p.Start),
		EndTime:     copyTime(p.End),
		Severity:    SeverityIncomplete,
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Start != nil && p.End != nil {
		d := p.End.Sub(*p.Start)
		r.Duration = &d
		r.Severity = t.Severity(d)
	}
	return r
}

// Classify produces one Result per job, in first-sighting order.
// It never fails and does not modify jobs.
func Classify(jobs *eventlog.Jobs, t Thresholds) []Result {
	results := make([]Result, 0, jobs.Len())
	jobs.Each(func(p *eventlog.PartialJob) {
		results = append(results, NewResult(p, t))
	})
	return results
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Visible reports whether the result belongs in the rendered report
func (r Result) Visible() bool {
	return r.Severity != SeverityOK
}
