package report

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"time"
)

// NotAvailable stands in for a missing time or duration.
const NotAvailable = "N/A"

// ClockLayout prints the time-of-day part of a timestamp
const ClockLayout = "15:04:05"

// Render sorts results by start time, drops OK jobs and formats the rest.
// Jobs without a start time sort first; ties keep their input order.
// The input slice is left untouched.
func Render(results []Result) []string {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, compareStart)

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		if !r.Visible() {
			continue
		}
		lines = append(lines, FormatLine(r))
	}
	return lines
}

// WriteReport renders results to w, one line per job
func WriteReport(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, line := range Render(results) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatLine formats a single report line
func FormatLine(r Result) string {
	duration := NotAvailable
	if r.Duration != nil {
		duration = FormatDuration(*r.Duration)
	}
	return fmt.Sprintf("[%s] PID %s (%s): Started at %s, Ended at %s, Duration: %s",
		r.Severity,
		r.JobID,
		r.Description,
		formatClock(r.StartTime),
		formatClock(r.EndTime),
		duration,
	)
}

// FormatDuration prints d as H:MM:SS. Spans below zero are day-normalized,
// so minus five minutes reads "-1 day, 23:55:00".
func FormatDuration(d time.Duration) string {
	const secondsPerDay = 24 * 60 * 60

	secs := int64(d / time.Second)
	days := secs / secondsPerDay
	rem := secs % secondsPerDay
	if rem < 0 {
		rem += secondsPerDay
		days--
	}

	clock := fmt.Sprintf("%d:%02d:%02d", rem/3600, rem%3600/60, rem%60)
	switch days {
	case 0:
		return clock
	case 1, -1:
		return fmt.Sprintf("%d day, %s", days, clock)
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.Format(ClockLayout)
}

func compareStart(a, b Result) int {
	switch {
	case a.StartTime == nil && b.StartTime == nil:
		return 0
	case a.StartTime == nil:
		return -1
	case b.StartTime == nil:
		return 1
	default:
		return a.StartTime.Compare(*b.StartTime)
	}
}
