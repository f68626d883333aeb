package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Summary counts jobs per severity, OK included
type Summary struct {
	Counts map[Severity]int `json:"counts"`
	Total  int              `json:"total"`
}

// Summarize tallies results by severity
func Summarize(results []Result) Summary {
	s := Summary{Counts: make(map[Severity]int, len(Severities))}
	for _, r := range results {
		s.Counts[r.Severity]++
		s.Total++
	}
	return s
}

// Hidden returns how many jobs the rendered report leaves out
func (s Summary) Hidden() int {
	return s.Counts[SeverityOK]
}

// WriteTable renders the summary as a table
func (s Summary) WriteTable(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Jobs")

	for _, sev := range Severities {
		table.Append(string(sev), strconv.Itoa(s.Counts[sev]))
	}
	table.Footer("Total", strconv.Itoa(s.Total))

	return table.Render()
}
