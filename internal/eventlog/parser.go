// Package eventlog turns a job event log into per-job partial records.
//
// Each line is "HH:MM:SS,<description>,<START|END>,<job id>". Short lines
// and unknown event kinds are tolerated silently; a bad timestamp aborts the
// whole pass.
package eventlog

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
	"time"
)

// TimestampLayout is the accepted time-of-day format (24h clock).
const TimestampLayout = "15:04:05"

var errFractionalSeconds = errors.New("fractional seconds are not allowed")

// recordFields is the number of fields in a complete record.
const recordFields = 4

// ParseFile opens path, parses it fully and closes it before returning.
func ParseFile(path string) (*Jobs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads every record from r and folds it into a job map.
// Nothing is returned until r is drained.
func Parse(r io.Reader) (*Jobs, error) {
	reader := newReader(r)

	jobs := NewJobs()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(err, record)
		}
		if len(record) < recordFields {
			continue
		}

		line, _ := reader.FieldPos(0)
		ev, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		jobs.GetOrCreate(ev.JobID).Apply(ev)
	}
	return jobs, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func parseRecord(record []string, line int) (RawEvent, error) {
	if len(record) > recordFields {
		return RawEvent{}, &ParseError{
			Kind:   ErrorKindFieldCount,
			Line:   line,
			Record: strings.Join(record, ","),
		}
	}

	fields := make([]string, recordFields)
	for i, f := range record {
		fields[i] = strings.TrimSpace(f)
	}

	ts, err := time.Parse(TimestampLayout, fields[0])
	if err == nil && strings.ContainsRune(fields[0], '.') {
		// time.Parse accepts a fractional suffix the layout does not name
		err = errFractionalSeconds
	}
	if err != nil {
		return RawEvent{}, &ParseError{
			Kind:   ErrorKindTimestamp,
			Line:   line,
			Record: strings.Join(record, ","),
			Err:    err,
		}
	}

	return RawEvent{
		Timestamp:   ts,
		Description: fields[1],
		Kind:        EventKind(fields[2]),
		JobID:       fields[3],
	}, nil
}

func readError(err error, record []string) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{
			Kind:   ErrorKindRead,
			Line:   csvErr.StartLine,
			Record: strings.Join(record, ","),
			Err:    csvErr.Err,
		}
	}
	return &ParseError{Kind: ErrorKindRead, Err: err}
}
