package eventlog

import "fmt"

// ErrorKind categorizes fatal parse failures
type ErrorKind int

const (
	ErrorKindUnknown    ErrorKind = iota
	ErrorKindTimestamp            // timestamp field is not HH:MM:SS
	ErrorKindFieldCount           // more fields than the record layout allows
	ErrorKindRead                 // the record could not be read at all
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTimestamp:
		return "invalid timestamp"
	case ErrorKindFieldCount:
		return "too many fields"
	case ErrorKindRead:
		return "unreadable record"
	default:
		return "parse error"
	}
}

// ParseError aborts a whole parse pass. Line is 1-based; Record is the
// offending input as read.
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Record string
	Err    error
}

// Error implements error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s in %q: %v", e.Line, e.Kind, e.Record, e.Err)
	}
	return fmt.Sprintf("line %d: %s in %q", e.Line, e.Kind, e.Record)
}

// Unwrap implements error unwrapping
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SourceError reports an input source that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot read input %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
