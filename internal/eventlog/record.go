package eventlog

import "time"

// EventKind is the lifecycle marker carried by a log line.
type EventKind string

const (
	EventStart EventKind = "START"
	EventEnd   EventKind = "END"
)

// RawEvent is one parsed line of the event log.
type RawEvent struct {
	Timestamp   time.Time // time of day only, date is zero
	Description string
	Kind        EventKind
	JobID       string
}

// PartialJob accumulates the events seen for one job id.
// A nil field means the corresponding event never appeared.
type PartialJob struct {
	JobID       string
	Start       *time.Time
	End         *time.Time
	Description *string
}

// Apply folds an event into the record. Last write per field wins;
// unknown kinds leave the record untouched.
func (p *PartialJob) Apply(ev RawEvent) {
	switch ev.Kind {
	case EventStart:
		ts, desc := ev.Timestamp, ev.Description
		p.Start = &ts
		p.Description = &desc
	case EventEnd:
		ts := ev.Timestamp
		p.End = &ts
	}
}

// Jobs maps job ids to their partial records and remembers the order
// in which ids were first seen.
type Jobs struct {
	order []string
	byID  map[string]*PartialJob
}

// NewJobs creates an empty job map
func NewJobs() *Jobs {
	return &Jobs{byID: make(map[string]*PartialJob)}
}

// GetOrCreate returns the record for id, creating an empty one on first sighting.
func (j *Jobs) GetOrCreate(id string) *PartialJob {
	if p, ok := j.byID[id]; ok {
		return p
	}
	p := &PartialJob{JobID: id}
	j.byID[id] = p
	j.order = append(j.order, id)
	return p
}

// Get returns the record for id if it exists
func (j *Jobs) Get(id string) (*PartialJob, bool) {
	p, ok := j.byID[id]
	return p, ok
}

// Len returns the number of distinct job ids
func (j *Jobs) Len() int {
	return len(j.order)
}

// Each calls fn for every record in first-sighting order.
func (j *Jobs) Each(fn func(*PartialJob)) {
	for _, id := range j.order {
		fn(j.byID[id])
	}
}
