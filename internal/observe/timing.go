package observe

// Timing records how long each pipeline stage took. Nothing else.

import "time"

// Stage is one named, completed step
type Stage struct {
	Name     string
	Duration time.Duration
}

// Timing records start time and stage boundaries
type Timing struct {
	StartedAt time.Time
	last      time.Time
	stages    []Stage
	now       func() time.Time
}

// NewTiming creates timing with current start time
func NewTiming() *Timing {
	return newTimingWithClock(time.Now)
}

func newTimingWithClock(now func() time.Time) *Timing {
	start := now()
	return &Timing{
		StartedAt: start,
		last:      start,
		now:       now,
	}
}

// Mark closes the current stage under name and starts the next one
func (t *Timing) Mark(name string) {
	at := t.now()
	t.stages = append(t.stages, Stage{Name: name, Duration: at.Sub(t.last)})
	t.last = at
}

// Stages returns the completed stages in order
func (t *Timing) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

// Duration returns time from start to the last mark
func (t *Timing) Duration() time.Duration {
	return t.last.Sub(t.StartedAt)
}
