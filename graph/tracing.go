package graph

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TraceEvent identifies the kind of occurrence a TraceSpan records.
type TraceEvent int

const (
	TraceEventGraphStart TraceEvent = iota
	TraceEventGraphEnd
	TraceEventLevelStart
	TraceEventLevelEnd
	TraceEventNodeStart
	TraceEventNodeEnd
	TraceEventNodeError
)

func (e TraceEvent) String() string {
	switch e {
	case TraceEventGraphStart:
		return "GraphStart"
	case TraceEventGraphEnd:
		return "GraphEnd"
	case TraceEventLevelStart:
		return "LevelStart"
	case TraceEventLevelEnd:
		return "LevelEnd"
	case TraceEventNodeStart:
		return "NodeStart"
	case TraceEventNodeEnd:
		return "NodeEnd"
	case TraceEventNodeError:
		return "NodeError"
	default:
		return "Unknown"
	}
}

// TraceSpan records one traced occurrence during a Dag run.
type TraceSpan struct {
	ID        string
	Event     TraceEvent
	NodeName  string
	Level     int
	StartTime time.Time
	EndTime   time.Time
	Err       error
}

// Duration returns EndTime.Sub(StartTime); zero until EndSpan closes
// the span.
func (s TraceSpan) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Tracer collects TraceSpans across a Dag run. The zero value is not
// usable; construct one with NewTracer. A Tracer is safe for
// concurrent use by the executor's worker goroutines.
type Tracer struct {
	mu    sync.Mutex
	spans []TraceSpan
	open  map[string]int
}

// NewTracer returns an empty Tracer.
func NewTracer() *Tracer {
	return &Tracer{open: map[string]int{}}
}

// StartSpan opens a span for event, returning its id for the matching
// EndSpan call.
func (t *Tracer) StartSpan(event TraceEvent, nodeName string, level int) string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = append(t.spans, TraceSpan{
		ID:        id,
		Event:     event,
		NodeName:  nodeName,
		Level:     level,
		StartTime: time.Now(),
	})
	t.open[id] = len(t.spans) - 1
	return id
}

// EndSpan closes the span identified by id, optionally recording err.
func (t *Tracer) EndSpan(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.open[id]
	if !ok {
		return
	}
	t.spans[idx].EndTime = time.Now()
	t.spans[idx].Err = err
	delete(t.open, id)
}

// Spans returns a snapshot of every span recorded so far, in the order
// StartSpan was called.
func (t *Tracer) Spans() []TraceSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceSpan, len(t.spans))
	copy(out, t.spans)
	return out
}
