// Package metrics records one observability event per top-level prediction.
package metrics

import "time"

// Prediction types.
const (
	TypeGroup         = "group"
	TypeDenialRisk    = "denial_risk"
	TypeComprehensive = "comprehensive"
)

// Fallback reasons.
const (
	ReasonUnavailable = "unavailable"
	ReasonError       = "error"
)

// Event describes a single prediction call.
type Event struct {
	Type string
	// Label is the resulting group for group/comprehensive calls and the risk level
	// for denial-risk calls.
	Label   string
	Latency time.Duration
	// Degraded is set when rules answered instead of a learned model.
	Degraded bool
	// Reason is ReasonUnavailable or ReasonError when Degraded.
	Reason string
}

// Sink accepts prediction events. Implementations must be safe for concurrent use.
type Sink interface {
	Record(Event)
}

// Nop discards events.
type Nop struct{}

// Record implements Sink.
func (Nop) Record(Event) {}

// Multi fans an event out to several sinks.
type Multi []Sink

// Record implements Sink.
func (m Multi) Record(ev Event) {
	for _, s := range m {
		s.Record(ev)
	}
}
