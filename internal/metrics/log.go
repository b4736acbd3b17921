package metrics

import "github.com/rs/zerolog"

// Log writes each event as a debug line. Degraded events are logged at info.
type Log struct {
	log zerolog.Logger
}

// NewLog returns a Sink that writes to log.
func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("component", "metrics").Logger()}
}

// Record implements Sink.
func (l *Log) Record(ev Event) {
	e := l.log.Debug()
	if ev.Degraded {
		e = l.log.Info()
	}
	e.Str("prediction_type", ev.Type).
		Str("label", ev.Label).
		Dur("latency", ev.Latency).
		Bool("degraded", ev.Degraded).
		Str("reason", ev.Reason).
		Msg("prediction")
}
