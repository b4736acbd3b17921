package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLog_Record(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(zerolog.New(&buf).Level(zerolog.InfoLevel))

	l.Record(Event{Type: TypeGroup, Label: "A", Latency: time.Millisecond})
	if buf.Len() != 0 {
		t.Errorf("non-degraded event should log at debug, got %q", buf.String())
	}

	l.Record(Event{Type: TypeDenialRisk, Label: "HIGH", Degraded: true, Reason: ReasonUnavailable})
	out := buf.String()
	for _, want := range []string{`"prediction_type":"denial_risk"`, `"degraded":true`, `"reason":"unavailable"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}
