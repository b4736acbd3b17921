package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheus_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.Record(Event{Type: TypeGroup, Label: "A", Latency: 2 * time.Millisecond})
	p.Record(Event{Type: TypeGroup, Label: "A", Latency: time.Millisecond})
	p.Record(Event{Type: TypeDenialRisk, Label: "MEDIUM", Degraded: true, Reason: ReasonError})

	if got := testutil.ToFloat64(p.predictions.WithLabelValues(TypeGroup, "A", "false")); got != 2 {
		t.Errorf("group A predictions: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.fallbacks.WithLabelValues(TypeDenialRisk, ReasonError)); got != 1 {
		t.Errorf("denial fallbacks: got %v, want 1", got)
	}
	if got := testutil.CollectAndCount(p.latency); got != 2 {
		t.Errorf("latency series: got %d, want 2", got)
	}
}

func TestHandler_ExposesPredictions(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	p.Record(Event{Type: TypeComprehensive, Label: "B"})

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `predictions_total{degraded="false",group="B",prediction_type="comprehensive"} 1`) {
		t.Errorf("metrics output missing comprehensive counter:\n%s", body)
	}
}

type recordingSink struct{ events []Event }

func (r *recordingSink) Record(ev Event) { r.events = append(r.events, ev) }

func TestMulti_FansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	Multi{a, Nop{}, b}.Record(Event{Type: TypeGroup, Label: "C"})

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("expected one event per sink, got %d and %d", len(a.events), len(b.events))
	}
	if a.events[0].Label != "C" {
		t.Errorf("label: got %q, want C", a.events[0].Label)
	}
}
