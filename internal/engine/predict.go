package engine

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/drgscore/internal/assess"
	"github.com/gyeh/drgscore/internal/classify"
	"github.com/gyeh/drgscore/internal/metrics"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/risk"
)

// PredictGroup classifies one admission. It never fails: a learned-model error is
// retried with the rule-based classifier for this call only.
func (e *Engine) PredictGroup(f *model.AdmissionFeatures) model.GroupPrediction {
	start := time.Now()
	pred, st := e.predictGroup(f)
	e.emit(metrics.TypeGroup, string(pred.PredictedGroup), start, st)

	e.log.Debug().
		Str("admission_id", f.AdmissionID).
		Str("predicted_group", string(pred.PredictedGroup)).
		Float64("confidence", pred.Confidence).
		Str("method", string(pred.Source)).
		Float64("latency_ms", msSince(start)).
		Msg("group prediction made")
	return pred
}

// PredictDenialRisk scores claim denial risk for one admission. It never fails.
func (e *Engine) PredictDenialRisk(f *model.AdmissionFeatures) model.DenialRisk {
	start := time.Now()
	dr, st := e.predictRisk(f)
	e.emit(metrics.TypeDenialRisk, string(dr.RiskLevel), start, st)

	e.log.Debug().
		Str("admission_id", f.AdmissionID).
		Float64("denial_probability", dr.DenialProbability).
		Str("risk_level", string(dr.RiskLevel)).
		Str("method", string(dr.Source)).
		Float64("latency_ms", msSince(start)).
		Msg("denial risk prediction made")
	return dr
}

// PredictComprehensive runs the classifier and risk scorer concurrently, then the
// outcome estimator and recommendation synthesizer. One metrics event is emitted.
func (e *Engine) PredictComprehensive(f *model.AdmissionFeatures) model.Assessment {
	start := time.Now()

	var (
		gp     model.GroupPrediction
		dr     model.DenialRisk
		gs, rs Status
		g      errgroup.Group
	)
	g.Go(func() error {
		gp, gs = e.predictGroup(f)
		return nil
	})
	g.Go(func() error {
		dr, rs = e.predictRisk(f)
		return nil
	})
	_ = g.Wait()

	a := assess.Build(f.AdmissionID, gp, dr, e.cfg.RevenueUnit)
	a.Degraded = gs != Success || rs != Success
	e.emit(metrics.TypeComprehensive, string(gp.PredictedGroup), start, gs, rs)

	e.log.Debug().
		Str("admission_id", f.AdmissionID).
		Str("predicted_group", string(gp.PredictedGroup)).
		Str("risk_level", string(dr.RiskLevel)).
		Float64("revenue_impact", a.RevenueImpact).
		Bool("degraded", a.Degraded).
		Float64("latency_ms", msSince(start)).
		Msg("comprehensive prediction made")
	return a
}

func (e *Engine) predictGroup(f *model.AdmissionFeatures) (model.GroupPrediction, Status) {
	learned, ok := e.classifier.get(e.log)
	res := tryLearned(learned, ok, func(c classify.Classifier) (model.GroupPrediction, error) {
		return c.Predict(f)
	})
	if res.status == Success {
		return res.value, Success
	}
	if res.status == Failed {
		e.log.Warn().Err(res.err).Str("admission_id", f.AdmissionID).Msg("learned classifier failed, falling back to rules")
	}

	pred, err := e.rulesClassifier.Predict(f)
	if err != nil {
		e.log.Error().Err(err).Str("admission_id", f.AdmissionID).Msg("rule-based classifier returned an error")
	}
	return pred, res.status
}

func (e *Engine) predictRisk(f *model.AdmissionFeatures) (model.DenialRisk, Status) {
	learned, ok := e.scorer.get(e.log)
	res := tryLearned(learned, ok, func(s risk.Scorer) (model.DenialRisk, error) {
		return s.Score(f)
	})
	if res.status == Success {
		return res.value, Success
	}
	if res.status == Failed {
		e.log.Warn().Err(res.err).Str("admission_id", f.AdmissionID).Msg("learned denial scorer failed, falling back to rules")
	}

	dr, err := e.rulesScorer.Score(f)
	if err != nil {
		e.log.Error().Err(err).Str("admission_id", f.AdmissionID).Msg("rule-based denial scorer returned an error")
	}
	return dr, res.status
}

func (e *Engine) emit(typ, label string, start time.Time, statuses ...Status) {
	reason := fallbackReason(statuses...)
	e.sink.Record(metrics.Event{
		Type:     typ,
		Label:    label,
		Latency:  time.Since(start),
		Degraded: reason != "",
		Reason:   reason,
	})
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}

// BatchResult pairs one input record with its assessment.
type BatchResult struct {
	Index       int
	AdmissionID string
	Assessment  model.Assessment
}

// PredictBatch assesses records independently on up to cfg.Workers goroutines.
// Results keep input order. Records without an id are labelled "batch_<index>".
// Each record emits its own comprehensive metrics event.
func (e *Engine) PredictBatch(records []model.AdmissionFeatures) []BatchResult {
	results := make([]BatchResult, len(records))

	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i := range records {
		g.Go(func() error {
			f := records[i]
			if f.AdmissionID == "" {
				f.AdmissionID = fmt.Sprintf("batch_%d", i)
			}
			results[i] = BatchResult{
				Index:       i,
				AdmissionID: f.AdmissionID,
				Assessment:  e.PredictComprehensive(&f),
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
