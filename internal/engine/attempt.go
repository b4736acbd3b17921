package engine

import (
	"fmt"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/metrics"
)

// Status tags the outcome of a learned-path attempt.
type Status int

const (
	// Success means the learned model answered.
	Success Status = iota
	// Degraded means no learned model is available; rules answer by design.
	Degraded
	// Failed means the learned model errored or panicked; rules answer this call.
	Failed
)

type result[R any] struct {
	status Status
	value  R
	err    error
}

// tryLearned runs call against a learned model. Errors and panics become a Failed
// result so the caller can fall back without unwinding.
func tryLearned[M, R any](m M, ok bool, call func(M) (R, error)) (res result[R]) {
	if !ok {
		return result[R]{status: Degraded}
	}
	defer func() {
		if r := recover(); r != nil {
			res = result[R]{status: Failed, err: fmt.Errorf("%w: panic: %v", artifact.ErrCompute, r)}
		}
	}()
	v, err := call(m)
	if err != nil {
		return result[R]{status: Failed, err: err}
	}
	return result[R]{status: Success, value: v}
}

// fallbackReason maps a status to the metrics reason label.
func fallbackReason(statuses ...Status) string {
	reason := ""
	for _, s := range statuses {
		switch s {
		case Failed:
			return metrics.ReasonError
		case Degraded:
			reason = metrics.ReasonUnavailable
		}
	}
	return reason
}
