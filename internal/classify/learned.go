package classify

import (
	"fmt"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/model"
)

// Learned classifies with a loaded group_classifier artifact.
type Learned struct {
	handle    *artifact.Handle
	threshold float64
	groups    []model.Group
}

// NewLearned wraps a loaded artifact. Every artifact class must be a known group.
func NewLearned(h *artifact.Handle, threshold float64) (*Learned, error) {
	classes := h.Classes()
	groups := make([]model.Group, len(classes))
	for i, c := range classes {
		g, ok := model.ParseGroup(c)
		if !ok {
			return nil, fmt.Errorf("%w: unknown group class %q", artifact.ErrMalformed, c)
		}
		groups[i] = g
	}
	return &Learned{handle: h, threshold: threshold, groups: groups}, nil
}

// Predict implements Classifier.
func (l *Learned) Predict(f *model.AdmissionFeatures) (model.GroupPrediction, error) {
	proba, err := l.handle.PredictProba(l.handle.Vector(f))
	if err != nil {
		return model.GroupPrediction{}, err
	}

	probs := make(map[model.Group]float64, len(proba))
	best := 0
	for i, p := range proba {
		probs[l.groups[i]] += p
		// Strict comparison keeps the earliest class on ties.
		if p > proba[best] {
			best = i
		}
	}

	return newPrediction(l.groups[best], proba[best], probs[model.GroupA], l.threshold, probs, model.SourceLearned), nil
}
