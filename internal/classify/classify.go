// Package classify predicts the K-DRG severity group of an admission.
package classify

import (
	"github.com/gyeh/drgscore/internal/model"
)

// DefaultUpgradeThreshold is the A-group probability at or above which an
// admission is flagged as upgradable.
const DefaultUpgradeThreshold = 0.6

// Classifier predicts a severity group for one admission.
type Classifier interface {
	Predict(f *model.AdmissionFeatures) (model.GroupPrediction, error)
}

// newPrediction fills the fields shared by both variants.
func newPrediction(group model.Group, confidence, aProb, threshold float64, probs map[model.Group]float64, src model.Source) model.GroupPrediction {
	return model.GroupPrediction{
		PredictedGroup:     group,
		Confidence:         clamp01(confidence),
		DRGCode:            group.DRGCode(),
		Probabilities:      probs,
		AGroupProbability:  aProb,
		CanUpgrade:         aProb >= threshold,
		UpgradeSuggestions: UpgradeSuggestions(group),
		Source:             src,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
