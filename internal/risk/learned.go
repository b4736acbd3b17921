package risk

import (
	"fmt"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/model"
)

// Learned scores with a loaded denial_predictor artifact.
type Learned struct {
	handle *artifact.Handle
}

// NewLearned wraps a loaded artifact. Its columns must be drawn from
// model.DenialFeatureColumns.
func NewLearned(h *artifact.Handle) (*Learned, error) {
	allowed := make(map[string]bool, len(model.DenialFeatureColumns))
	for _, c := range model.DenialFeatureColumns {
		allowed[c] = true
	}
	for _, c := range h.Columns() {
		if !allowed[c] {
			return nil, fmt.Errorf("%w: denial model column %q outside the denial feature set", artifact.ErrSchemaMismatch, c)
		}
	}
	return &Learned{handle: h}, nil
}

// Score implements Scorer. The denial probability is the second class's probability.
func (l *Learned) Score(f *model.AdmissionFeatures) (model.DenialRisk, error) {
	proba, err := l.handle.PredictProba(l.handle.Vector(f))
	if err != nil {
		return model.DenialRisk{}, err
	}

	var p float64
	if len(proba) > 1 {
		p = clamp01(proba[1])
	}

	factors := identifyFactors(f)
	return model.DenialRisk{
		DenialProbability: p,
		RiskLevel:         LevelFor(p),
		RiskFactors:       factors,
		Recommendations:   Recommendations(factors),
		Source:            model.SourceLearned,
	}, nil
}

// identifyFactors explains a learned score with record-level observations.
func identifyFactors(f *model.AdmissionFeatures) []string {
	factors := []string{}
	if f.PrincipalDiagnosis == "" {
		factors = append(factors, FactorMissingPrincipal)
	}
	if f.StayDays() < 2 {
		factors = append(factors, FactorShortStay)
	}
	if f.ComorbidityCount() == 0 {
		factors = append(factors, FactorMissingSecondary)
	}
	if f.CurrentGroup == model.GroupC {
		factors = append(factors, FactorDeepGroup)
	}
	return factors
}
