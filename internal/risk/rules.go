package risk

import (
	"fmt"

	"github.com/gyeh/drgscore/internal/model"
)

// Additive rule weights.
const (
	weightMissingPrincipal = 0.3
	weightShortCode        = 0.2
	weightAbnormalStay     = 0.2
)

// Stays outside [minStayDays, maxStayDays] are considered abnormal.
const (
	minStayDays = 1
	maxStayDays = 365
)

// Rules is the additive fallback scorer. It never fails.
type Rules struct{}

// Score implements Scorer.
func (Rules) Score(f *model.AdmissionFeatures) (model.DenialRisk, error) {
	var score float64
	factors := []string{}

	if f.PrincipalDiagnosis == "" {
		score += weightMissingPrincipal
		factors = append(factors, FactorMissingPrincipal)
	} else if len(f.PrincipalDiagnosis) < 3 {
		score += weightShortCode
		factors = append(factors, FactorAmbiguousDiagnosis)
	}
	if los := f.StayDays(); los < minStayDays || los > maxStayDays {
		score += weightAbnormalStay
		factors = append(factors, fmt.Sprintf(abnormalStayFormat, los))
	}

	p := clamp01(score)
	return model.DenialRisk{
		DenialProbability: p,
		RiskLevel:         LevelFor(p),
		RiskFactors:       factors,
		Recommendations:   Recommendations(factors),
		Source:            model.SourceRules,
	}, nil
}
