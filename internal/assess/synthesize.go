package assess

import (
	"fmt"

	"github.com/gyeh/drgscore/internal/model"
)

// Synthesize merges classifier and risk signals into an ordered recommendation list:
// the upgrade probability (if upgradable), the risk level (if MEDIUM or HIGH), then
// each risk factor in scorer order.
func Synthesize(group model.GroupPrediction, risk model.DenialRisk) []string {
	recs := make([]string, 0, 2+len(risk.RiskFactors))
	if group.CanUpgrade {
		recs = append(recs, fmt.Sprintf("A그룹 전환 가능성: %.1f%%", group.AGroupProbability*100))
	}
	if risk.RiskLevel.Elevated() {
		recs = append(recs, fmt.Sprintf("청구 삭감 위험: %s", risk.RiskLevel))
	}
	recs = append(recs, risk.RiskFactors...)
	return recs
}

// Build assembles an Assessment from independent group and risk predictions.
func Build(id string, group model.GroupPrediction, risk model.DenialRisk, unit float64) model.Assessment {
	out := Estimate(group.PredictedGroup, group.CanUpgrade, unit)
	return model.Assessment{
		AdmissionID:     id,
		Group:           group,
		Risk:            risk,
		EstimatedCMI:    out.EstimatedCMI,
		PotentialCMI:    out.PotentialCMI,
		RevenueImpact:   out.RevenueImpact,
		Recommendations: Synthesize(group, risk),
	}
}
