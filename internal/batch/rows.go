package batch

import (
	"github.com/google/uuid"

	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/normalize"
)

// Tally aggregates assessments for run summaries.
type Tally struct {
	RowsRead         int64
	RowsScored       int64
	RowsDegraded     int64
	RowsByGroup      map[model.Group]int64
	RowsByRiskLevel  map[model.RiskLevel]int64
	RevenueImpactWon int64
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{
		RowsByGroup:     make(map[model.Group]int64, len(model.AllGroups)),
		RowsByRiskLevel: make(map[model.RiskLevel]int64, 3),
	}
}

// Add counts one assessment. RowsRead is left to the caller.
func (t *Tally) Add(a *model.Assessment) {
	t.RowsScored++
	if a.Degraded {
		t.RowsDegraded++
	}
	t.RowsByGroup[a.Group.PredictedGroup]++
	t.RowsByRiskLevel[a.Risk.RiskLevel]++
	t.RevenueImpactWon += normalize.WonToInt(a.RevenueImpact)
}

// ToRow flattens an assessment into its scoring.assessments row.
func ToRow(runID uuid.UUID, rowNum int64, f *model.AdmissionFeatures, a *model.Assessment) *model.AssessmentRow {
	var dx *string
	if f.PrincipalDiagnosis != "" {
		d := f.PrincipalDiagnosis
		dx = &d
	}
	return &model.AssessmentRow{
		RunID:              runID,
		SourceRowNumber:    rowNum,
		AdmissionID:        a.AdmissionID,
		PrincipalDiagnosis: dx,

		PredictedGroup:    string(a.Group.PredictedGroup),
		Confidence:        a.Group.Confidence,
		DRGCode:           a.Group.DRGCode,
		AGroupProbability: a.Group.AGroupProbability,
		CanUpgrade:        a.Group.CanUpgrade,
		GroupSource:       string(a.Group.Source),

		DenialProbability: a.Risk.DenialProbability,
		RiskLevel:         string(a.Risk.RiskLevel),
		RiskFactors:       nonNil(a.Risk.RiskFactors),
		RiskSource:        string(a.Risk.Source),

		EstimatedCMI:     a.EstimatedCMI,
		PotentialCMI:     a.PotentialCMI,
		RevenueImpactWon: normalize.WonToInt(a.RevenueImpact),
		Recommendations:  nonNil(a.Recommendations),
		Degraded:         a.Degraded,
	}
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
