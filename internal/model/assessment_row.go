package model

import (
	"github.com/google/uuid"
)

// AssessmentRow is the DB-ready representation of one scored admission.
// Revenue is stored as whole won.
type AssessmentRow struct {
	RunID           uuid.UUID
	SourceRowNumber int64

	AdmissionID        string
	PrincipalDiagnosis *string

	PredictedGroup    string
	Confidence        float64
	DRGCode           string
	AGroupProbability float64
	CanUpgrade        bool
	GroupSource       string

	DenialProbability float64
	RiskLevel         string
	RiskFactors       []string
	RiskSource        string

	EstimatedCMI     float64
	PotentialCMI     float64
	RevenueImpactWon int64
	Recommendations  []string
	Degraded         bool
}

// AssessmentColumns returns the ordered column names for COPY into scoring.assessments.
func AssessmentColumns() []string {
	return []string{
		"run_id",
		"source_row_number",
		"admission_id",
		"principal_diagnosis",
		"predicted_group",
		"confidence",
		"drg_code",
		"a_group_probability",
		"can_upgrade",
		"group_source",
		"denial_probability",
		"risk_level",
		"risk_factors",
		"risk_source",
		"estimated_cmi",
		"potential_cmi",
		"revenue_impact_won",
		"recommendations",
		"degraded",
	}
}

// CopyValues returns the row values in the same order as AssessmentColumns(),
// suitable for pgx CopyFromSource.
func (r *AssessmentRow) CopyValues() []any {
	return []any{
		r.RunID,
		r.SourceRowNumber,
		r.AdmissionID,
		r.PrincipalDiagnosis,
		r.PredictedGroup,
		r.Confidence,
		r.DRGCode,
		r.AGroupProbability,
		r.CanUpgrade,
		r.GroupSource,
		r.DenialProbability,
		r.RiskLevel,
		r.RiskFactors,
		r.RiskSource,
		r.EstimatedCMI,
		r.PotentialCMI,
		r.RevenueImpactWon,
		r.Recommendations,
		r.Degraded,
	}
}
