package batch

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/config"
	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/parquetread"
)

func strPtr(s string) *string { return &s }

func TestToRow(t *testing.T) {
	runID := uuid.New()
	f := &model.AdmissionFeatures{AdmissionID: "ADM7"}
	a := &model.Assessment{
		AdmissionID:   "ADM7",
		Group:         model.GroupPrediction{PredictedGroup: model.GroupC, DRGCode: "C001", Source: model.SourceRules},
		Risk:          model.DenialRisk{RiskLevel: model.RiskMedium, Source: model.SourceRules},
		EstimatedCMI:  0.7,
		PotentialCMI:  1.0,
		RevenueImpact: 89999.99999999999,
		Degraded:      true,
	}

	row := ToRow(runID, 3, f, a)
	if row.RunID != runID || row.SourceRowNumber != 3 {
		t.Errorf("identity: got %s/%d", row.RunID, row.SourceRowNumber)
	}
	if row.PrincipalDiagnosis != nil {
		t.Errorf("empty diagnosis should be NULL, got %q", *row.PrincipalDiagnosis)
	}
	if row.RevenueImpactWon != 90000 {
		t.Errorf("revenue: got %d, want 90000", row.RevenueImpactWon)
	}
	if row.RiskFactors == nil || row.Recommendations == nil {
		t.Error("array columns must not be nil")
	}
	if len(row.CopyValues()) != len(model.AssessmentColumns()) {
		t.Errorf("CopyValues has %d values for %d columns", len(row.CopyValues()), len(model.AssessmentColumns()))
	}
}

func TestPlan_RulesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admissions.parquet")
	rows := []model.AdmissionRow{
		{AdmissionID: "ADM001", PrincipalDiagnosis: strPtr("A11"), LengthOfStay: strPtr("5")},
		{AdmissionID: "ADM002", LengthOfStay: strPtr("400")},
		{AdmissionID: "ADM003", PrincipalDiagnosis: strPtr("B50"), LengthOfStay: strPtr("5")},
	}
	if err := parquetread.Write(path, rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	eng := engine.New(config.Engine{}, zerolog.Nop())
	res, err := Plan(zerolog.Nop(), path, 2, eng)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if res.NumRows != 3 || len(res.Sample) != 2 {
		t.Fatalf("rows %d sampled %d, want 3 and 2", res.NumRows, len(res.Sample))
	}
	if res.Sample[0].Assessment.Group.PredictedGroup != model.GroupA {
		t.Errorf("ADM001: got %s, want A", res.Sample[0].Assessment.Group.PredictedGroup)
	}
	if res.Sample[1].Assessment.Risk.RiskLevel != model.RiskMedium {
		t.Errorf("ADM002: got %s, want MEDIUM", res.Sample[1].Assessment.Risk.RiskLevel)
	}
	if res.RowsDegraded != 2 || res.RowsByGroup[model.GroupA] != 1 || res.RowsByGroup[model.GroupB] != 1 {
		t.Errorf("tally: %+v", res.Tally)
	}

	all, err := Plan(zerolog.Nop(), path, 0, eng)
	if err != nil {
		t.Fatalf("Plan whole file: %v", err)
	}
	if len(all.Sample) != 3 {
		t.Errorf("whole file: sampled %d, want 3", len(all.Sample))
	}
}
