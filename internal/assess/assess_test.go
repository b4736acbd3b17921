package assess

import (
	"math"
	"reflect"
	"testing"

	"github.com/gyeh/drgscore/internal/model"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		group      model.Group
		canUpgrade bool
		est, pot   float64
		revenue    float64
	}{
		{model.GroupA, true, 1.3, 1.3, 0},
		{model.GroupA, false, 1.3, 1.3, 0},
		{model.GroupB, false, 1.0, 1.0, 0},
		{model.GroupB, true, 1.0, 1.3, 90000},
		{model.GroupC, false, 0.7, 0.7, 0},
		{model.GroupC, true, 0.7, 1.0, 90000},
		{model.Group("X"), false, 1.0, 1.0, 0},
	}
	for _, tt := range tests {
		out := Estimate(tt.group, tt.canUpgrade, DefaultRevenueUnit)
		if out.EstimatedCMI != tt.est || out.PotentialCMI != tt.pot {
			t.Errorf("%s/%v: cmi %v->%v, want %v->%v", tt.group, tt.canUpgrade, out.EstimatedCMI, out.PotentialCMI, tt.est, tt.pot)
		}
		if math.Abs(out.RevenueImpact-tt.revenue) > 1e-6 {
			t.Errorf("%s/%v: revenue %v, want %v", tt.group, tt.canUpgrade, out.RevenueImpact, tt.revenue)
		}
	}
}

func TestSynthesize_Order(t *testing.T) {
	group := model.GroupPrediction{PredictedGroup: model.GroupB, CanUpgrade: true, AGroupProbability: 0.654}
	risk := model.DenialRisk{RiskLevel: model.RiskHigh, RiskFactors: []string{"주진단 미기재", "비정상 재원일수: 0일"}}

	got := Synthesize(group, risk)
	want := []string{
		"A그룹 전환 가능성: 65.4%",
		"청구 삭감 위험: HIGH",
		"주진단 미기재",
		"비정상 재원일수: 0일",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSynthesize_LowRiskNoUpgrade(t *testing.T) {
	got := Synthesize(model.GroupPrediction{PredictedGroup: model.GroupB}, model.DenialRisk{RiskLevel: model.RiskLow})
	if len(got) != 0 {
		t.Errorf("got %v, want no recommendations", got)
	}
}

func TestBuild(t *testing.T) {
	group := model.GroupPrediction{PredictedGroup: model.GroupC, CanUpgrade: true, AGroupProbability: 0.6}
	risk := model.DenialRisk{RiskLevel: model.RiskMedium, RiskFactors: []string{}}

	a := Build("ADM9", group, risk, 100000)
	if a.AdmissionID != "ADM9" {
		t.Errorf("id: got %q", a.AdmissionID)
	}
	if math.Abs(a.RevenueImpact-30000) > 1e-6 {
		t.Errorf("revenue: got %v, want 30000", a.RevenueImpact)
	}
	if len(a.Recommendations) != 2 {
		t.Errorf("recommendations: got %v", a.Recommendations)
	}
}

func TestAnalyzeIncident(t *testing.T) {
	w := func(v float64) *float64 { return &v }
	tests := []struct {
		name       string
		typ        string
		weight     *float64
		code       string
		revenue    float64
		shouldCode bool
	}{
		{"fall default weight", IncidentFall, nil, "W00-W19", 200000, true},
		{"pressure ulcer", IncidentPressureUlcer, w(1.5), "L89", 300000, true},
		{"infection", IncidentInfection, w(0.5), "T80-T88", 100000, true},
		{"small weight", IncidentMedicationError, w(0.2), "T36-T50", 40000, false},
		{"unknown type", "burn", w(1.0), "", 200000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeIncident(tt.typ, tt.weight)
			if got.SuggestedKCDCode != tt.code {
				t.Errorf("code: got %q, want %q", got.SuggestedKCDCode, tt.code)
			}
			if math.Abs(got.RevenueImpact-tt.revenue) > 1e-6 {
				t.Errorf("revenue: got %v, want %v", got.RevenueImpact, tt.revenue)
			}
			if math.Abs(got.PotentialDRGWeight-got.CurrentDRGWeight*1.2) > 1e-12 {
				t.Errorf("potential weight: got %v for current %v", got.PotentialDRGWeight, got.CurrentDRGWeight)
			}
			if got.ShouldCode != tt.shouldCode {
				t.Errorf("should code: got %v, want %v", got.ShouldCode, tt.shouldCode)
			}
		})
	}
}
