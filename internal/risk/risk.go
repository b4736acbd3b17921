// Package risk scores the probability that a claim will be denied.
package risk

import (
	"strings"

	"github.com/gyeh/drgscore/internal/model"
)

// Scorer predicts denial risk for one admission.
type Scorer interface {
	Score(f *model.AdmissionFeatures) (model.DenialRisk, error)
}

// Risk factor labels.
const (
	FactorMissingPrincipal   = "주진단 미기재"
	FactorAmbiguousDiagnosis = "진단 코드 불명확"
	FactorMissingSecondary   = "부진단 미기재"
	FactorShortStay          = "단기 재원 (1일 이하)"
	FactorDeepGroup          = "심층질병군(C그룹)"
	abnormalStayFormat       = "비정상 재원일수: %d일"
)

// Mitigation strings emitted for matching risk factors.
const (
	RecommendDiagnosisCheck = "진단 코드 정확성 확인"
	RecommendStayCheck      = "입퇴원일자 확인"
	RecommendCompleteness   = "기록 완전성 확인"
)

// LevelFor buckets a denial probability. Boundary values take the higher tier.
func LevelFor(p float64) model.RiskLevel {
	switch {
	case p >= model.HighRiskBoundary:
		return model.RiskHigh
	case p >= model.MediumRiskBoundary:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Recommendations derives mitigation steps from risk factors by keyword.
func Recommendations(factors []string) []string {
	var recs []string
	if anyContains(factors, "진단") {
		recs = append(recs, RecommendDiagnosisCheck)
	}
	if anyContains(factors, "재원") {
		recs = append(recs, RecommendStayCheck)
	}
	if len(recs) == 0 {
		recs = append(recs, RecommendCompleteness)
	}
	return recs
}

func anyContains(factors []string, keyword string) bool {
	for _, f := range factors {
		if strings.Contains(f, keyword) {
			return true
		}
	}
	return false
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
