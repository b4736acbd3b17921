package classify

import "github.com/gyeh/drgscore/internal/model"

var upgradeSuggestions = map[model.Group][]model.Suggestion{
	model.GroupB: {
		{Type: "documentation", Priority: "high", Description: "합병증 상세 기록 추가", ExpectedImpact: 0.15},
		{Type: "diagnosis", Priority: "medium", Description: "중증도 등급 재평가", ExpectedImpact: 0.10},
		{Type: "procedure", Priority: "medium", Description: "수술/처치 기록 확인", ExpectedImpact: 0.08},
	},
	model.GroupC: {
		{Type: "diagnosis", Priority: "high", Description: "주진단 세부화", ExpectedImpact: 0.12},
		{Type: "documentation", Priority: "medium", Description: "동반질환 기록 강화", ExpectedImpact: 0.08},
	},
}

// UpgradeSuggestions returns the documentation actions for the given group.
// Group A is already the top tier and gets none. The returned slice is a copy.
func UpgradeSuggestions(g model.Group) []model.Suggestion {
	return append([]model.Suggestion{}, upgradeSuggestions[g]...)
}
