package model

// Group is a K-DRG severity tier. A is the most resource-intensive.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
	GroupC Group = "C"
)

// DRGSuffix is appended to the group letter to form the DRG code.
const DRGSuffix = "001"

// AllGroups lists the severity groups in canonical (training) order.
var AllGroups = []Group{GroupA, GroupB, GroupC}

// DRGCode returns the group letter followed by DRGSuffix, e.g. "A001".
func (g Group) DRGCode() string {
	return string(g) + DRGSuffix
}

// ParseGroup returns the Group for s, or ok=false if s is not one of A, B, C.
func ParseGroup(s string) (Group, bool) {
	for _, g := range AllGroups {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// RiskLevel buckets a denial probability.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Risk level boundaries. A probability equal to a boundary falls in the higher tier.
const (
	MediumRiskBoundary = 0.4
	HighRiskBoundary   = 0.7
)

// Elevated reports whether the level warrants a reviewer's attention.
func (l RiskLevel) Elevated() bool {
	return l == RiskMedium || l == RiskHigh
}

// Source identifies which variant produced a prediction.
type Source string

const (
	SourceLearned Source = "learned"
	SourceRules   Source = "rules"
)
