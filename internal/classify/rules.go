package classify

import (
	"strings"

	"github.com/gyeh/drgscore/internal/model"
)

var (
	groupAPrefixes = []string{"A1", "A2", "A3", "B1", "B2"}
	groupCPrefixes = []string{"C1", "C2", "D1"}
)

// Rule confidences and A-group probabilities per predicted group.
var (
	ruleConfidence = map[model.Group]float64{
		model.GroupA: 0.75,
		model.GroupB: 0.60,
		model.GroupC: 0.65,
	}
	ruleAProbability = map[model.Group]float64{
		model.GroupA: 0.9,
		model.GroupB: 0.3,
		model.GroupC: 0.1,
	}
)

// Rules classifies by the first two characters of the principal diagnosis.
// It is the fallback when no learned model is available and never fails.
type Rules struct {
	Threshold float64
}

// NewRules returns a rule-based classifier using the given upgrade threshold.
func NewRules(threshold float64) *Rules {
	return &Rules{Threshold: threshold}
}

// Predict implements Classifier.
func (r *Rules) Predict(f *model.AdmissionFeatures) (model.GroupPrediction, error) {
	group := RuleGroup(f.PrincipalDiagnosis)
	return newPrediction(group, ruleConfidence[group], ruleAProbability[group], r.Threshold, nil, model.SourceRules), nil
}

// RuleGroup maps a principal diagnosis code to a group by prefix.
func RuleGroup(diagnosis string) model.Group {
	if len(diagnosis) < 2 {
		return model.GroupB
	}
	prefix := diagnosis[:2]
	switch {
	case hasPrefix(prefix, groupAPrefixes):
		return model.GroupA
	case hasPrefix(prefix, groupCPrefixes):
		return model.GroupC
	default:
		return model.GroupB
	}
}

func hasPrefix(prefix string, set []string) bool {
	for _, p := range set {
		if strings.EqualFold(prefix, p) {
			return true
		}
	}
	return false
}
