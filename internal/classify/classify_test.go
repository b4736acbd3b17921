package classify

import (
	"path/filepath"
	"testing"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/model"
)

func TestRuleGroup(t *testing.T) {
	tests := []struct {
		dx   string
		want model.Group
	}{
		{"A11", model.GroupA},
		{"A39", model.GroupA},
		{"B20", model.GroupA},
		{"b15", model.GroupA},
		{"C21", model.GroupC},
		{"D10", model.GroupC},
		{"B50", model.GroupB},
		{"I50", model.GroupB},
		{"A", model.GroupB},
		{"", model.GroupB},
	}
	for _, tt := range tests {
		if got := RuleGroup(tt.dx); got != tt.want {
			t.Errorf("RuleGroup(%q) = %s, want %s", tt.dx, got, tt.want)
		}
	}
}

func TestRules_Predict(t *testing.T) {
	r := NewRules(DefaultUpgradeThreshold)

	tests := []struct {
		dx         string
		group      model.Group
		confidence float64
		aProb      float64
		canUpgrade bool
		nSugg      int
	}{
		{"A11", model.GroupA, 0.75, 0.9, true, 0},
		{"I50", model.GroupB, 0.60, 0.3, false, 3},
		{"C10", model.GroupC, 0.65, 0.1, false, 2},
	}
	for _, tt := range tests {
		pred, err := r.Predict(&model.AdmissionFeatures{PrincipalDiagnosis: tt.dx})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.dx, err)
		}
		if pred.PredictedGroup != tt.group || pred.Confidence != tt.confidence {
			t.Errorf("%s: got %s/%v, want %s/%v", tt.dx, pred.PredictedGroup, pred.Confidence, tt.group, tt.confidence)
		}
		if pred.AGroupProbability != tt.aProb || pred.CanUpgrade != tt.canUpgrade {
			t.Errorf("%s: a_prob %v upgrade %v, want %v %v", tt.dx, pred.AGroupProbability, pred.CanUpgrade, tt.aProb, tt.canUpgrade)
		}
		if pred.DRGCode != string(tt.group)+"001" {
			t.Errorf("%s: drg code %s", tt.dx, pred.DRGCode)
		}
		if len(pred.UpgradeSuggestions) != tt.nSugg {
			t.Errorf("%s: %d suggestions, want %d", tt.dx, len(pred.UpgradeSuggestions), tt.nSugg)
		}
		if pred.Source != model.SourceRules {
			t.Errorf("%s: source %s", tt.dx, pred.Source)
		}
	}
}

func TestRules_ThresholdIsInclusive(t *testing.T) {
	r := NewRules(0.3)
	pred, _ := r.Predict(&model.AdmissionFeatures{PrincipalDiagnosis: "I50"})
	if !pred.CanUpgrade {
		t.Error("A probability equal to the threshold should allow upgrade")
	}
}

func TestUpgradeSuggestions_ReturnsCopy(t *testing.T) {
	s := UpgradeSuggestions(model.GroupB)
	s[0].Description = "changed"
	if UpgradeSuggestions(model.GroupB)[0].Description != "합병증 상세 기록 추가" {
		t.Error("mutating the returned slice changed the shared table")
	}
	if got := UpgradeSuggestions(model.GroupA); got == nil || len(got) != 0 {
		t.Errorf("group A: got %v, want empty non-nil", got)
	}
}

// loadForest builds a single-leaf forest classifier with fixed class probabilities.
func loadForest(t *testing.T, classes []string, leaf []float64) *Learned {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	err := artifact.Save(path, &artifact.File{
		Kind:           artifact.KindGroupClassifier,
		FeatureColumns: []string{model.ColAge},
		Classes:        classes,
		Model: artifact.Ensemble{
			Objective: artifact.ObjectiveForest,
			Trees:     []artifact.Tree{{Nodes: []artifact.Node{{Leaf: leaf}}}},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	h, err := artifact.Load(path, artifact.KindGroupClassifier)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	l, err := NewLearned(h, DefaultUpgradeThreshold)
	if err != nil {
		t.Fatalf("NewLearned: %v", err)
	}
	return l
}

func TestLearned_Argmax(t *testing.T) {
	l := loadForest(t, []string{"A", "B", "C"}, []float64{0.25, 0.125, 0.625})
	pred, err := l.Predict(&model.AdmissionFeatures{})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.PredictedGroup != model.GroupC || pred.Confidence != 0.625 {
		t.Errorf("got %s/%v, want C/0.625", pred.PredictedGroup, pred.Confidence)
	}
	if pred.AGroupProbability != 0.25 || pred.CanUpgrade {
		t.Errorf("a_prob %v upgrade %v", pred.AGroupProbability, pred.CanUpgrade)
	}
	if pred.Source != model.SourceLearned {
		t.Errorf("source %s", pred.Source)
	}
}

func TestLearned_TieResolvesToTrainingOrder(t *testing.T) {
	l := loadForest(t, []string{"B", "A", "C"}, []float64{0.375, 0.375, 0.25})
	pred, _ := l.Predict(&model.AdmissionFeatures{})
	if pred.PredictedGroup != model.GroupB {
		t.Errorf("tie: got %s, want B (first in class order)", pred.PredictedGroup)
	}
}

func TestLearned_NoAClass(t *testing.T) {
	l := loadForest(t, []string{"B", "C"}, []float64{0.25, 0.75})
	pred, _ := l.Predict(&model.AdmissionFeatures{})
	if pred.AGroupProbability != 0 || pred.CanUpgrade {
		t.Errorf("missing A class: a_prob %v upgrade %v, want 0 false", pred.AGroupProbability, pred.CanUpgrade)
	}
}

func TestNewLearned_UnknownClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	_ = artifact.Save(path, &artifact.File{
		Kind:           artifact.KindGroupClassifier,
		FeatureColumns: []string{model.ColAge},
		Classes:        []string{"A", "Z"},
		Model: artifact.Ensemble{
			Objective: artifact.ObjectiveForest,
			Trees:     []artifact.Tree{{Nodes: []artifact.Node{{Leaf: []float64{0.5, 0.5}}}}},
		},
	})
	h, err := artifact.Load(path, artifact.KindGroupClassifier)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := NewLearned(h, DefaultUpgradeThreshold); err == nil {
		t.Fatal("expected error for class Z")
	}
}
