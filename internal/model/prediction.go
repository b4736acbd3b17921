package model

// Suggestion is a documentation or coding action that could move an admission
// to a higher-weighted group.
type Suggestion struct {
	Type           string  `yaml:"type"`
	Priority       string  `yaml:"priority"`
	Description    string  `yaml:"description"`
	ExpectedImpact float64 `yaml:"expected_impact"`
}

// GroupPrediction is the classifier's output for one admission.
type GroupPrediction struct {
	PredictedGroup     Group             `yaml:"predicted_group"`
	Confidence         float64           `yaml:"confidence"`
	DRGCode            string            `yaml:"drg_code"`
	Probabilities      map[Group]float64 `yaml:"probabilities,omitempty"`
	AGroupProbability  float64           `yaml:"a_group_probability"`
	CanUpgrade         bool              `yaml:"can_upgrade"`
	UpgradeSuggestions []Suggestion      `yaml:"upgrade_suggestions"`
	Source             Source            `yaml:"source"`
}

// DenialRisk is the risk scorer's output for one admission.
type DenialRisk struct {
	DenialProbability float64   `yaml:"denial_probability"`
	RiskLevel         RiskLevel `yaml:"risk_level"`
	RiskFactors       []string  `yaml:"risk_factors"`
	Recommendations   []string  `yaml:"recommendations"`
	Source            Source    `yaml:"source"`
}

// Assessment combines group, risk and case-mix estimates for one admission.
// It is built once per call and not modified afterwards.
type Assessment struct {
	AdmissionID     string          `yaml:"admission_id"`
	Group           GroupPrediction `yaml:"group_prediction"`
	Risk            DenialRisk      `yaml:"denial_risk"`
	EstimatedCMI    float64         `yaml:"estimated_cmi"`
	PotentialCMI    float64         `yaml:"potential_cmi"`
	RevenueImpact   float64         `yaml:"revenue_impact"`
	Recommendations []string        `yaml:"recommendations"`
	// Degraded is set when rules answered for either sub-model.
	Degraded bool `yaml:"degraded"`
}
