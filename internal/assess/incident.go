package assess

// Safety incident types with a codable complication.
const (
	IncidentFall            = "fall"
	IncidentPressureUlcer   = "pressure_ulcer"
	IncidentInfection       = "infection"
	IncidentMedicationError = "medication_error"
)

const (
	// IncidentWeightFactor is the DRG weight multiplier assumed when the incident
	// is coded as a complication.
	IncidentWeightFactor = 1.2
	// IncidentRevenueUnit is the won value of one DRG weight point for incidents.
	IncidentRevenueUnit = 1000000.0
	// IncidentCodingMinimum is the revenue impact, in won, above which coding is recommended.
	IncidentCodingMinimum = 50000.0
)

type incidentCode struct {
	code        string
	description string
}

var incidentCodes = map[string]incidentCode{
	IncidentFall:            {code: "W00-W19", description: "낙상 관련 진단"},
	IncidentPressureUlcer:   {code: "L89", description: "욕창"},
	IncidentInfection:       {code: "T80-T88", description: "감염 합병증"},
	IncidentMedicationError: {code: "T36-T50", description: "약물 부작용"},
}

// IncidentImpact is the revenue consequence of coding a safety incident.
type IncidentImpact struct {
	IncidentType       string  `yaml:"incident_type"`
	SuggestedKCDCode   string  `yaml:"suggested_kcd_code,omitempty"`
	CodeDescription    string  `yaml:"code_description,omitempty"`
	CurrentDRGWeight   float64 `yaml:"current_drg_weight"`
	PotentialDRGWeight float64 `yaml:"potential_drg_weight"`
	RevenueImpact      float64 `yaml:"revenue_impact"`
	ShouldCode         bool    `yaml:"should_code"`
}

// AnalyzeIncident maps an incident type to its KCD code range and estimates the
// revenue of coding it. A nil weight reads as 1.0. Unknown types get no code but
// the impact is still computed.
func AnalyzeIncident(incidentType string, drgWeight *float64) IncidentImpact {
	base := 1.0
	if drgWeight != nil {
		base = *drgWeight
	}
	potential := base * IncidentWeightFactor
	revenue := (potential - base) * IncidentRevenueUnit

	code := incidentCodes[incidentType]
	return IncidentImpact{
		IncidentType:       incidentType,
		SuggestedKCDCode:   code.code,
		CodeDescription:    code.description,
		CurrentDRGWeight:   base,
		PotentialDRGWeight: potential,
		RevenueImpact:      revenue,
		ShouldCode:         revenue > IncidentCodingMinimum,
	}
}
