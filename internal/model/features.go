package model

// Numeric feature columns the learned models may reference.
const (
	ColAge                   = "age"
	ColLengthOfStay          = "length_of_stay"
	ColComorbidityCount      = "comorbidity_count"
	ColProcedureCount        = "procedure_count"
	ColDRGWeight             = "drg_weight"
	ColPastDenials           = "past_denials"
	ColHasPrincipalDiagnosis = "has_principal_diagnosis"
	ColAbnormalLOS           = "abnormal_los"
)

// Categorical feature names. Artifacts reference them either directly or with
// EncodedSuffix appended, and must carry an encoder table for each.
const (
	ColDiagnosisChapter = "diagnosis_chapter"
	ColDepartment       = "department"
	ColGender           = "gender"
)

// EncodedSuffix marks a feature column holding a label-encoded categorical.
const EncodedSuffix = "_encoded"

// DenialFeatureColumns is the fixed subset used by the learned denial scorer.
var DenialFeatureColumns = []string{
	ColLengthOfStay,
	ColDRGWeight,
	ColComorbidityCount,
	ColProcedureCount,
	ColPastDenials,
}

// NumericFeature returns the value of a numeric feature column, or ok=false if the
// column is not numeric. Absent values read as 0.
func (f *AdmissionFeatures) NumericFeature(column string) (float64, bool) {
	switch column {
	case ColAge:
		if f.Age == nil {
			return 0, true
		}
		return float64(*f.Age), true
	case ColLengthOfStay:
		return float64(f.StayDays()), true
	case ColComorbidityCount:
		return float64(f.ComorbidityCount()), true
	case ColProcedureCount:
		return float64(f.ProcedureCount()), true
	case ColDRGWeight:
		if f.DRGWeight == nil {
			return 0, true
		}
		return *f.DRGWeight, true
	case ColPastDenials:
		return float64(f.PriorDenials), true
	case ColHasPrincipalDiagnosis:
		if f.PrincipalDiagnosis == "" {
			return 0, true
		}
		return 1, true
	case ColAbnormalLOS:
		if d := f.StayDays(); d < 2 || d > 60 {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// CategoricalFeature returns the raw value of a categorical feature, or ok=false if
// the name is not categorical. Absent values are returned as "".
func (f *AdmissionFeatures) CategoricalFeature(name string) (string, bool) {
	switch name {
	case ColDiagnosisChapter:
		return f.DiagnosisChapter(), true
	case ColDepartment:
		return f.Department, true
	case ColGender:
		if f.Gender == GenderUnknown {
			return "", true
		}
		return string(f.Gender), true
	}
	return "", false
}
