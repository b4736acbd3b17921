package model

// AdmissionRow mirrors the Parquet (and YAML) shape of one exported admission.
// Free-form fields stay as strings here; they are parsed during normalization.
type AdmissionRow struct {
	AdmissionID string `parquet:"admission_id" yaml:"admission_id"`

	PrincipalDiagnosis *string `parquet:"principal_diagnosis,optional" yaml:"principal_diagnosis"`
	// Comma-separated KCD codes
	SecondaryDiagnoses *string `parquet:"secondary_diagnoses,optional" yaml:"secondary_diagnoses"`
	Procedures         *string `parquet:"procedures,optional" yaml:"procedures"`

	Age        *string `parquet:"age,optional" yaml:"age"`
	Gender     *string `parquet:"gender,optional" yaml:"gender"`
	Department *string `parquet:"department,optional" yaml:"department"`

	LengthOfStay  *string `parquet:"length_of_stay,optional" yaml:"length_of_stay"`
	AdmitDate     *string `parquet:"admit_date,optional" yaml:"admit_date"`
	DischargeDate *string `parquet:"discharge_date,optional" yaml:"discharge_date"`

	// Claim history
	DRGGroup    *string  `parquet:"drg_group,optional" yaml:"drg_group"` // group already assigned on the claim, if any
	DRGWeight   *float64 `parquet:"drg_weight,optional" yaml:"drg_weight"`
	PastDenials *int32   `parquet:"past_denials,optional" yaml:"past_denials"`

	ClinicalNotes *string `parquet:"clinical_notes,optional" yaml:"clinical_notes"`
}

// Gender of the patient as recorded on the admission.
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "unknown"
)

// AdmissionFeatures is the canonical input to the decision engine.
type AdmissionFeatures struct {
	AdmissionID string

	PrincipalDiagnosis string
	SecondaryDiagnoses []string
	Procedures         []string

	Age        *int
	Gender     Gender
	Department string

	// LengthOfStay is nil when absent or unparseable.
	LengthOfStay *int

	// CurrentGroup is the group already assigned on the claim; "" when none.
	CurrentGroup Group
	DRGWeight    *float64
	PriorDenials int

	ClinicalNotes string
}

// ComorbidityCount is the number of secondary diagnoses.
func (f *AdmissionFeatures) ComorbidityCount() int {
	return len(f.SecondaryDiagnoses)
}

// ProcedureCount is the number of recorded procedures.
func (f *AdmissionFeatures) ProcedureCount() int {
	return len(f.Procedures)
}

// DiagnosisChapter is the leading letter of the principal diagnosis, or "" if none.
func (f *AdmissionFeatures) DiagnosisChapter() string {
	if f.PrincipalDiagnosis == "" {
		return ""
	}
	return f.PrincipalDiagnosis[:1]
}

// StayDays returns the length of stay, treating an unset value as 0.
func (f *AdmissionFeatures) StayDays() int {
	if f.LengthOfStay == nil {
		return 0
	}
	return *f.LengthOfStay
}
