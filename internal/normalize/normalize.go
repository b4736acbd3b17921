package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/gyeh/drgscore/internal/model"
)

// Admission converts a raw AdmissionRow into canonical AdmissionFeatures.
// It never rejects a row: absent or unparseable optional fields become neutral
// defaults (age unset, gender unknown, length of stay unset).
func Admission(row *model.AdmissionRow) model.AdmissionFeatures {
	f := model.AdmissionFeatures{
		AdmissionID:        strings.TrimSpace(row.AdmissionID),
		PrincipalDiagnosis: derefStr(NormalizeCode(row.PrincipalDiagnosis)),
		SecondaryDiagnoses: SplitCodes(row.SecondaryDiagnoses),
		Procedures:         SplitCodes(row.Procedures),
		Age:                parseAge(row.Age),
		Gender:             ParseGender(row.Gender),
		Department:         derefStr(CleanText(row.Department)),
		LengthOfStay:       parseDays(row.LengthOfStay),
		CurrentGroup:       ParseGroup(row.DRGGroup),
		ClinicalNotes:      strings.TrimSpace(derefStr(row.ClinicalNotes)),
	}

	// Fall back to admit/discharge dates when the stay length was not exported.
	if f.LengthOfStay == nil {
		f.LengthOfStay = StayFromDates(derefStr(row.AdmitDate), derefStr(row.DischargeDate))
	}

	if row.DRGWeight != nil && !math.IsNaN(*row.DRGWeight) && !math.IsInf(*row.DRGWeight, 0) {
		w := *row.DRGWeight
		f.DRGWeight = &w
	}
	if row.PastDenials != nil && *row.PastDenials > 0 {
		f.PriorDenials = int(*row.PastDenials)
	}

	return f
}

// ParseGroup reads an assigned group label, accepting "c" and "C그룹" style values.
// Anything else is "".
func ParseGroup(v *string) model.Group {
	if v == nil {
		return ""
	}
	s := strings.ToUpper(strings.TrimSpace(*v))
	s = strings.TrimSuffix(s, "그룹")
	s = strings.TrimSuffix(s, "GROUP")
	g, _ := model.ParseGroup(strings.TrimSpace(s))
	return g
}

// ParseGender maps the common spellings of a recorded gender onto M, F or unknown.
func ParseGender(v *string) model.Gender {
	if v == nil {
		return model.GenderUnknown
	}
	switch strings.ToLower(strings.TrimSpace(*v)) {
	case "m", "male", "남", "남성":
		return model.GenderMale
	case "f", "female", "여", "여성":
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}

func parseAge(v *string) *int {
	n := parseInt(v)
	if n == nil || *n < 0 || *n > 150 {
		return nil
	}
	return n
}

// parseDays accepts "5", "5.0" and "5일".
func parseDays(v *string) *int {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	s = strings.TrimSpace(strings.TrimSuffix(s, "일"))
	return parseInt(&s)
}

func parseInt(v *string) *int {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) || fl != math.Trunc(fl) {
		return nil
	}
	n := int(fl)
	return &n
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
