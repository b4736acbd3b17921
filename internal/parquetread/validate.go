package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Column names the scorer cannot work without.
const (
	ColAdmissionID        = "admission_id"
	ColPrincipalDiagnosis = "principal_diagnosis"
	ColLengthOfStay       = "length_of_stay"
	ColAdmitDate          = "admit_date"
	ColDischargeDate      = "discharge_date"
)

// ValidateSchema checks that the Parquet schema has the identifying columns and a
// way to compute length of stay: either the column itself or both dates.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	required := []string{ColAdmissionID, ColPrincipalDiagnosis}
	for _, col := range required {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	if !columns[ColLengthOfStay] && !(columns[ColAdmitDate] && columns[ColDischargeDate]) {
		return fmt.Errorf("no length of stay source; need %s or both %s and %s",
			ColLengthOfStay, ColAdmitDate, ColDischargeDate)
	}

	return nil
}
