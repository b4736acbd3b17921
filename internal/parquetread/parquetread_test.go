package parquetread

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/drgscore/internal/model"
)

func strPtr(s string) *string { return &s }

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admissions.parquet")
	rows := []model.AdmissionRow{
		{AdmissionID: "ADM001", PrincipalDiagnosis: strPtr("A11"), LengthOfStay: strPtr("5")},
		{AdmissionID: "ADM002", SecondaryDiagnoses: strPtr("E11,I10")},
		{AdmissionID: "ADM003", PrincipalDiagnosis: strPtr("C21"), AdmitDate: strPtr("2024-01-01")},
	}
	if err := Write(path, rows); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if err := ValidateSchema(r.Schema()); err != nil {
		t.Errorf("ValidateSchema: %v", err)
	}
	if r.NumRows() != 3 {
		t.Errorf("NumRows: got %d, want 3", r.NumRows())
	}

	buf := make([]model.AdmissionRow, 10)
	n, err := r.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("Read: %v", err)
	}
	if n != 3 {
		t.Fatalf("read %d rows, want 3", n)
	}
	if buf[0].PrincipalDiagnosis == nil || *buf[0].PrincipalDiagnosis != "A11" {
		t.Errorf("row 0 diagnosis: got %v", buf[0].PrincipalDiagnosis)
	}
	if buf[1].PrincipalDiagnosis != nil {
		t.Errorf("row 1 diagnosis should be null, got %q", *buf[1].PrincipalDiagnosis)
	}
}

func TestValidateSchema_Missing(t *testing.T) {
	type noStay struct {
		AdmissionID        string `parquet:"admission_id"`
		PrincipalDiagnosis string `parquet:"principal_diagnosis"`
		AdmitDate          string `parquet:"admit_date"`
	}
	type noDiagnosis struct {
		AdmissionID  string `parquet:"admission_id"`
		LengthOfStay string `parquet:"length_of_stay"`
	}
	type datesOnly struct {
		AdmissionID        string `parquet:"admission_id"`
		PrincipalDiagnosis string `parquet:"principal_diagnosis"`
		AdmitDate          string `parquet:"admit_date"`
		DischargeDate      string `parquet:"discharge_date"`
	}

	if err := ValidateSchema(parquet.SchemaOf(noStay{})); err == nil {
		t.Error("expected error when no length of stay source")
	}
	if err := ValidateSchema(parquet.SchemaOf(noDiagnosis{})); err == nil {
		t.Error("expected error for missing principal_diagnosis")
	}
	if err := ValidateSchema(parquet.SchemaOf(datesOnly{})); err != nil {
		t.Errorf("dates only should be accepted: %v", err)
	}
}
