// mkfixture writes a synthetic admissions Parquet export and a pair of sample model
// artifacts for local runs of drgscore.
// Usage: go run ./cmd/mkfixture --out testdata --rows 500
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gyeh/drgscore/internal/artifact"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/parquetread"
)

var (
	diagnoses = []string{"A11", "A41.9", "B20", "C21", "D10", "E11.9", "I10", "I21.0", "I50.9", "I63.9", "J18.9", "K35.8", "N18.5", "S72.0", "Z99"}
	secondary = []string{"E11", "I10", "N18", "J44", "E78", "I48", "F32"}
	depts     = []string{"내과", "외과", "신경과", "호흡기내과", "정형외과", "Unknown"}
	notes     = []string{
		"발열 및 기침으로 내원. 흉부 영상에서 폐렴 소견.",
		"기저질환으로 당뇨 및 고혈압 있음. 혈당 조절 불량.",
		"흉통 호소. 급성 심근경색 의심되어 응급 시술 진행.",
		"우측 편마비 발생. 뇌졸중 진단 후 입원.",
		"복통으로 내원하여 충수절제 수술 시행.",
		"",
	}
)

func main() {
	outDir := flag.String("out", "testdata", "output directory")
	rows := flag.Int("rows", 500, "admissions to generate")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	admissions := make([]model.AdmissionRow, *rows)
	for i := range admissions {
		admissions[i] = admission(rng, i)
	}

	parquetPath := filepath.Join(*outDir, "admissions.parquet")
	if err := parquetread.Write(parquetPath, admissions); err != nil {
		fmt.Fprintf(os.Stderr, "write parquet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d admissions to %s\n", len(admissions), parquetPath)

	trainedAt := time.Now().UTC().Truncate(time.Second)
	for name, af := range map[string]*artifact.File{
		"a_group_classifier.json": classifierArtifact(trainedAt),
		"denial_predictor.json":   denialArtifact(trainedAt),
	} {
		path := filepath.Join(*outDir, name)
		if err := artifact.Save(path, af); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s artifact to %s\n", af.Kind, path)
	}
}

func admission(rng *rand.Rand, i int) model.AdmissionRow {
	row := model.AdmissionRow{AdmissionID: fmt.Sprintf("ADM%06d", i+1)}

	// A few rows exercise the missing-diagnosis and abnormal-stay paths.
	if rng.IntN(20) != 0 {
		row.PrincipalDiagnosis = ptr(diagnoses[rng.IntN(len(diagnoses))])
	}
	n := rng.IntN(4)
	sec := make([]string, 0, n)
	for j := 0; j < n; j++ {
		sec = append(sec, secondary[rng.IntN(len(secondary))])
	}
	row.SecondaryDiagnoses = ptr(strings.Join(sec, ","))
	if rng.IntN(3) == 0 {
		row.Procedures = ptr("Q2861")
	}

	row.Age = ptr(strconv.Itoa(18 + rng.IntN(75)))
	row.Gender = ptr([]string{"M", "F", "남", "여"}[rng.IntN(4)])
	row.Department = ptr(depts[rng.IntN(len(depts))])

	stay := 1 + rng.IntN(20)
	switch rng.IntN(10) {
	case 0:
		admit := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.IntN(300))
		row.AdmitDate = ptr(admit.Format("2006-01-02"))
		row.DischargeDate = ptr(admit.AddDate(0, 0, stay).Format("2006-01-02"))
	case 1:
		row.LengthOfStay = ptr(strconv.Itoa(400 + rng.IntN(30)))
	default:
		row.LengthOfStay = ptr(strconv.Itoa(stay) + "일")
	}

	if rng.IntN(4) == 0 {
		row.DRGGroup = ptr([]string{"A", "B", "C"}[rng.IntN(3)])
	}
	w := 0.5 + rng.Float64()*1.5
	row.DRGWeight = &w
	d := int32(rng.IntN(3))
	row.PastDenials = &d
	row.ClinicalNotes = ptr(notes[rng.IntN(len(notes))])
	return row
}

// classifierArtifact favors A for older, multi-morbid patients and C for short stays.
func classifierArtifact(trainedAt time.Time) *artifact.File {
	return &artifact.File{
		Kind:      artifact.KindGroupClassifier,
		Version:   "fixture-1",
		TrainedAt: trainedAt,
		FeatureColumns: []string{
			model.ColAge,
			model.ColComorbidityCount,
			model.ColLengthOfStay,
			model.ColDiagnosisChapter + model.EncodedSuffix,
		},
		Encoders: map[string][]string{
			model.ColDiagnosisChapter: {"A", "B", "C", "D", "E", "I", "J", "K", "N", "S", "Z", artifact.UnknownCategory},
		},
		Classes: []string{"A", "B", "C"},
		Model: artifact.Ensemble{
			Objective: artifact.ObjectiveSoftprob,
			BaseScore: 0.5,
			Trees: []artifact.Tree{
				{Class: 0, Nodes: []artifact.Node{
					{Feature: 0, Threshold: 65, Left: 1, Right: 2},
					{Leaf: []float64{-0.4}},
					{Feature: 1, Threshold: 2, Left: 3, Right: 4},
					{Leaf: []float64{0.3}},
					{Leaf: []float64{1.2}},
				}},
				{Class: 1, Nodes: []artifact.Node{{Leaf: []float64{0.4}}}},
				{Class: 2, Nodes: []artifact.Node{
					{Feature: 2, Threshold: 3, Left: 1, Right: 2},
					{Leaf: []float64{0.9}},
					{Leaf: []float64{-0.3}},
				}},
			},
		},
	}
}

// denialArtifact raises denial odds with prior denials and very short stays.
func denialArtifact(trainedAt time.Time) *artifact.File {
	return &artifact.File{
		Kind:      artifact.KindDenialPredictor,
		Version:   "fixture-1",
		TrainedAt: trainedAt,
		FeatureColumns: []string{
			model.ColLengthOfStay,
			model.ColPastDenials,
			model.ColComorbidityCount,
		},
		Classes: []string{"0", "1"},
		Model: artifact.Ensemble{
			Objective: artifact.ObjectiveLogistic,
			BaseScore: -1.2,
			Trees: []artifact.Tree{
				{Nodes: []artifact.Node{
					{Feature: 1, Threshold: 1, Left: 1, Right: 2},
					{Leaf: []float64{-0.3}},
					{Leaf: []float64{1.1}},
				}},
				{Nodes: []artifact.Node{
					{Feature: 0, Threshold: 2, Left: 1, Right: 2},
					{Leaf: []float64{0.8}},
					{Feature: 2, Threshold: 1, Left: 3, Right: 4},
					{Leaf: []float64{0.2}},
					{Leaf: []float64{-0.2}},
				}},
			},
		},
	}
}

func ptr(s string) *string { return &s }
