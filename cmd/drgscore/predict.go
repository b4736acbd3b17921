package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/drgscore/internal/exitcode"
	"github.com/gyeh/drgscore/internal/logging"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/normalize"
	"github.com/gyeh/drgscore/internal/notes"
	"github.com/gyeh/drgscore/internal/risk"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Assess admissions from a YAML record (or list of records) and print YAML",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&cfg.RecordPath, "record", "-", "YAML admission record or list of records (- for stdin)")
	rootCmd.AddCommand(predictCmd)
}

type predictOutput struct {
	Assessment model.Assessment `yaml:"assessment"`
	Compliance risk.Compliance  `yaml:"compliance"`
	Notes      notes.Hints      `yaml:"clinical_notes"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	rows, err := readRecords(cfg.RecordPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read admission record")
		os.Exit(exitcode.ValidationError)
	}

	eng, stop := newEngine(log)
	defer stop()

	features := make([]model.AdmissionFeatures, len(rows))
	for i := range rows {
		features[i] = normalize.Admission(&rows[i])
	}

	out := make([]predictOutput, 0, len(features))
	if len(features) == 1 {
		f := &features[0]
		out = append(out, describe(f, eng.PredictComprehensive(f)))
	} else {
		for _, br := range eng.PredictBatch(features) {
			out = append(out, describe(&features[br.Index], br.Assessment))
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	if len(out) == 1 {
		return enc.Encode(out[0])
	}
	return enc.Encode(out)
}

func describe(f *model.AdmissionFeatures, a model.Assessment) predictOutput {
	return predictOutput{
		Assessment: a,
		Compliance: risk.CheckCompliance(f.PrincipalDiagnosis),
		Notes:      notes.Extract(f.ClinicalNotes),
	}
}

// readRecords accepts either a single mapping or a sequence of mappings.
func readRecords(path string) ([]model.AdmissionRow, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open record: %w", err)
		}
		defer f.Close()
		r = f
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse record: empty document")
	}

	node := doc.Content[0]
	if node.Kind == yaml.SequenceNode {
		var rows []model.AdmissionRow
		if err := node.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("decode records: empty list")
		}
		return rows, nil
	}

	var row model.AdmissionRow
	if err := node.Decode(&row); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []model.AdmissionRow{row}, nil
}
