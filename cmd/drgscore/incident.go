package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/drgscore/internal/assess"
)

var (
	incidentType   string
	incidentWeight float64
)

var incidentCmd = &cobra.Command{
	Use:   "incident",
	Short: "Estimate the revenue impact of coding a patient safety incident",
	RunE:  runIncident,
}

func init() {
	incidentCmd.Flags().StringVar(&incidentType, "type", "", "Incident type: fall, pressure_ulcer, infection, medication_error")
	incidentCmd.Flags().Float64Var(&incidentWeight, "drg-weight", 1.0, "Current DRG weight of the admission")
	_ = incidentCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(incidentCmd)
}

func runIncident(cmd *cobra.Command, args []string) error {
	impact := assess.AnalyzeIncident(incidentType, &incidentWeight)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(impact)
}
