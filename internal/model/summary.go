package model

import "time"

// RunSummary captures metrics from a single batch scoring run.
type RunSummary struct {
	FilePath         string
	FileSHA256       string
	RunID            string
	RowsRead         int64
	RowsScored       int64
	RowsDegraded     int64
	RowsByGroup      map[Group]int64
	RowsByRiskLevel  map[RiskLevel]int64
	RevenueImpactWon int64
	DurationScore    time.Duration
	DurationFinalize time.Duration
	DurationTotal    time.Duration
}
