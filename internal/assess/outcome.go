// Package assess estimates case-mix outcomes and merges signals into recommendations.
package assess

import "github.com/gyeh/drgscore/internal/model"

// DefaultRevenueUnit is the won value of one CMI point.
const DefaultRevenueUnit = 300000.0

// Outcome is the case-mix consequence of a group prediction.
type Outcome struct {
	EstimatedCMI  float64
	PotentialCMI  float64
	RevenueImpact float64
}

type cmiRow struct {
	current          float64
	potential        float64 // when the admission cannot be upgraded
	upgradePotential float64 // when it can
}

var cmiTable = map[model.Group]cmiRow{
	model.GroupA: {current: 1.3, potential: 1.3, upgradePotential: 1.3},
	model.GroupB: {current: 1.0, potential: 1.0, upgradePotential: 1.3},
	model.GroupC: {current: 0.7, potential: 0.7, upgradePotential: 1.0},
}

// Estimate looks up current and potential CMI for a group. An unrecognized group
// uses the B row. Revenue impact is (potential - current) * unit.
func Estimate(group model.Group, canUpgrade bool, unit float64) Outcome {
	row, ok := cmiTable[group]
	if !ok {
		row = cmiTable[model.GroupB]
	}
	potential := row.potential
	if canUpgrade {
		potential = row.upgradePotential
	}
	return Outcome{
		EstimatedCMI:  row.current,
		PotentialCMI:  potential,
		RevenueImpact: (potential - row.current) * unit,
	}
}
