package entities

import "fmt"

// PenaltyTable maps each quality state to the fraction of the daily unit cost that is still charged
type PenaltyTable [NumQualityStates]float64

// DefaultPenaltyTable returns the fixed penalty multipliers used by the simulator
func DefaultPenaltyTable() PenaltyTable {
	return PenaltyTable{1.0, 0.95, 0.85, 0.5, 0.3}
}

// Multiplier returns the share of the unit cost charged for a product in the given state
func (p PenaltyTable) Multiplier(state QualityState) float64 {
	return p[state]
}

// Discount returns the share of the unit cost lost for a product in the given state
func (p PenaltyTable) Discount(state QualityState) float64 {
	return 1 - p[state]
}

// Validate checks that every multiplier lies in (0, 1]
func (p PenaltyTable) Validate() error {
	for s, multiplier := range p {
		if !(multiplier > 0 && multiplier <= 1) {
			return newParameterError(
				"penaltyTable",
				"",
				fmt.Sprintf("multiplier for %s must be in (0, 1], got %v", QualityState(s), multiplier),
			)
		}
	}
	return nil
}
