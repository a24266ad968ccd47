package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

// SimulationReport contains the complete output of a finished (or partially run) simulation
type SimulationReport struct {
	RunID       string                        `json:"run_id"`
	Params      entities.SimulationParameters `json:"params"`
	Seed        uint32                        `json:"seed"`
	Currency    string                        `json:"currency"`
	Status      string                        `json:"status"`
	CurrentDay  int                           `json:"current_day"`
	GeneratedAt time.Time                     `json:"generated_at"`

	CostPerDayPerUnit decimal.Decimal `json:"cost_per_day_per_unit"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`

	States      []StateSummary       `json:"states"`
	History     []entities.DayResult `json:"history"`
	SampledDays []SampledDay         `json:"sampled_days"`
	StateGrid   [][]int              `json:"state_grid,omitempty"`
}

// StateSummary is one line of the final summary
type StateSummary struct {
	State    string          `json:"state"`
	Count    int             `json:"count"`
	Fraction float64         `json:"fraction"`
	Discount decimal.Decimal `json:"discount"`
}

// SampledDay is one column of the stacked distribution chart
type SampledDay struct {
	Day    int                  `json:"day"`
	Label  string               `json:"label"`
	Counts entities.StateCounts `json:"counts"`
}

// IsComplete reports whether the report describes a finished run
func (r *SimulationReport) IsComplete() bool {
	return r.Status == "complete"
}

// FinalCounts returns the per-state counts of the summary
func (r *SimulationReport) FinalCounts() entities.StateCounts {
	var counts entities.StateCounts
	for i, s := range r.States {
		if i < entities.NumQualityStates {
			counts[i] = s.Count
		}
	}
	return counts
}
