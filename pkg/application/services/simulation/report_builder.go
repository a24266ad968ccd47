package simulation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
	domain "github.com/vsinha/qualitysim/pkg/domain/services"
)

// StackedChartSamples is how many evenly spaced days the stacked distribution shows
const StackedChartSamples = 5

// money rounds an accumulated float amount to cents
func money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// BuildReport converts a run snapshot into the report consumed by the output layer.
// For a run still in progress the state lines describe the latest processed day.
func BuildReport(snapshot domain.RunSnapshot, currency string) *dto.SimulationReport {
	report := &dto.SimulationReport{
		RunID:             snapshot.ID.String(),
		Params:            snapshot.Params,
		Seed:              snapshot.Seed,
		Currency:          currency,
		Status:            snapshot.Status.String(),
		CurrentDay:        snapshot.CurrentDay,
		GeneratedAt:       time.Now().UTC(),
		CostPerDayPerUnit: money(snapshot.CostPerDayPerUnit),
		TotalCost:         money(snapshot.TotalCost),
		History:           snapshot.History,
	}

	var counts entities.StateCounts
	if last, ok := snapshot.LastResult(); ok {
		counts = last.Counts
	}
	fractions := counts.Fractions(snapshot.Params.NumProducts)

	totalDiscount := 0.0
	report.States = make([]dto.StateSummary, 0, entities.NumQualityStates)
	for _, state := range entities.AllQualityStates() {
		totalDiscount += snapshot.Discounts[state]
		report.States = append(report.States, dto.StateSummary{
			State:    state.String(),
			Count:    counts[state],
			Fraction: fractions[state],
			Discount: money(snapshot.Discounts[state]),
		})
	}
	report.TotalDiscount = money(totalDiscount)

	report.SampledDays = sampleHistory(snapshot.History, snapshot.CurrentDay)

	if snapshot.StateGrid != nil {
		report.StateGrid = make([][]int, len(snapshot.StateGrid))
		for d, row := range snapshot.StateGrid {
			report.StateGrid[d] = make([]int, len(row))
			for i, state := range row {
				report.StateGrid[d][i] = int(state)
			}
		}
	}

	return report
}

// sampleHistory picks the stacked chart columns from the processed days
func sampleHistory(history []entities.DayResult, processed int) []dto.SampledDay {
	if processed > len(history) {
		processed = len(history)
	}
	days := domain.SampleDays(processed, StackedChartSamples)
	sampled := make([]dto.SampledDay, 0, len(days))
	for _, d := range days {
		sampled = append(sampled, dto.SampledDay{
			Day:    d,
			Label:  fmt.Sprintf("Day %d", d+1),
			Counts: history[d].Counts,
		})
	}
	return sampled
}
