package main

import (
	"errors"
	"fmt"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
	"github.com/vsinha/qualitysim/pkg/domain/services"
)

func main() {
	// Ten products sold for 1000 over three days
	params, err := entities.NewSimulationParameters(3, 10, 1000)
	if err != nil {
		fmt.Printf("❌ Invalid parameters: %v\n", err)
		return
	}

	engine, err := services.NewDefaultMarkovEngine(params, services.DefaultSeed)
	if err != nil {
		fmt.Printf("❌ Failed to create engine: %v\n", err)
		return
	}

	fmt.Println("🏭 Simulating product quality degradation...")
	fmt.Printf("Parameters: %s\n", params)
	fmt.Printf("Cost per day per unit: $%.2f\n\n", engine.CostPerDayPerUnit())

	for !engine.IsComplete() {
		result, err := engine.Step()
		if err != nil {
			fmt.Printf("❌ Step failed: %v\n", err)
			return
		}
		fmt.Printf("📅 Day %d: %v  daily $%.2f  accumulated $%.2f\n",
			result.Day, result.Counts, result.DailyCost, result.TotalCost)
	}

	// Stepping a finished engine is rejected without touching its state
	if _, err := engine.Step(); errors.Is(err, services.ErrSimulationComplete) {
		fmt.Println("✅ Engine reports completion")
	}

	summary, err := engine.Summary()
	if err != nil {
		fmt.Printf("❌ Summary failed: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Final Summary:")
	for _, state := range entities.AllQualityStates() {
		fmt.Printf("- %s: %d products (%.1f%%)\n", state, summary.Counts[state], summary.Fractions[state]*100)
		fmt.Printf("  Accumulated discount: $%.2f\n", summary.Discounts[state])
	}
	fmt.Printf("\nTotal cost: $%.2f  Total discount: $%.2f\n", summary.TotalCost, summary.TotalDiscount())

	// A stricter supplier: products never recover and degrade faster
	strict := entities.TransitionMatrix{
		{0.5, 0.3, 0.1, 0.05, 0.05},
		{0.0, 0.5, 0.3, 0.1, 0.1},
		{0.0, 0.0, 0.5, 0.3, 0.2},
		{0.0, 0.0, 0.0, 0.6, 0.4},
		{0.0, 0.0, 0.0, 0.0, 1.0},
	}
	custom, err := services.NewMarkovEngine(params, strict, entities.DefaultPenaltyTable(), services.NewDefaultLCG(7))
	if err != nil {
		fmt.Printf("❌ Failed to create custom engine: %v\n", err)
		return
	}
	for !custom.IsComplete() {
		if _, err := custom.Step(); err != nil {
			fmt.Printf("❌ Step failed: %v\n", err)
			return
		}
	}
	fmt.Printf("\n🔧 Strict matrix, seed 7: total cost $%.2f\n", custom.TotalCost())
}
