package entities

// DayResult is what a single step reports back to the driver
type DayResult struct {
	Day       int         `json:"day"`
	Counts    StateCounts `json:"counts"`
	DailyCost float64     `json:"daily_cost"`
	TotalCost float64     `json:"total_cost"`
}

// FinalSummary is the end-of-run view consumed by the summary output
type FinalSummary struct {
	Days        int                       `json:"days"`
	NumProducts int                       `json:"num_products"`
	Counts      StateCounts               `json:"counts"`
	Fractions   [NumQualityStates]float64 `json:"fractions"`
	Discounts   [NumQualityStates]float64 `json:"discounts"`
	TotalCost   float64                   `json:"total_cost"`
}

// TotalDiscount returns the accumulated discount across all states
func (s FinalSummary) TotalDiscount() float64 {
	total := 0.0
	for _, d := range s.Discounts {
		total += d
	}
	return total
}
