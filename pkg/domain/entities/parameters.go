package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxSimulationCells caps days*numProducts, the number of cells in the state grid
const MaxSimulationCells = 50_000_000

// SimulationParameters are the three user inputs of a simulation run
type SimulationParameters struct {
	Days        int     `json:"days"`
	NumProducts int     `json:"num_products"`
	TotalPrice  float64 `json:"total_price"`
}

// NewSimulationParameters creates validated simulation parameters
func NewSimulationParameters(days, numProducts int, totalPrice float64) (SimulationParameters, error) {
	params := SimulationParameters{
		Days:        days,
		NumProducts: numProducts,
		TotalPrice:  totalPrice,
	}
	if err := params.Validate(); err != nil {
		return SimulationParameters{}, err
	}
	return params, nil
}

// ParseSimulationParameters parses raw form input and validates it.
// Unparseable text is rejected the same way as non-positive values.
func ParseSimulationParameters(daysText, productsText, priceText string) (SimulationParameters, error) {
	days, err := strconv.Atoi(strings.TrimSpace(daysText))
	if err != nil {
		return SimulationParameters{}, newParameterError("days", daysText, "must be an integer")
	}

	numProducts, err := strconv.Atoi(strings.TrimSpace(productsText))
	if err != nil {
		return SimulationParameters{}, newParameterError("numProducts", productsText, "must be an integer")
	}

	totalPrice, err := strconv.ParseFloat(strings.TrimSpace(priceText), 64)
	if err != nil {
		return SimulationParameters{}, newParameterError("totalPrice", priceText, "must be a number")
	}

	return NewSimulationParameters(days, numProducts, totalPrice)
}

// Validate checks that every parameter is strictly positive
func (p SimulationParameters) Validate() error {
	if p.Days <= 0 {
		return newParameterError("days", strconv.Itoa(p.Days), "must be greater than zero")
	}
	if p.NumProducts <= 0 {
		return newParameterError("numProducts", strconv.Itoa(p.NumProducts), "must be greater than zero")
	}
	// Checked by division so the product cannot overflow
	if p.Days > MaxSimulationCells/p.NumProducts {
		return newParameterError(
			"size",
			fmt.Sprintf("%dx%d", p.Days, p.NumProducts),
			fmt.Sprintf("days*numProducts must not exceed %d", MaxSimulationCells),
		)
	}
	// NaN and +Inf fail here too
	if !(p.TotalPrice > 0) || p.TotalPrice > math.MaxFloat64 {
		return newParameterError(
			"totalPrice",
			strconv.FormatFloat(p.TotalPrice, 'g', -1, 64),
			"must be greater than zero",
		)
	}
	return nil
}

// CostPerDayPerUnit is the full-price cost of one product for one day
func (p SimulationParameters) CostPerDayPerUnit() float64 {
	return p.TotalPrice / float64(p.Days) / float64(p.NumProducts)
}

// String returns a short description of the parameters
func (p SimulationParameters) String() string {
	return fmt.Sprintf("days=%d products=%d price=%.2f", p.Days, p.NumProducts, p.TotalPrice)
}
