package services

import (
	"errors"
	"fmt"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

var (
	// ErrSimulationComplete is returned by Step once every day has been processed
	ErrSimulationComplete = errors.New("simulation already complete")
	// ErrSimulationRunning is returned by Summary before the last day has been processed
	ErrSimulationRunning = errors.New("simulation still running")
)

// EngineStatus is the lifecycle state of a MarkovEngine
type EngineStatus int

const (
	Running EngineStatus = iota
	Complete
)

// String method for EngineStatus enum
func (s EngineStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarkovEngine advances a batch of products through the quality Markov chain one day at a time
// and accumulates the penalty cost and per-state discounts.
type MarkovEngine struct {
	params    entities.SimulationParameters
	matrix    entities.TransitionMatrix
	penalties entities.PenaltyTable
	stream    RandomStream

	stateGrid         [][]entities.QualityState
	currentDay        int
	totalCost         float64
	discountByState   [entities.NumQualityStates]float64
	costPerDayPerUnit float64
}

// NewMarkovEngine validates its inputs and allocates the simulation state.
// Nothing is allocated when validation fails.
func NewMarkovEngine(
	params entities.SimulationParameters,
	matrix entities.TransitionMatrix,
	penalties entities.PenaltyTable,
	stream RandomStream,
) (*MarkovEngine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	if err := penalties.Validate(); err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, &entities.ParameterError{Field: "randomStream", Reason: "must not be nil"}
	}

	// Backed by one allocation; the zero value of every cell is Excellent, which is day 0
	cells := make([]entities.QualityState, params.Days*params.NumProducts)
	grid := make([][]entities.QualityState, params.Days)
	for d := range grid {
		grid[d] = cells[d*params.NumProducts : (d+1)*params.NumProducts : (d+1)*params.NumProducts]
	}

	return &MarkovEngine{
		params:            params,
		matrix:            matrix,
		penalties:         penalties,
		stream:            stream,
		stateGrid:         grid,
		costPerDayPerUnit: params.CostPerDayPerUnit(),
	}, nil
}

// NewDefaultMarkovEngine creates an engine with the fixed matrix, the fixed penalties and an LCG
func NewDefaultMarkovEngine(params entities.SimulationParameters, seed uint32) (*MarkovEngine, error) {
	return NewMarkovEngine(
		params,
		entities.DefaultTransitionMatrix(),
		entities.DefaultPenaltyTable(),
		NewDefaultLCG(seed),
	)
}

// Step processes the next day: products transition (except on day 0), then the day is costed.
func (e *MarkovEngine) Step() (entities.DayResult, error) {
	if e.IsComplete() {
		return entities.DayResult{}, ErrSimulationComplete
	}

	day := e.currentDay
	if day > 0 {
		prevRow := e.stateGrid[day-1]
		row := e.stateGrid[day]
		for i, prev := range prevRow {
			row[i] = e.nextState(prev, e.stream.Next())
		}
	}

	counts := entities.CountStates(e.stateGrid[day])

	dailyCost := 0.0
	for s, n := range counts {
		dailyCost += float64(n) * e.penalties[s] * e.costPerDayPerUnit
	}
	e.totalCost += dailyCost

	for s, n := range counts {
		e.discountByState[s] += float64(n) * (1 - e.penalties[s]) * e.costPerDayPerUnit
	}

	e.currentDay++

	return entities.DayResult{
		Day:       day,
		Counts:    counts,
		DailyCost: dailyCost,
		TotalCost: e.totalCost,
	}, nil
}

// nextState samples the transition row of prev by inverse CDF
func (e *MarkovEngine) nextState(prev entities.QualityState, r float64) entities.QualityState {
	cumulative := 0.0
	for j, p := range e.matrix.Row(prev) {
		cumulative += p
		if cumulative > r {
			return entities.QualityState(j)
		}
	}
	// Rounding left the row sum at or below r
	return entities.Poor
}

// Summary returns the final distribution and discounts; only valid once complete
func (e *MarkovEngine) Summary() (entities.FinalSummary, error) {
	if !e.IsComplete() {
		return entities.FinalSummary{}, fmt.Errorf(
			"summary requested on day %d of %d: %w", e.currentDay, e.params.Days, ErrSimulationRunning)
	}

	counts := entities.CountStates(e.stateGrid[e.params.Days-1])
	return entities.FinalSummary{
		Days:        e.params.Days,
		NumProducts: e.params.NumProducts,
		Counts:      counts,
		Fractions:   counts.Fractions(e.params.NumProducts),
		Discounts:   e.discountByState,
		TotalCost:   e.totalCost,
	}, nil
}

// CountsForDay tallies the states recorded for an already processed day
func (e *MarkovEngine) CountsForDay(day int) (entities.StateCounts, error) {
	if day < 0 || day >= e.currentDay {
		return entities.StateCounts{}, fmt.Errorf("day %d has not been simulated (processed %d)", day, e.currentDay)
	}
	return entities.CountStates(e.stateGrid[day]), nil
}

// StateGrid returns a copy of every processed row of the state grid
func (e *MarkovEngine) StateGrid() [][]entities.QualityState {
	grid := make([][]entities.QualityState, e.currentDay)
	for d := range grid {
		grid[d] = append([]entities.QualityState(nil), e.stateGrid[d]...)
	}
	return grid
}

// Parameters returns the parameters the engine was built with
func (e *MarkovEngine) Parameters() entities.SimulationParameters {
	return e.params
}

// CurrentDay returns the number of days processed so far
func (e *MarkovEngine) CurrentDay() int {
	return e.currentDay
}

// Days returns the length of the run
func (e *MarkovEngine) Days() int {
	return e.params.Days
}

// NumProducts returns the batch size
func (e *MarkovEngine) NumProducts() int {
	return e.params.NumProducts
}

// IsComplete reports whether every day has been processed
func (e *MarkovEngine) IsComplete() bool {
	return e.currentDay >= e.params.Days
}

// Status returns Running or Complete
func (e *MarkovEngine) Status() EngineStatus {
	if e.IsComplete() {
		return Complete
	}
	return Running
}

// TotalCost returns the accumulated penalty cost
func (e *MarkovEngine) TotalCost() float64 {
	return e.totalCost
}

// Discounts returns the accumulated discount per state
func (e *MarkovEngine) Discounts() [entities.NumQualityStates]float64 {
	return e.discountByState
}

// CostPerDayPerUnit returns totalPrice / days / numProducts
func (e *MarkovEngine) CostPerDayPerUnit() float64 {
	return e.costPerDayPerUnit
}

// SampleDays picks evenly spaced day indices across [0, days-1], truncated to integers
func SampleDays(days, samples int) []int {
	if days <= 0 || samples <= 0 {
		return nil
	}
	if samples == 1 {
		return []int{0}
	}

	last := days - 1
	step := float64(last) / float64(samples-1)
	picked := make([]int, samples)
	for i := range picked {
		picked[i] = int(float64(i) * step)
	}
	picked[samples-1] = last
	return picked
}
