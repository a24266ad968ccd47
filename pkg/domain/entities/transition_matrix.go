package entities

import (
	"fmt"
	"math"
)

// RowSumTolerance is how far a matrix row may drift from 1.0 and still count as stochastic
const RowSumTolerance = 1e-9

// TransitionMatrix holds the day-to-day transition probabilities between quality states.
// Row i, column j is the probability that a product in state i moves to state j.
type TransitionMatrix [NumQualityStates][NumQualityStates]float64

// DefaultTransitionMatrix returns the fixed degradation matrix used by the simulator
func DefaultTransitionMatrix() TransitionMatrix {
	return TransitionMatrix{
		{0.6, 0.3, 0.05, 0.03, 0.02},
		{0.2, 0.5, 0.15, 0.1, 0.05},
		{0.1, 0.2, 0.5, 0.15, 0.05},
		{0.05, 0.1, 0.2, 0.5, 0.15},
		{0.02, 0.05, 0.1, 0.2, 0.63},
	}
}

// Row returns the outgoing probabilities for a state
func (m TransitionMatrix) Row(from QualityState) [NumQualityStates]float64 {
	return m[from]
}

// RowSum returns the sum of the probabilities in row i
func (m TransitionMatrix) RowSum(i int) float64 {
	sum := 0.0
	for _, p := range m[i] {
		sum += p
	}
	return sum
}

// Validate checks that the matrix is row-stochastic
func (m TransitionMatrix) Validate() error {
	for i := range m {
		for j, p := range m[i] {
			if p < 0 || math.IsNaN(p) {
				return newParameterError(
					"transitionMatrix",
					"",
					fmt.Sprintf("probability [%d][%d] must be non-negative, got %v", i, j, p),
				)
			}
		}
		if sum := m.RowSum(i); math.Abs(sum-1.0) > RowSumTolerance {
			return newParameterError(
				"transitionMatrix",
				"",
				fmt.Sprintf("row %s must sum to 1.0, got %v", QualityState(i), sum),
			)
		}
	}
	return nil
}
