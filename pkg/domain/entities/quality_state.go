package entities

// QualityState represents the quality grade of a product on a given day
type QualityState int

const (
	Excellent QualityState = iota
	Good
	Fair
	Defective
	Poor
)

// NumQualityStates is the number of quality grades a product can be in
const NumQualityStates = 5

// String method for QualityState enum
func (q QualityState) String() string {
	switch q {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case Fair:
		return "Fair"
	case Defective:
		return "Defective"
	case Poor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// IsValid reports whether q is one of the five quality grades
func (q QualityState) IsValid() bool {
	return q >= Excellent && q <= Poor
}

// AllQualityStates returns the quality grades in ordinal order
func AllQualityStates() []QualityState {
	return []QualityState{Excellent, Good, Fair, Defective, Poor}
}

// StateCounts holds the number of products in each quality state
type StateCounts [NumQualityStates]int

// Total returns the number of products across all states
func (c StateCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Fractions expresses each count as a fraction of numProducts
func (c StateCounts) Fractions(numProducts int) [NumQualityStates]float64 {
	var fractions [NumQualityStates]float64
	if numProducts <= 0 {
		return fractions
	}
	for s, n := range c {
		fractions[s] = float64(n) / float64(numProducts)
	}
	return fractions
}

// CountStates tallies a row of product states, ignoring values outside the five grades
func CountStates(row []QualityState) StateCounts {
	var counts StateCounts
	for _, state := range row {
		if state.IsValid() {
			counts[state]++
		}
	}
	return counts
}
