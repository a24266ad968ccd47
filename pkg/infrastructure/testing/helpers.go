package testing

import (
	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

// ScriptedStream replays a fixed list of draws, cycling when exhausted
type ScriptedStream struct {
	values []float64
	pos    int
	Draws  int
}

// NewScriptedStream creates a stream that yields values in order
func NewScriptedStream(values ...float64) *ScriptedStream {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &ScriptedStream{values: values}
}

// Next returns the next scripted value
func (s *ScriptedStream) Next() float64 {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	s.Draws++
	return v
}

// GoldenScenario is the 3-day, 10-product reference run with seed 42
type GoldenScenario struct {
	Params            entities.SimulationParameters
	Seed              uint32
	DayCounts         []entities.StateCounts
	Day1States        []entities.QualityState
	TotalCosts        []float64
	FinalDiscounts    [entities.NumQualityStates]float64
	CostPerDayPerUnit float64
}

// BuildGoldenScenario returns the reference run computed independently from the engine
func BuildGoldenScenario() GoldenScenario {
	return GoldenScenario{
		Params: entities.SimulationParameters{
			Days:        3,
			NumProducts: 10,
			TotalPrice:  1000.0,
		},
		Seed: 42,
		DayCounts: []entities.StateCounts{
			{10, 0, 0, 0, 0},
			{8, 1, 0, 0, 1},
			{4, 3, 0, 2, 1},
		},
		Day1States: []entities.QualityState{
			entities.Excellent, entities.Excellent, entities.Excellent, entities.Excellent,
			entities.Excellent, entities.Excellent, entities.Excellent, entities.Excellent,
			entities.Good, entities.Poor,
		},
		TotalCosts:        []float64{333.33333333333326, 641.6666666666665, 913.3333333333331},
		FinalDiscounts:    [entities.NumQualityStates]float64{0, 6.666666666666671, 0, 33.33333333333333, 46.66666666666666},
		CostPerDayPerUnit: 1000.0 / 3 / 10,
	}
}

// BuildSingleDayScenario returns the one-day run where only the day-0 accounting pass happens
func BuildSingleDayScenario() entities.SimulationParameters {
	return entities.SimulationParameters{
		Days:        1,
		NumProducts: 5,
		TotalPrice:  500.0,
	}
}
