package events

import (
	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

const (
	SimulationStartedEvent   = "simulation.started"
	DayAdvancedEvent         = "simulation.day_advanced"
	SimulationCompletedEvent = "simulation.completed"
	SimulationAbortedEvent   = "simulation.aborted"
)

// AllSimulationEventTypes lists every event type a run can emit
func AllSimulationEventTypes() []string {
	return []string{
		SimulationStartedEvent,
		DayAdvancedEvent,
		SimulationCompletedEvent,
		SimulationAbortedEvent,
	}
}

type SimulationStarted struct {
	Params entities.SimulationParameters `json:"params"`
	Seed   uint32                        `json:"seed"`
}

type DayAdvanced struct {
	Result entities.DayResult `json:"result"`
}

type SimulationCompleted struct {
	Summary entities.FinalSummary `json:"summary"`
}

type SimulationAborted struct {
	Day    int    `json:"day"`
	Reason string `json:"reason"`
}

func NewSimulationStartedEvent(runID string, params entities.SimulationParameters, seed uint32) Event {
	return NewEvent(SimulationStartedEvent, runID, SimulationStarted{Params: params, Seed: seed})
}

func NewDayAdvancedEvent(runID string, result entities.DayResult) Event {
	return NewEvent(DayAdvancedEvent, runID, DayAdvanced{Result: result})
}

func NewSimulationCompletedEvent(runID string, summary entities.FinalSummary) Event {
	return NewEvent(SimulationCompletedEvent, runID, SimulationCompleted{Summary: summary})
}

func NewSimulationAbortedEvent(runID string, day int, reason string) Event {
	return NewEvent(SimulationAbortedEvent, runID, SimulationAborted{Day: day, Reason: reason})
}
