package events

import (
	"github.com/rs/zerolog"
)

// LogHandler writes simulation events to a structured logger
type LogHandler struct {
	logger zerolog.Logger
}

// NewLogHandler creates a handler that logs every simulation event type
func NewLogHandler(logger zerolog.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

func (h *LogHandler) CanHandle(eventType string) bool {
	switch eventType {
	case SimulationStartedEvent, DayAdvancedEvent, SimulationCompletedEvent, SimulationAbortedEvent:
		return true
	default:
		return false
	}
}

func (h *LogHandler) Handle(event Event) error {
	logEvent := h.logger.Info()
	if event.Type() == DayAdvancedEvent {
		logEvent = h.logger.Debug()
	}
	logEvent = logEvent.Str("run", event.StreamID()).Int("version", event.Version())

	switch data := event.Data().(type) {
	case SimulationStarted:
		logEvent = logEvent.
			Int("days", data.Params.Days).
			Int("products", data.Params.NumProducts).
			Float64("price", data.Params.TotalPrice).
			Uint32("seed", data.Seed)
	case DayAdvanced:
		logEvent = logEvent.
			Int("day", data.Result.Day).
			Ints("counts", data.Result.Counts[:]).
			Float64("total_cost", data.Result.TotalCost)
	case SimulationCompleted:
		logEvent = logEvent.
			Ints("counts", data.Summary.Counts[:]).
			Float64("total_cost", data.Summary.TotalCost)
	case SimulationAborted:
		logEvent = logEvent.Int("day", data.Day).Str("reason", data.Reason)
	}

	logEvent.Msg(event.Type())
	return nil
}
