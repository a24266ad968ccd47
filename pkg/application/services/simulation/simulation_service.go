package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vsinha/qualitysim/pkg/application/dto"
	"github.com/vsinha/qualitysim/pkg/domain/entities"
	"github.com/vsinha/qualitysim/pkg/domain/repositories"
	domain "github.com/vsinha/qualitysim/pkg/domain/services"
	"github.com/vsinha/qualitysim/pkg/infrastructure/events"
)

// Service drives simulation runs: it creates engines, advances them on request or on a
// schedule, records what happened and assembles reports.
type Service struct {
	runs     repositories.RunRepository
	events   events.EventStore
	logger   zerolog.Logger
	currency string
}

// NewService creates a simulation service
func NewService(
	runs repositories.RunRepository,
	eventStore events.EventStore,
	logger zerolog.Logger,
	currency string,
) *Service {
	return &Service{
		runs:     runs,
		events:   eventStore,
		logger:   logger,
		currency: currency,
	}
}

// Currency returns the currency label used in reports
func (s *Service) Currency() string {
	return s.currency
}

// Start validates the parameters, builds a default engine and registers the run
func (s *Service) Start(params entities.SimulationParameters, seed uint32) (*domain.Run, error) {
	engine, err := domain.NewDefaultMarkovEngine(params, seed)
	if err != nil {
		return nil, err
	}

	run := domain.NewRun(engine, seed)
	if err := s.runs.Save(run); err != nil {
		return nil, fmt.Errorf("failed to register run: %w", err)
	}

	if err := s.events.AppendEvent(run.ID.String(), events.NewSimulationStartedEvent(run.ID.String(), params, seed)); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	s.logger.Info().
		Str("run", run.ID.String()).
		Int("days", params.Days).
		Int("products", params.NumProducts).
		Float64("price", params.TotalPrice).
		Uint32("seed", seed).
		Msg("simulation started")

	return run, nil
}

// Get returns a registered run
func (s *Service) Get(id uuid.UUID) (*domain.Run, error) {
	return s.runs.Get(id)
}

// List returns a snapshot of every registered run, without state grids
func (s *Service) List() ([]domain.RunSnapshot, error) {
	runs, err := s.runs.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	snapshots := make([]domain.RunSnapshot, 0, len(runs))
	for _, run := range runs {
		snapshots = append(snapshots, run.Snapshot(false))
	}
	return snapshots, nil
}

// Step advances a run by exactly one day
func (s *Service) Step(id uuid.UUID) (entities.DayResult, error) {
	run, err := s.runs.Get(id)
	if err != nil {
		return entities.DayResult{}, err
	}
	return s.step(run)
}

func (s *Service) step(run *domain.Run) (entities.DayResult, error) {
	result, err := run.Step()
	if err != nil {
		return entities.DayResult{}, err
	}

	streamID := run.ID.String()
	if err := s.events.AppendEvent(streamID, events.NewDayAdvancedEvent(streamID, result)); err != nil {
		return result, fmt.Errorf("failed to record day %d: %w", result.Day, err)
	}

	s.logger.Debug().
		Str("run", streamID).
		Int("day", result.Day).
		Ints("counts", result.Counts[:]).
		Float64("total_cost", result.TotalCost).
		Msg("day advanced")

	// Only the step that processed the last day reports completion
	snapshot := run.Snapshot(false)
	if result.Day == snapshot.Params.Days-1 && snapshot.Summary != nil {
		if err := s.events.AppendEvent(streamID, events.NewSimulationCompletedEvent(streamID, *snapshot.Summary)); err != nil {
			return result, fmt.Errorf("failed to record completion: %w", err)
		}
		s.logger.Info().
			Str("run", streamID).
			Float64("total_cost", result.TotalCost).
			Msg("simulation completed")
	}

	return result, nil
}

// Run steps a simulation until it completes. With a positive interval each day waits for
// the next tick. Cancelling ctx stops between days and leaves the run resumable.
func (s *Service) Run(ctx context.Context, id uuid.UUID, interval time.Duration, onStep func(entities.DayResult)) error {
	run, err := s.runs.Get(id)
	if err != nil {
		return err
	}

	var ticks <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	first := true
	for !run.IsComplete() {
		if ticks != nil && !first {
			select {
			case <-ctx.Done():
				return fmt.Errorf("run %s paused on day %d: %w", id, run.Snapshot(false).CurrentDay, ctx.Err())
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("run %s paused on day %d: %w", id, run.Snapshot(false).CurrentDay, err)
		}
		first = false

		result, err := s.step(run)
		if err != nil {
			if errors.Is(err, domain.ErrSimulationComplete) {
				return nil
			}
			return err
		}
		if onStep != nil {
			onStep(result)
		}
	}

	return nil
}

// Report assembles the report of a run; withGrid includes the full state grid
func (s *Service) Report(id uuid.UUID, withGrid bool) (*dto.SimulationReport, error) {
	run, err := s.runs.Get(id)
	if err != nil {
		return nil, err
	}
	return BuildReport(run.Snapshot(withGrid), s.currency), nil
}

// Summary returns the final summary, failing while the run is still in progress
func (s *Service) Summary(id uuid.UUID) (*dto.SimulationReport, error) {
	run, err := s.runs.Get(id)
	if err != nil {
		return nil, err
	}

	snapshot := run.Snapshot(true)
	if snapshot.Summary == nil {
		return nil, fmt.Errorf("run %s on day %d of %d: %w",
			id, snapshot.CurrentDay, snapshot.Params.Days, domain.ErrSimulationRunning)
	}
	return BuildReport(snapshot, s.currency), nil
}

// Abort discards a run; its event stream is kept
func (s *Service) Abort(id uuid.UUID, reason string) error {
	run, err := s.runs.Get(id)
	if err != nil {
		return err
	}

	day := run.Snapshot(false).CurrentDay
	if err := s.runs.Delete(id); err != nil {
		return err
	}

	streamID := id.String()
	if err := s.events.AppendEvent(streamID, events.NewSimulationAbortedEvent(streamID, day, reason)); err != nil {
		return fmt.Errorf("failed to record abort: %w", err)
	}

	s.logger.Info().Str("run", streamID).Int("day", day).Str("reason", reason).Msg("simulation aborted")
	return nil
}

// AllEvents returns events of every run in append order, starting at a zero-based position
func (s *Service) AllEvents(fromPosition int) ([]events.Event, error) {
	return s.events.ReadAllEvents(fromPosition)
}

// Events returns the recorded event stream of a run
func (s *Service) Events(id uuid.UUID) ([]events.Event, error) {
	return s.events.ReadEvents(id.String(), 1)
}
