package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
)

// Run ties an engine to an identity and keeps the per-day results already produced.
// All access goes through the run's mutex so several drivers can share a registry.
type Run struct {
	ID        uuid.UUID
	Seed      uint32
	CreatedAt time.Time

	mu      sync.Mutex
	engine  *MarkovEngine
	history []entities.DayResult
}

// NewRun wraps an engine under a fresh identifier
func NewRun(engine *MarkovEngine, seed uint32) *Run {
	return &Run{
		ID:        uuid.New(),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
		engine:    engine,
		history:   make([]entities.DayResult, 0, engine.Days()),
	}
}

// Step advances the underlying engine by one day and records the result
func (r *Run) Step() (entities.DayResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.engine.Step()
	if err != nil {
		return entities.DayResult{}, err
	}
	r.history = append(r.history, result)
	return result, nil
}

// RunSnapshot is a consistent read of a run at one point in time
type RunSnapshot struct {
	ID                uuid.UUID
	Seed              uint32
	CreatedAt         time.Time
	Params            entities.SimulationParameters
	Status            EngineStatus
	CurrentDay        int
	TotalCost         float64
	CostPerDayPerUnit float64
	Discounts         [entities.NumQualityStates]float64
	History           []entities.DayResult
	StateGrid         [][]entities.QualityState
	Summary           *entities.FinalSummary
}

// LastResult returns the most recent day, if any has been processed
func (s RunSnapshot) LastResult() (entities.DayResult, bool) {
	if len(s.History) == 0 {
		return entities.DayResult{}, false
	}
	return s.History[len(s.History)-1], true
}

// Snapshot copies the run's state; withGrid controls whether the full state grid is included
func (r *Run) Snapshot(withGrid bool) RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := RunSnapshot{
		ID:                r.ID,
		Seed:              r.Seed,
		CreatedAt:         r.CreatedAt,
		Params:            r.engine.Parameters(),
		Status:            r.engine.Status(),
		CurrentDay:        r.engine.CurrentDay(),
		TotalCost:         r.engine.TotalCost(),
		CostPerDayPerUnit: r.engine.CostPerDayPerUnit(),
		Discounts:         r.engine.Discounts(),
		History:           append([]entities.DayResult(nil), r.history...),
	}
	if withGrid {
		snapshot.StateGrid = r.engine.StateGrid()
	}
	if summary, err := r.engine.Summary(); err == nil {
		snapshot.Summary = &summary
	}
	return snapshot
}

// IsComplete reports whether the run has processed every day
func (r *Run) IsComplete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.IsComplete()
}
