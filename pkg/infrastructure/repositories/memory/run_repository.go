package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/qualitysim/pkg/domain/repositories"
	"github.com/vsinha/qualitysim/pkg/domain/services"
)

// RunRepository provides in-memory storage for simulation runs.
// Runs live only as long as the process.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*services.Run
}

// NewRunRepository creates a new in-memory run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		runs: make(map[uuid.UUID]*services.Run),
	}
}

// Verify interface compliance
var _ repositories.RunRepository = (*RunRepository)(nil)

// Save registers a run under its identifier
func (r *RunRepository) Save(run *services.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return fmt.Errorf("run %s already registered", run.ID)
	}
	r.runs[run.ID] = run
	return nil
}

// Get returns the run registered under id
func (r *RunRepository) Get(id uuid.UUID) (*services.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrRunNotFound, id)
	}
	return run, nil
}

// Delete discards the run registered under id
func (r *RunRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[id]; !exists {
		return fmt.Errorf("%w: %s", repositories.ErrRunNotFound, id)
	}
	delete(r.runs, id)
	return nil
}

// List returns every registered run, oldest first
func (r *RunRepository) List() ([]*services.Run, error) {
	r.mu.RLock()
	runs := make([]*services.Run, 0, len(r.runs))
	for _, run := range r.runs {
		runs = append(runs, run)
	}
	r.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID.String() < runs[j].ID.String()
		}
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}
