package memory

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/vsinha/qualitysim/pkg/domain/entities"
	"github.com/vsinha/qualitysim/pkg/domain/repositories"
	"github.com/vsinha/qualitysim/pkg/domain/services"
)

func newTestRun(t *testing.T) *services.Run {
	t.Helper()
	params := entities.SimulationParameters{Days: 2, NumProducts: 3, TotalPrice: 60}
	engine, err := services.NewDefaultMarkovEngine(params, services.DefaultSeed)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return services.NewRun(engine, services.DefaultSeed)
}

func TestRunRepository_SaveAndGet(t *testing.T) {
	repo := NewRunRepository()
	run := newTestRun(t)

	if err := repo.Save(run); err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatalf("Failed to get run: %v", err)
	}
	if got != run {
		t.Error("Expected the same run instance back")
	}

	if err := repo.Save(run); err == nil {
		t.Error("Expected error saving a run twice")
	}
	if err := repo.Save(nil); err == nil {
		t.Error("Expected error saving a nil run")
	}
}

func TestRunRepository_NotFound(t *testing.T) {
	repo := NewRunRepository()
	missing := uuid.New()

	if _, err := repo.Get(missing); !errors.Is(err, repositories.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound from Get, got %v", err)
	}
	if err := repo.Delete(missing); !errors.Is(err, repositories.ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound from Delete, got %v", err)
	}
}

func TestRunRepository_DeleteAndList(t *testing.T) {
	repo := NewRunRepository()
	first := newTestRun(t)
	second := newTestRun(t)

	for _, run := range []*services.Run{first, second} {
		if err := repo.Save(run); err != nil {
			t.Fatalf("Failed to save run: %v", err)
		}
	}

	runs, err := repo.List()
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("Failed to delete run: %v", err)
	}

	runs, _ = repo.List()
	if len(runs) != 1 || runs[0].ID != second.ID {
		t.Errorf("Expected only the second run to remain, got %d runs", len(runs))
	}
}
