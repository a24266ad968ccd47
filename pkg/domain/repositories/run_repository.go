package repositories

import (
	"errors"

	"github.com/google/uuid"

	"github.com/vsinha/qualitysim/pkg/domain/services"
)

// ErrRunNotFound is returned when no run is registered under an identifier
var ErrRunNotFound = errors.New("simulation run not found")

// RunRepository provides access to the simulation runs hosted by this process
type RunRepository interface {
	Save(run *services.Run) error
	Get(id uuid.UUID) (*services.Run, error)
	Delete(id uuid.UUID) error
	List() ([]*services.Run, error)
}
