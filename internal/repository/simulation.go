// Package repository stores simulation runs in Postgres or in process memory.
package repository

import (
	"context"

	"github.com/futig/cpf-explainer/internal/entity"
)

// SimulationRepository persists simulation runs.
// Get of an unknown id returns entity.ErrSimulationNotFound.
type SimulationRepository interface {
	Save(ctx context.Context, run *entity.SimulationRun) error
	Get(ctx context.Context, id string) (*entity.SimulationRun, error)
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]*entity.SimulationRun, error)
}
