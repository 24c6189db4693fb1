package repository

import (
	"context"
	"sort"
	"time"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/patrickmn/go-cache"
)

var _ SimulationRepository = &SimulationMemory{}

// SimulationMemory keeps runs in process memory and expires them after ttl.
// It backs the service when no database is configured.
type SimulationMemory struct {
	runs *cache.Cache
}

func NewSimulationMemory(ttl, cleanupInterval time.Duration) *SimulationMemory {
	return &SimulationMemory{
		runs: cache.New(ttl, cleanupInterval),
	}
}

func (r *SimulationMemory) Save(_ context.Context, run *entity.SimulationRun) error {
	r.runs.SetDefault(run.ID, cloneRun(run))
	return nil
}

func (r *SimulationMemory) Get(_ context.Context, id string) (*entity.SimulationRun, error) {
	v, ok := r.runs.Get(id)
	if !ok {
		return nil, entity.ErrSimulationNotFound
	}
	return cloneRun(v.(*entity.SimulationRun)), nil
}

func (r *SimulationMemory) List(_ context.Context, limit int) ([]*entity.SimulationRun, error) {
	items := r.runs.Items()

	runs := make([]*entity.SimulationRun, 0, len(items))
	for _, item := range items {
		runs = append(runs, cloneRun(item.Object.(*entity.SimulationRun)))
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
