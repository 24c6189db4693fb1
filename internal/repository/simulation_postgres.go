package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/cpf-explainer/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ SimulationRepository = &SimulationPostgres{}

const (
	insertRunQuery = `
INSERT INTO simulation_runs (id, created_at, retirement_age, projected_savings, label, payload)
VALUES ($1, $2, $3, $4, $5, $6)`

	getRunQuery = `SELECT payload FROM simulation_runs WHERE id = $1`

	listRunsQuery = `SELECT payload FROM simulation_runs ORDER BY created_at DESC LIMIT $1`
)

// SimulationPostgres keeps each run as a JSONB payload with a few indexed columns.
type SimulationPostgres struct {
	db *pgxpool.Pool
}

func NewSimulationPostgres(db *pgxpool.Pool) *SimulationPostgres {
	return &SimulationPostgres{db: db}
}

func (r *SimulationPostgres) Save(ctx context.Context, run *entity.SimulationRun) error {
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("parse simulation ID: %w", err)
	}

	payload, err := encodeRun(run)
	if err != nil {
		return err
	}

	base := run.Base()
	_, err = r.db.Exec(ctx, insertRunQuery,
		id,
		run.CreatedAt,
		base.RetirementAge,
		base.ProjectedSavings,
		string(run.Classification.Label),
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert simulation run: %w", err)
	}

	return nil
}

func (r *SimulationPostgres) Get(ctx context.Context, id string) (*entity.SimulationRun, error) {
	runID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrSimulationNotFound
	}

	var payload []byte
	if err := r.db.QueryRow(ctx, getRunQuery, runID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSimulationNotFound
		}
		return nil, fmt.Errorf("get simulation run: %w", err)
	}

	return decodeRun(payload)
}

func (r *SimulationPostgres) List(ctx context.Context, limit int) ([]*entity.SimulationRun, error) {
	rows, err := r.db.Query(ctx, listRunsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list simulation runs: %w", err)
	}

	payloads, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("scan simulation runs: %w", err)
	}

	runs := make([]*entity.SimulationRun, 0, len(payloads))
	for _, p := range payloads {
		run, err := decodeRun(p)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, nil
}
