package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/themizzi/saucerun/internal/database"
	"github.com/themizzi/saucerun/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// DefaultHistoryLimit is used when a non-positive limit is requested
const DefaultHistoryLimit = 20

// RunRepository handles database operations for workflow runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun stores a finished run
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	checks, err := json.Marshal(nonNilChecks(run.Checks))
	if err != nil {
		return fmt.Errorf("failed to encode checks: %w", err)
	}

	query := `
		INSERT INTO runs (id, target, username, status, failed_step, failure_kind,
		                  failure_message, item_name, checks, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var finishedAt sql.NullTime
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: run.FinishedAt, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.Target,
		run.Username,
		run.Status,
		run.FailedStep,
		run.FailureKind,
		run.FailureMessage,
		run.ItemName,
		checks,
		run.StartedAt,
		finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

const selectRun = `
	SELECT id, target, username, status, failed_step, failure_kind,
	       failure_message, item_name, checks, started_at, finished_at
	FROM runs
`

// GetRunByID retrieves a run by its id
func (r *RunRepository) GetRunByID(ctx context.Context, id string) (*models.Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRun+"WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, selectRun+"ORDER BY started_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var checks []byte
	var finishedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.Target,
		&run.Username,
		&run.Status,
		&run.FailedStep,
		&run.FailureKind,
		&run.FailureMessage,
		&run.ItemName,
		&checks,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(checks, &run.Checks); err != nil {
		return nil, fmt.Errorf("failed to decode checks: %w", err)
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	return run, nil
}

func nonNilChecks(checks []models.Check) []models.Check {
	if checks == nil {
		return []models.Check{}
	}
	return checks
}
