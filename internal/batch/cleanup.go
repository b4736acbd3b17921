package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/drgscore/internal/sql"
)

// UpdateStatus updates the run status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateRunStatus, runID, status)
	return err
}

// Cleanup deletes the assessments written by the given run.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteRunAssessments, runID)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID.String()).
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("assessment cleanup complete")

	return nil
}
