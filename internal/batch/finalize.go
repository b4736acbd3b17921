package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/drgscore/internal/sql"
)

// Finalize records run totals, supersedes earlier scored runs of the same file,
// and runs ANALYZE on the assessments table.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, sr *ScoreResult) (time.Duration, error) {
	start := time.Now()

	var superseded int64
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, embedsql.FinalizeRun,
			pf.RunID, sr.RowsRead, sr.RowsScored, sr.RowsDegraded, sr.RevenueImpactWon,
		); err != nil {
			return fmt.Errorf("finalize run: %w", err)
		}
		tag, err := tx.Exec(ctx, embedsql.SupersedeRuns, pf.FileSHA256, pf.RunID)
		if err != nil {
			return fmt.Errorf("supersede runs: %w", err)
		}
		superseded = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Info().
		Str("run_id", pf.RunID.String()).
		Int64("superseded", superseded).
		Msg("run finalized")

	if _, err := pool.Exec(ctx, embedsql.AnalyzeAssessments); err != nil {
		return 0, fmt.Errorf("analyze assessments: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}
