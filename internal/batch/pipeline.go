// Package batch scores a Parquet export of admissions and stores the assessments in
// Postgres: preflight, score (COPY), finalize, with cleanup on failure.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/config"
	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/model"
)

// Run statuses stored in scoring.runs.
const (
	StatusPending = "pending"
	StatusScoring = "scoring"
	StatusScored  = "scored"
	StatusFailed  = "failed"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full scoring pipeline: preflight → score → finalize.
// A failed run is marked failed and its partial assessments are removed.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, eng *engine.Engine) (*model.RunSummary, error) {
	totalStart := time.Now()

	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force, eng)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyScored {
		log.Info().
			Str("run_id", pf.RunID.String()).
			Str("sha256", pf.FileSHA256).
			Msg("file already scored, skipping (use --force to re-score)")
		return &model.RunSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			RunID:         pf.RunID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	log.Info().Str("run_id", pf.RunID.String()).Msg("starting scoring")
	if err := UpdateStatus(ctx, pool, pf.RunID, StatusScoring); err != nil {
		return nil, &PipelineError{Phase: "score", Err: err}
	}

	sr, err := Score(ctx, pool, log, pf, eng)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "score", Err: err}
	}

	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf, sr)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.RunSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		RunID:            pf.RunID.String(),
		RowsRead:         sr.RowsRead,
		RowsScored:       sr.RowsScored,
		RowsDegraded:     sr.RowsDegraded,
		RowsByGroup:      sr.RowsByGroup,
		RowsByRiskLevel:  sr.RowsByRiskLevel,
		RevenueImpactWon: sr.RevenueImpactWon,
		DurationScore:    sr.Duration,
		DurationFinalize: finalizeDur,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_scored", summary.RowsScored).
		Int64("rows_degraded", summary.RowsDegraded).
		Int64("revenue_impact_won", summary.RevenueImpactWon).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("scoring pipeline complete")

	return summary, nil
}

// fail marks the run failed and deletes its partial output. It runs even when ctx
// has been cancelled.
func fail(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) {
	ctx = context.WithoutCancel(ctx)
	if err := UpdateStatus(ctx, pool, pf.RunID, StatusFailed); err != nil {
		log.Warn().Err(err).Str("run_id", pf.RunID.String()).Msg("could not mark run failed")
	}
	if err := Cleanup(ctx, pool, log, pf.RunID); err != nil {
		log.Warn().Err(err).Str("run_id", pf.RunID.String()).Msg("partial assessment cleanup failed (non-fatal)")
	}
}
