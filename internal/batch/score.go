package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/db"
	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/normalize"
	"github.com/gyeh/drgscore/internal/parquetread"
)

const readBatchSize = 512

// ScoreResult holds metrics from the scoring phase.
type ScoreResult struct {
	Tally
	Duration time.Duration
}

// Score streams rows from the Parquet file, normalizes and assesses them in
// batches, and COPY-loads the assessments via a channel-backed source.
func Score(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, eng *engine.Engine) (*ScoreResult, error) {
	start := time.Now()

	reader, err := parquetread.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("score open: %w", err)
	}
	defer reader.Close()

	pctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.AssessmentRow, readBatchSize)
	errCh := make(chan error, 1)
	tally := NewTally()

	// Producer: read Parquet → normalize → assess → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.AdmissionRow, readBatchSize)
		features := make([]model.AdmissionFeatures, 0, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			features = features[:0]
			for i := 0; i < n; i++ {
				f := normalize.Admission(&buf[i])
				if f.AdmissionID == "" {
					f.AdmissionID = fmt.Sprintf("row_%d", rowNum+int64(i)+1)
				}
				features = append(features, f)
			}

			for _, br := range eng.PredictBatch(features) {
				rowNum++
				tally.RowsRead++
				tally.Add(&br.Assessment)

				select {
				case ch <- ToRow(pf.RunID, rowNum, &features[br.Index], &br.Assessment):
				case <-pctx.Done():
					errCh <- pctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into scoring.assessments
	copied, err := db.CopyAssessments(ctx, pool, ch)
	if err != nil {
		cancel()
		for range ch {
		}
		<-errCh
		return nil, fmt.Errorf("score copy: %w", err)
	}

	if prodErr := <-errCh; prodErr != nil {
		return nil, fmt.Errorf("score producer: %w", prodErr)
	}
	if copied != tally.RowsScored {
		return nil, fmt.Errorf("score copy: wrote %d rows, assessed %d", copied, tally.RowsScored)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", tally.RowsRead).
		Int64("rows_scored", copied).
		Int64("rows_degraded", tally.RowsDegraded).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(copied)/dur.Seconds()).
		Msg("scoring complete")

	return &ScoreResult{Tally: *tally, Duration: dur}, nil
}
