package batch

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/normalize"
	"github.com/gyeh/drgscore/internal/parquetread"
)

// PlanResult is a dry-run preview of a scoring run.
type PlanResult struct {
	FilePath   string
	FileSHA256 string
	NumRows    int64
	Sample     []engine.BatchResult
	Tally
	Duration time.Duration
}

// Plan validates the file and assesses its first sampleSize rows without touching
// the database. sampleSize <= 0 samples the whole file.
func Plan(log zerolog.Logger, filePath string, sampleSize int, eng *engine.Engine) (*PlanResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("plan hash: %w", err)
	}

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("plan open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("plan validate: %w", err)
	}

	numRows := reader.NumRows()
	want := int64(sampleSize)
	if sampleSize <= 0 || want > numRows {
		want = numRows
	}

	rows := make([]model.AdmissionRow, want)
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plan read: %w", err)
		}
	}
	rows = rows[:read]

	features := make([]model.AdmissionFeatures, len(rows))
	for i := range rows {
		features[i] = normalize.Admission(&rows[i])
	}
	sample := eng.PredictBatch(features)

	tally := NewTally()
	tally.RowsRead = int64(len(rows))
	for i := range sample {
		tally.Add(&sample[i].Assessment)
	}

	log.Info().
		Str("file", filePath).
		Int64("rows", numRows).
		Int("sampled", len(sample)).
		Int64("degraded", tally.RowsDegraded).
		Msg("plan complete")

	return &PlanResult{
		FilePath:   filePath,
		FileSHA256: sha,
		NumRows:    numRows,
		Sample:     sample,
		Tally:      *tally,
		Duration:   time.Since(start),
	}, nil
}
