package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/normalize"
	"github.com/gyeh/drgscore/internal/parquetread"
	embedsql "github.com/gyeh/drgscore/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	FileSize   int64
	// RunID identifies this scoring run. When AlreadyScored is set it is the id of
	// the earlier run instead.
	RunID   uuid.UUID
	NumRows int64
	// AlreadyScored is true when a live scored run exists for the same file hash
	// and force mode is off.
	AlreadyScored bool
}

// Preflight hashes and validates the file, checks for an earlier scored run, and
// registers a new run recording which sub-models are live.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool, eng *engine.Engine) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}
	numRows := reader.NumRows()

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", numRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	pf := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		NumRows:    numRows,
	}

	if !force {
		var prev uuid.UUID
		err := pool.QueryRow(ctx, embedsql.LookupScoredRun, sha).Scan(&prev)
		switch {
		case err == nil:
			pf.RunID = prev
			pf.AlreadyScored = true
			return pf, nil
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("preflight lookup scored run: %w", err)
		}
	}

	pf.RunID = uuid.New()
	classifier, scorer := eng.States()
	if _, err := pool.Exec(ctx, embedsql.RegisterRun,
		pf.RunID, filepath.Base(filePath), sha, stat.Size(),
		classifier.String(), scorer.String(),
	); err != nil {
		return nil, fmt.Errorf("preflight register run: %w", err)
	}

	return pf, nil
}
