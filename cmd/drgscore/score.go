package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/drgscore/internal/batch"
	"github.com/gyeh/drgscore/internal/db"
	"github.com/gyeh/drgscore/internal/exitcode"
	"github.com/gyeh/drgscore/internal/logging"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a Parquet admissions export into the database",
	RunE:  runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-score even if the file SHA was already scored")
	_ = scoreCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, int32(cfg.Engine.Workers)+2)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	eng, stopMetrics := newEngine(log)
	defer stopMetrics()

	summary, err := batch.Run(ctx, pool, log, &cfg, eng)
	if err != nil {
		var pe *batch.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("scoring failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "score":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.ScoreError)
			}
		}
		log.Error().Err(err).Msg("scoring failed")
		os.Exit(exitcode.ScoreError)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scoring complete: run %s, %d rows scored (%d degraded), revenue impact %d won (%.1fs)\n",
		summary.RunID, summary.RowsScored, summary.RowsDegraded, summary.RevenueImpactWon, summary.DurationTotal.Seconds())
	return nil
}
