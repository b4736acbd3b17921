package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/drgscore/internal/config"
	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/metrics"
)

var (
	cfg              config.Config
	configPath       string
	upgradeThreshold float64
)

var rootCmd = &cobra.Command{
	Use:   "drgscore",
	Short: "K-DRG group and claim denial risk scoring",
	Long: "Predicts the K-DRG severity group and claim denial risk of hospital admissions. " +
		"Learned models are used when their artifacts load; rule-based scoring answers otherwise.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("upgrade-threshold") {
			cfg.Engine.UpgradeThreshold = &upgradeThreshold
		}
		if configPath == "" {
			return cfg.Engine.Validate()
		}
		return cfg.LoadFromFile(configPath)
	},
}

func init() {
	dsn := os.Getenv("SUPABASE_DB_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", dsn, "Postgres connection string (or set SUPABASE_DB_URL / DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&configPath, "config", "", "YAML file with engine settings")
	pf.StringVar(&cfg.Engine.ClassifierModel, "classifier-model", "", "Path to the group classifier artifact")
	pf.StringVar(&cfg.Engine.DenialModel, "denial-model", "", "Path to the denial predictor artifact")
	pf.Float64Var(&upgradeThreshold, "upgrade-threshold", 0, "A-group probability that flags an upgrade (default 0.6)")
	pf.Float64Var(&cfg.Engine.RevenueUnit, "revenue-unit", 0, "Won value of one CMI point (default 300000)")
	pf.IntVar(&cfg.Engine.Workers, "workers", 0, "Concurrent assessments in batch mode (default: number of CPUs)")
	pf.BoolVar(&cfg.Engine.LazyLoad, "lazy-load", false, "Load model artifacts on first use instead of at startup")
	pf.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
}

// newEngine builds the decision engine with Prometheus and log sinks. When --metrics-addr
// is set, /metrics and /healthz are served until the returned stop func is called.
func newEngine(log zerolog.Logger) (*engine.Engine, func()) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sink := metrics.Multi{metrics.NewPrometheus(reg), metrics.NewLog(log)}
	eng := engine.New(cfg.Engine, log, engine.WithSink(sink))
	cs, ss := eng.States()
	log.Info().
		Str("classifier", cs.String()).
		Str("denial_predictor", ss.String()).
		Msg("engine ready")

	if cfg.MetricsAddr == "" {
		return eng, func() {}
	}

	status := func() map[string]string {
		cs, ss := eng.States()
		return map[string]string{"classifier": cs.String(), "denial_predictor": ss.String()}
	}
	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metrics.NewRouter(reg, status),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics server failed")
		}
	}()
	log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")

	return eng, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
