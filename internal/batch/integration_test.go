package batch_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/drgscore/internal/batch"
	"github.com/gyeh/drgscore/internal/config"
	"github.com/gyeh/drgscore/internal/db"
	"github.com/gyeh/drgscore/internal/engine"
	"github.com/gyeh/drgscore/internal/model"
	"github.com/gyeh/drgscore/internal/parquetread"
)

const (
	testPort     = 15433
	testDB       = "drgtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN     string
	fixturePath string
	pg          *embeddedpostgres.EmbeddedPostgres
)

func strPtr(s string) *string { return &s }

// fixtureRows covers each rule group, a missing diagnosis, and a stay derived from dates.
func fixtureRows() []model.AdmissionRow {
	return []model.AdmissionRow{
		{AdmissionID: "ADM001", PrincipalDiagnosis: strPtr("A11"), LengthOfStay: strPtr("5")},
		{AdmissionID: "ADM002", LengthOfStay: strPtr("400")},
		{AdmissionID: "ADM003", PrincipalDiagnosis: strPtr("B50"), LengthOfStay: strPtr("5")},
		{AdmissionID: "ADM004", PrincipalDiagnosis: strPtr("c21.9"), SecondaryDiagnoses: strPtr("E11,I10"),
			AdmitDate: strPtr("2024-03-01"), DischargeDate: strPtr("2024-03-04")},
		{AdmissionID: "", PrincipalDiagnosis: strPtr("I50"), LengthOfStay: strPtr("2일")},
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	dir, err := os.MkdirTemp("", "drgscore-batch")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}
	fixturePath = filepath.Join(dir, "admissions.parquet")
	if err := parquetread.Write(fixturePath, fixtureRows()); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			RuntimePath(filepath.Join(dir, "pg")).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.RemoveAll(dir)

	os.Exit(code)
}

// setupDB drops the scoring schema, applies migrations and returns a pool.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDSN == "" {
		t.Skip("integration test skipped in -short mode")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN, 4)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS scoring CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func rulesEngine() *engine.Engine {
	return engine.New(config.Engine{Workers: 2}, zerolog.Nop())
}

func TestEndToEnd_RulesOnly(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	cfg := &config.Config{FilePath: fixturePath}

	summary, err := batch.Run(ctx, pool, zerolog.Nop(), cfg, rulesEngine())
	if err != nil {
		t.Fatalf("batch.Run: %v", err)
	}

	t.Run("summary_metrics", func(t *testing.T) {
		n := int64(len(fixtureRows()))
		if summary.RowsRead != n || summary.RowsScored != n {
			t.Errorf("rows: read %d scored %d, want %d", summary.RowsRead, summary.RowsScored, n)
		}
		if summary.RowsDegraded != n {
			t.Errorf("degraded: got %d, want %d (no models configured)", summary.RowsDegraded, n)
		}
		want := map[model.Group]int64{model.GroupA: 1, model.GroupB: 3, model.GroupC: 1}
		for g, c := range want {
			if summary.RowsByGroup[g] != c {
				t.Errorf("group %s: got %d, want %d", g, summary.RowsByGroup[g], c)
			}
		}
	})

	t.Run("run_row", func(t *testing.T) {
		var status, classifierState string
		var scored int64
		err := pool.QueryRow(ctx,
			"SELECT status, classifier_state, rows_scored FROM scoring.runs WHERE run_id = $1",
			summary.RunID).Scan(&status, &classifierState, &scored)
		if err != nil {
			t.Fatalf("query run: %v", err)
		}
		if status != batch.StatusScored || classifierState != "fallback" || scored != summary.RowsScored {
			t.Errorf("run: status %s classifier %s scored %d", status, classifierState, scored)
		}
	})

	t.Run("assessment_values", func(t *testing.T) {
		type row struct {
			group    string
			prob     float64
			level    string
			factors  []string
			revenue  int64
			dx       *string
			degraded bool
		}
		got := make(map[string]row)
		rows, err := pool.Query(ctx,
			`SELECT admission_id, predicted_group, denial_probability, risk_level,
			        risk_factors, revenue_impact_won, principal_diagnosis, degraded
			 FROM scoring.assessments WHERE run_id = $1 ORDER BY source_row_number`, summary.RunID)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			var r row
			if err := rows.Scan(&id, &r.group, &r.prob, &r.level, &r.factors, &r.revenue, &r.dx, &r.degraded); err != nil {
				t.Fatalf("scan: %v", err)
			}
			got[id] = r
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("rows: %v", err)
		}

		if r := got["ADM001"]; r.group != "A" || r.revenue != 0 {
			t.Errorf("ADM001: %+v", r)
		}
		if r := got["ADM002"]; r.prob != 0.5 || r.level != "MEDIUM" || r.dx != nil || len(r.factors) != 2 {
			t.Errorf("ADM002: %+v", r)
		}
		if r := got["ADM004"]; r.group != "C" || r.dx == nil || *r.dx != "C219" {
			t.Errorf("ADM004: %+v", r)
		}
		if _, ok := got["row_5"]; !ok {
			t.Errorf("row without id should be stored as row_5, got ids %v", keys(got))
		}
		for id, r := range got {
			if !r.degraded {
				t.Errorf("%s: expected degraded", id)
			}
		}
	})
}

func TestRun_SkipsAlreadyScored(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	cfg := &config.Config{FilePath: fixturePath}
	eng := rulesEngine()

	first, err := batch.Run(ctx, pool, zerolog.Nop(), cfg, eng)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := batch.Run(ctx, pool, zerolog.Nop(), cfg, eng)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.RunID != first.RunID || second.RowsScored != 0 {
		t.Errorf("second run should be skipped: got run %s with %d rows", second.RunID, second.RowsScored)
	}

	var runs int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM scoring.runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Errorf("runs: got %d, want 1", runs)
	}
}

func TestRun_ForceSupersedes(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	eng := rulesEngine()

	first, err := batch.Run(ctx, pool, zerolog.Nop(), &config.Config{FilePath: fixturePath}, eng)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := batch.Run(ctx, pool, zerolog.Nop(), &config.Config{FilePath: fixturePath, Force: true}, eng)
	if err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if second.RunID == first.RunID {
		t.Fatal("forced run reused the earlier run id")
	}

	var superseded bool
	err = pool.QueryRow(ctx,
		"SELECT superseded_at IS NOT NULL FROM scoring.runs WHERE run_id = $1", first.RunID).Scan(&superseded)
	if err != nil {
		t.Fatal(err)
	}
	if !superseded {
		t.Error("first run should be superseded")
	}

	var live int
	err = pool.QueryRow(ctx,
		"SELECT count(*) FROM scoring.runs WHERE status = 'scored' AND superseded_at IS NULL").Scan(&live)
	if err != nil {
		t.Fatal(err)
	}
	if live != 1 {
		t.Errorf("live runs: got %d, want 1", live)
	}
}

func TestRun_CancelledMarksFailed(t *testing.T) {
	pool := setupDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.Run(ctx, pool, zerolog.Nop(), &config.Config{FilePath: fixturePath}, rulesEngine())
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	var pe *batch.PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PipelineError, got %T", err)
	}

	var assessments int
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM scoring.assessments").Scan(&assessments); err != nil {
		t.Fatal(err)
	}
	if assessments != 0 {
		t.Errorf("assessments after failed run: got %d, want 0", assessments)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	if err := db.ApplyMigrations(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	var n int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM scoring.schema_migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("recorded migrations: got %d, want 1", n)
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
