// Package sql embeds the scoring schema migrations and the statements used by the
// batch pipeline.
package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_run.sql
var RegisterRun string

//go:embed queries/lookup_scored_run.sql
var LookupScoredRun string

//go:embed queries/update_run_status.sql
var UpdateRunStatus string

//go:embed queries/finalize_run.sql
var FinalizeRun string

//go:embed queries/supersede_runs.sql
var SupersedeRuns string

//go:embed queries/delete_run_assessments.sql
var DeleteRunAssessments string

//go:embed queries/analyze_assessments.sql
var AnalyzeAssessments string
