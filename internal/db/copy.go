package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/gyeh/drgscore/internal/model"
)

// AssessmentSource implements pgx.CopyFromSource over a channel of scored rows.
// The channel bounds how far scoring can run ahead of the COPY writer.
type AssessmentSource struct {
	ctx     context.Context
	ch      <-chan *model.AssessmentRow
	current *model.AssessmentRow
	copied  int64
	err     error
}

// NewAssessmentSource returns a source that ends when ch is closed or ctx is done.
func NewAssessmentSource(ctx context.Context, ch <-chan *model.AssessmentRow) *AssessmentSource {
	return &AssessmentSource{ctx: ctx, ch: ch}
}

// Next implements pgx.CopyFromSource.
func (s *AssessmentSource) Next() bool {
	select {
	case row, ok := <-s.ch:
		if !ok {
			return false
		}
		s.current = row
		s.copied++
		return true
	case <-s.ctx.Done():
		s.err = s.ctx.Err()
		return false
	}
}

// Values implements pgx.CopyFromSource.
func (s *AssessmentSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err reports cancellation; a closed channel is not an error.
func (s *AssessmentSource) Err() error {
	return s.err
}

// Copied is the number of rows handed to COPY so far.
func (s *AssessmentSource) Copied() int64 {
	return s.copied
}

var _ pgx.CopyFromSource = (*AssessmentSource)(nil)

// Copier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Copier interface {
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error)
}

// CopyAssessments streams rows from ch into scoring.assessments.
func CopyAssessments(ctx context.Context, conn Copier, ch <-chan *model.AssessmentRow) (int64, error) {
	return conn.CopyFrom(ctx,
		pgx.Identifier{"scoring", "assessments"},
		model.AssessmentColumns(),
		NewAssessmentSource(ctx, ch),
	)
}
