package postgres

import (
	"context"
	"fmt"

	"github.com/unity-hands/server/internal/domain/applications"
	"github.com/unity-hands/server/internal/domain/events"
)

var _ applications.Repository = (*ApplicationRepository)(nil)

func (r *ApplicationRepository) Insert(ctx context.Context, application applications.Application) error {
	attrs, err := marshalAttrs(application.Attrs)
	if err != nil {
		return err
	}

	// The unique index on (job_id, applicant_email) decides duplicates; two
	// concurrent applications cannot both insert.
	tag, err := r.queryer().Exec(ctx, `
INSERT INTO application (id, job_id, applicant_email, applied_at, attrs)
VALUES ($1, $2, $3, $4, $5)
    ON CONFLICT (job_id, applicant_email) DO NOTHING
`, application.ID, application.JobID, application.ApplicantEmail, application.AppliedAt, attrs)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return applications.ErrAlreadyApplied
	}
	return nil
}

// ListForApplicant joins the applicant's applications back to their parent
// events, preserving application order.
func (r *ApplicationRepository) ListForApplicant(ctx context.Context, applicantEmail string) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT e.id, e.hr_email, e.title, e.event_date, e.attrs, e.created_at, e.updated_at
  FROM application a
  JOIN events e ON e.id = a.job_id
 WHERE a.applicant_email = $1
 ORDER BY a.applied_at ASC, a.id ASC
`, applicantEmail)
	if err != nil {
		return nil, fmt.Errorf("list applied events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan applied event: %w", err)
		}
		items = append(items, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied events: %w", err)
	}
	return items, nil
}

func (r *ApplicationRepository) ListForEvent(ctx context.Context, jobID string) ([]applications.Application, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, job_id, applicant_email, applied_at, attrs
  FROM application
 WHERE job_id = $1
 ORDER BY applied_at ASC, id ASC
`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	items := make([]applications.Application, 0)
	for rows.Next() {
		var (
			application applications.Application
			attrs       []byte
		)
		if err := rows.Scan(&application.ID, &application.JobID, &application.ApplicantEmail, &application.AppliedAt, &attrs); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if application.Attrs, err = unmarshalAttrs(attrs); err != nil {
			return nil, err
		}
		items = append(items, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return items, nil
}

func (r *ApplicationRepository) Withdraw(ctx context.Context, jobID, applicantEmail string) (int64, error) {
	tag, err := r.queryer().Exec(ctx, `
DELETE FROM application
 WHERE job_id = $1
   AND applicant_email = $2
`, jobID, applicantEmail)
	if err != nil {
		return 0, fmt.Errorf("withdraw application: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ApplicationRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM application WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete application: %w", err)
	}
	return tag.RowsAffected(), nil
}
