package applications

import (
	"context"

	"github.com/unity-hands/server/internal/domain/events"
)

type Repository interface {
	// Insert persists the application. Returns ErrAlreadyApplied when the
	// (job_id, applicant_email) pair already exists; the unique index makes
	// this safe under concurrent requests.
	Insert(ctx context.Context, application Application) error
	// ListForApplicant resolves each of the applicant's applications to its
	// parent event, ordered by when the applications were made.
	ListForApplicant(ctx context.Context, applicantEmail string) ([]events.Event, error)
	// ListForEvent returns every application referencing the event.
	ListForEvent(ctx context.Context, jobID string) ([]Application, error)
	// Withdraw removes the application matching both the event and the
	// acting applicant. Returns the number of rows removed.
	Withdraw(ctx context.Context, jobID, applicantEmail string) (int64, error)
	// DeleteByID removes one application by its own identity.
	DeleteByID(ctx context.Context, id string) (int64, error)
}
