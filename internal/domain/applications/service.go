package applications

import (
	"context"
	"time"

	"github.com/unity-hands/server/internal/domain/events"
	"github.com/unity-hands/server/internal/domain/ids"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records an application unless the applicant already holds one for
// the event. Uniqueness is decided by the storage layer, not by a
// check-then-insert, so two concurrent applications cannot both succeed.
func (s *Service) Create(ctx context.Context, input ApplicationInput) (*Application, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	jobID, err := normalizeJobID(input.JobID)
	if err != nil {
		return nil, err
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}

	application := Application{
		ID:             id,
		JobID:          jobID,
		ApplicantEmail: input.ApplicantEmail,
		AppliedAt:      time.Now().UTC(),
		Attrs:          input.Attrs,
	}
	if err := s.repo.Insert(ctx, application); err != nil {
		return nil, err
	}
	return &application, nil
}

// ListForApplicant returns the events the applicant has applied to, in
// application order.
func (s *Service) ListForApplicant(ctx context.Context, applicantEmail string) ([]events.Event, error) {
	return s.repo.ListForApplicant(ctx, applicantEmail)
}

func (s *Service) ListForEvent(ctx context.Context, jobID string) ([]Application, error) {
	normalized, err := normalizeJobID(jobID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForEvent(ctx, normalized)
}

// Withdraw removes the acting applicant's own application for the event.
// Scoping by both keys keeps one applicant's withdrawal from removing
// another's application.
func (s *Service) Withdraw(ctx context.Context, jobID, applicantEmail string) error {
	normalized, err := normalizeJobID(jobID)
	if err != nil {
		return err
	}
	removed, err := s.repo.Withdraw(ctx, normalized, applicantEmail)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes one application by its own identity.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := ids.ValidateULID(id); err != nil {
		return ErrInvalidID
	}
	removed, err := s.repo.DeleteByID(ctx, ids.NormalizeULID(id))
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeJobID(jobID string) (string, error) {
	if err := ids.ValidateULID(jobID); err != nil {
		return "", ValidationError{Field: "job_id", Message: "must be a valid event id"}
	}
	return ids.NormalizeULID(jobID), nil
}
