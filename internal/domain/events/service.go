package events

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/unity-hands/server/internal/domain/ids"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters Filters) ([]Event, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Event, error) {
	normalized, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, normalized)
}

func (s *Service) Create(ctx context.Context, input EventInput) (*Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := Event{
		ID:         id,
		OwnerEmail: input.OwnerEmail,
		Title:      input.Title,
		Date:       input.Date,
		Attrs:      input.Attrs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update merges the patch into the event with the given id. When upsert is
// set a missing id creates the document instead of failing; callers opt into
// that explicitly because a silent merge-becomes-create surprises them.
func (s *Service) Update(ctx context.Context, id string, patch EventPatch, upsert bool) (*Event, error) {
	normalized, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	if upsert {
		return s.repo.Upsert(ctx, normalized, patch)
	}
	return s.repo.Update(ctx, normalized, patch)
}

// Delete removes the event and cascades to every application referencing it.
func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	normalized, err := normalizeID(id)
	if err != nil {
		return DeleteResult{}, err
	}
	return s.repo.Delete(ctx, normalized)
}

func normalizeID(id string) (string, error) {
	if err := ids.ValidateULID(id); err != nil {
		return "", ErrInvalidID
	}
	return ids.NormalizeULID(id), nil
}

// ParseFilters reads the listing options from the request query: `user`
// scopes to an owning account, `searchEvent` is the title search term.
func ParseFilters(values url.Values) Filters {
	return Filters{
		Owner:       strings.TrimSpace(values.Get("user")),
		TitleSearch: strings.TrimSpace(values.Get("searchEvent")),
	}
}
