package events

import "context"

// Filters are the listing options for events. Owner matches hr_email exactly;
// TitleSearch is a case-insensitive substring match on the title. Empty
// fields do not constrain the listing. Results are always ordered ascending
// by date.
type Filters struct {
	Owner       string
	TitleSearch string
}

// DeleteResult reports what a cascading event deletion removed.
type DeleteResult struct {
	EventsDeleted       int64 `json:"events_deleted"`
	ApplicationsDeleted int64 `json:"applications_deleted"`
}

type Repository interface {
	List(ctx context.Context, filters Filters) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Insert(ctx context.Context, event Event) error
	// Update merges the patch into an existing event and returns the updated
	// document, or ErrNotFound when no event has the given id.
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// Upsert behaves like Update but creates the document when the id is
	// absent.
	Upsert(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// Delete removes the event and every application referencing it as one
	// transactional unit.
	Delete(ctx context.Context, id string) (DeleteResult, error)
}
