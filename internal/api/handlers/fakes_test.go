package handlers

import (
	"context"
	"time"

	"github.com/unity-hands/server/internal/domain/applications"
	"github.com/unity-hands/server/internal/domain/events"
)

const (
	testEventID = "01HQZX3Y4K6F7G8H9J0K1M2N3P"
	testAppID   = "01HQZX3Y4K6F7G8H9J0K1M2N4Q"
)

type fakeEventsRepo struct {
	events      map[string]events.Event
	insertErr   error
	listErr     error
	lastFilters events.Filters
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{events: map[string]events.Event{}}
}

func (f *fakeEventsRepo) List(_ context.Context, filters events.Filters) ([]events.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastFilters = filters
	var out []events.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventsRepo) GetByID(_ context.Context, id string) (*events.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEventsRepo) Insert(_ context.Context, event events.Event) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventsRepo) Update(_ context.Context, id string, patch events.EventPatch) (*events.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	applyPatch(&e, patch)
	f.events[id] = e
	return &e, nil
}

func (f *fakeEventsRepo) Upsert(_ context.Context, id string, patch events.EventPatch) (*events.Event, error) {
	e, ok := f.events[id]
	if !ok {
		e = events.Event{ID: id, CreatedAt: time.Now().UTC()}
	}
	applyPatch(&e, patch)
	f.events[id] = e
	return &e, nil
}

func (f *fakeEventsRepo) Delete(_ context.Context, id string) (events.DeleteResult, error) {
	if _, ok := f.events[id]; !ok {
		return events.DeleteResult{}, nil
	}
	delete(f.events, id)
	return events.DeleteResult{EventsDeleted: 1, ApplicationsDeleted: 2}, nil
}

func applyPatch(e *events.Event, patch events.EventPatch) {
	if patch.OwnerEmail != nil {
		e.OwnerEmail = *patch.OwnerEmail
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if len(patch.Attrs) > 0 {
		if e.Attrs == nil {
			e.Attrs = map[string]any{}
		}
		for k, v := range patch.Attrs {
			e.Attrs[k] = v
		}
	}
	e.UpdatedAt = time.Now().UTC()
}

type fakeApplicationsRepo struct {
	applications map[string]applications.Application
	resolved     []events.Event
	insertErr    error
}

func newFakeApplicationsRepo() *fakeApplicationsRepo {
	return &fakeApplicationsRepo{applications: map[string]applications.Application{}}
}

func (f *fakeApplicationsRepo) Insert(_ context.Context, application applications.Application) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, a := range f.applications {
		if a.JobID == application.JobID && a.ApplicantEmail == application.ApplicantEmail {
			return applications.ErrAlreadyApplied
		}
	}
	f.applications[application.ID] = application
	return nil
}

func (f *fakeApplicationsRepo) ListForApplicant(_ context.Context, applicantEmail string) ([]events.Event, error) {
	var out []events.Event
	for _, a := range f.applications {
		if a.ApplicantEmail != applicantEmail {
			continue
		}
		for _, e := range f.resolved {
			if e.ID == a.JobID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeApplicationsRepo) ListForEvent(_ context.Context, jobID string) ([]applications.Application, error) {
	var out []applications.Application
	for _, a := range f.applications {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationsRepo) Withdraw(_ context.Context, jobID, applicantEmail string) (int64, error) {
	var removed int64
	for id, a := range f.applications {
		if a.JobID == jobID && a.ApplicantEmail == applicantEmail {
			delete(f.applications, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeApplicationsRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := f.applications[id]; !ok {
		return 0, nil
	}
	delete(f.applications, id)
	return 1, nil
}
