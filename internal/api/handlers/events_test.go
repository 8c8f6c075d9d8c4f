package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unity-hands/server/internal/domain/events"
)

func newTestEventsHandler(repo *fakeEventsRepo) *EventsHandler {
	return NewEventsHandler(events.NewService(repo), "test")
}

func seedEvent(repo *fakeEventsRepo) events.Event {
	event := events.Event{
		ID:         testEventID,
		OwnerEmail: "hr@example.com",
		Title:      "Beach Cleanup",
		Date:       time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Attrs:      map[string]any{"location": "Pier 4"},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	repo.events[event.ID] = event
	return event
}

func TestEventsListAppliesFilters(t *testing.T) {
	repo := newFakeEventsRepo()
	seedEvent(repo)
	h := newTestEventsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/events?user=hr@example.com&searchEvent=beach", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, events.Filters{Owner: "hr@example.com", TitleSearch: "beach"}, repo.lastFilters)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Beach Cleanup", list[0]["title"])
	require.Equal(t, "Pier 4", list[0]["location"])
}

func TestEventsListEmptyIsArray(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestEventsCreate(t *testing.T) {
	repo := newFakeEventsRepo()
	h := newTestEventsHandler(repo)

	body := `{"hr_email":"hr@example.com","title":"River Sweep","date":"2026-10-01","capacity":25}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotEmpty(t, doc["id"])
	require.Equal(t, "River Sweep", doc["title"])
	require.Equal(t, "2026-10-01", doc["date"])
	require.Equal(t, float64(25), doc["capacity"])
	require.Len(t, repo.events, 1)
}

func TestEventsCreateMissingFields(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"title":"No Owner"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "hr_email")
}

func TestEventsGet(t *testing.T) {
	repo := newFakeEventsRepo()
	seedEvent(repo)
	h := newTestEventsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Beach Cleanup")
}

func TestEventsGetMalformedID(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodGet, "/events/not-a-ulid", nil)
	req.SetPathValue("id", "not-a-ulid")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsGetMissing(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsUpdateMerges(t *testing.T) {
	repo := newFakeEventsRepo()
	seedEvent(repo)
	h := newTestEventsHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/events/"+testEventID, strings.NewReader(`{"title":"Harbor Cleanup"}`))
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Harbor Cleanup")
	require.Equal(t, "hr@example.com", repo.events[testEventID].OwnerEmail)
}

func TestEventsUpdateMissingWithoutUpsert(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodPatch, "/events/"+testEventID, strings.NewReader(`{"title":"Ghost"}`))
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsUpdateUpsertCreates(t *testing.T) {
	repo := newFakeEventsRepo()
	h := newTestEventsHandler(repo)

	req := httptest.NewRequest(http.MethodPatch, "/events/"+testEventID+"?upsert=true", strings.NewReader(`{"title":"Fresh"}`))
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.events, 1)
	require.Equal(t, "Fresh", repo.events[testEventID].Title)
}

func TestEventsDeleteReportsCounts(t *testing.T) {
	repo := newFakeEventsRepo()
	seedEvent(repo)
	h := newTestEventsHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result events.DeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, int64(1), result.EventsDeleted)
	require.Equal(t, int64(2), result.ApplicationsDeleted)
}

func TestEventsDeleteMissing(t *testing.T) {
	h := newTestEventsHandler(newFakeEventsRepo())

	req := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil)
	req.SetPathValue("id", testEventID)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
