package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestRootGreeting(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, "dev", "test")

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "running")
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, "1.2.3", "test")

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "1.2.3")
}

func TestReadyz(t *testing.T) {
	h := NewHealthHandler(fakePinger{}, "dev", "test")

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzDatabaseDown(t *testing.T) {
	h := NewHealthHandler(fakePinger{err: errors.New("connection refused")}, "dev", "test")

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
