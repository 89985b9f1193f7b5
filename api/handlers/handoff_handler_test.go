package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandoffTestApp(t *testing.T) (*fiber.App, *handoff.MemoryStore) {
	t.Helper()

	store := handoff.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := fiber.New()
	app.Get("/api/handoff/:sessionId/:source", GetHandoff(store, logger))
	app.Delete("/api/handoff/:sessionId/:source", ClearHandoff(store, logger))

	return app, store
}

func seedHandoff(t *testing.T, store *handoff.MemoryStore, key handoff.Key) {
	t.Helper()

	data := formdata.New()
	data.Set(formdata.FieldApplicantName, "Tashi Wangmo")
	data.Seal(true)

	require.NoError(t, store.Put(context.Background(), key, data))
}

func TestGetHandoff_Found(t *testing.T) {
	app, store := newHandoffTestApp(t)
	seedHandoff(t, store, handoff.Key{SessionID: "sess-1", Source: handoff.SourceNDI})

	req := httptest.NewRequest(http.MethodGet, "/api/handoff/sess-1/ndi", http.NoBody)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handoffResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Found)
	require.NotNil(t, body.FormData)
	assert.Equal(t, "Tashi Wangmo", body.FormData.Get(formdata.FieldApplicantName))
}

func TestGetHandoff_AbsenceIsNotAnError(t *testing.T) {
	app, _ := newHandoffTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/handoff/sess-1/customer", http.NoBody)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handoffResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Found)
	assert.Nil(t, body.FormData)
}

func TestGetHandoff_InvalidSource(t *testing.T) {
	app, _ := newHandoffTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/handoff/sess-1/fax", http.NoBody)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClearHandoff(t *testing.T) {
	app, store := newHandoffTestApp(t)
	key := handoff.Key{SessionID: "sess-1", Source: handoff.SourceCustomer}
	seedHandoff(t, store, key)

	req := httptest.NewRequest(http.MethodDelete, "/api/handoff/sess-1/customer", http.NoBody)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = store.Get(context.Background(), key)
	assert.ErrorIs(t, err, handoff.ErrNotFound)
}
