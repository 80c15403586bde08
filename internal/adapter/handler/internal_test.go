package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herald-hub/internal/domain"
	"herald-hub/internal/usecase"
)

func newInternalFixture(store *fakeStore, cache *fakeCache) *InternalHandler {
	return NewInternalHandler(usecase.NewRevokeSession(store, cache, slog.Default()))
}

func TestInternalHandler_Revoke(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache()
	require.NoError(t, store.Save(context.Background(), "sess-1", "bearer-abc", delivererUser()))
	cache.Set("sess-1", domain.CachedSession{Token: "bearer-abc", User: delivererUser()})

	h := newInternalFixture(store, cache)
	c, rec := postJSON("/internal/sessions/revoke", `{"sessionId":"sess-1"}`)
	require.NoError(t, h.HandleRevoke(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
	assert.Empty(t, store.sessions)
	assert.Empty(t, cache.entries)
}

func TestInternalHandler_RevokeUnknownSession(t *testing.T) {
	h := newInternalFixture(newFakeStore(), newFakeCache())

	c, rec := postJSON("/internal/sessions/revoke", `{"sessionId":"sess-missing"}`)
	require.NoError(t, h.HandleRevoke(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInternalHandler_RevokeValidation(t *testing.T) {
	h := newInternalFixture(newFakeStore(), newFakeCache())

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"malformed json", `{"sessionId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postJSON("/internal/sessions/revoke", tt.body)
			err := h.HandleRevoke(c)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}
