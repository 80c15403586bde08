package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herald-hub/internal/domain"
	"herald-hub/internal/usecase"
	"herald-hub/middleware"
)

func delivererUser() domain.User {
	return domain.User{
		ID:       "user-7",
		Username: "dana",
		Email:    "dana@example.com",
		Role:     domain.RoleDeliverer,
		Area:     "north",
	}
}

func newAuthFixture(gateway *fakeGateway, store *fakeStore, cache *fakeCache) *AuthHandler {
	logger := slog.Default()
	login := usecase.NewLogin(gateway, store, cache, &fakeCodec{}, logger)
	logout := usecase.NewLogout(gateway, store, cache, true, logger)
	return NewAuthHandler(login, logout, &fakeCodec{}, time.Hour, logger)
}

func postJSON(path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	gateway := &fakeGateway{token: "bearer-abc", user: delivererUser()}
	store := newFakeStore()
	h := newAuthFixture(gateway, store, newFakeCache())

	c, rec := postJSON("/auth/login", `{"username":"dana","password":"secret"}`)
	require.NoError(t, h.HandleLogin(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/deliverer"`)
	assert.Contains(t, rec.Body.String(), `"username":"dana"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.True(t, strings.HasPrefix(cookie.Value, "signed:"))
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Len(t, store.sessions, 1)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	gateway := &fakeGateway{loginErr: domain.ErrInvalidCredentials}
	store := newFakeStore()
	h := newAuthFixture(gateway, store, newFakeCache())

	c, rec := postJSON("/auth/login", `{"username":"dana","password":"wrong"}`)
	err := h.HandleLogin(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, store.sessions)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"missing password", `{"username":"dana"}`},
		{"missing username", `{"password":"secret"}`},
		{"empty body", `{}`},
	}

	h := newAuthFixture(&fakeGateway{}, newFakeStore(), newFakeCache())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postJSON("/auth/login", tt.body)
			err := h.HandleLogin(c)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestAuthHandler_LogoutClearsSession(t *testing.T) {
	gateway := &fakeGateway{}
	store := newFakeStore()
	cache := newFakeCache()
	require.NoError(t, store.Save(context.Background(), "sess-1", "bearer-abc", delivererUser()))
	cache.Set("sess-1", domain.CachedSession{Token: "bearer-abc", User: delivererUser()})

	h := newAuthFixture(gateway, store, cache)

	c, rec := postJSON("/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "signed:sess-1"})
	require.NoError(t, h.HandleLogout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/login"`)
	assert.NotContains(t, rec.Body.String(), "backendError")
	assert.Empty(t, store.sessions)
	assert.Empty(t, cache.entries)

	// The browser cookie is expired.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestAuthHandler_LogoutReportsBackendFailure(t *testing.T) {
	gateway := &fakeGateway{logoutErr: domain.ErrAgencyUnavailable}
	store := newFakeStore()
	cache := newFakeCache()
	require.NoError(t, store.Save(context.Background(), "sess-1", "bearer-abc", delivererUser()))
	cache.Set("sess-1", domain.CachedSession{Token: "bearer-abc", User: delivererUser()})

	h := newAuthFixture(gateway, store, cache)

	c, rec := postJSON("/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "signed:sess-1"})
	require.NoError(t, h.HandleLogout(c))

	// Locally logged out, but the user is told the backend refused.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/login"`)
	assert.Contains(t, rec.Body.String(), `"backendError":"agency backend unavailable"`)
	assert.Empty(t, store.sessions)
	assert.Empty(t, cache.entries)
}

func TestAuthHandler_LogoutWithoutCookie(t *testing.T) {
	h := newAuthFixture(&fakeGateway{}, newFakeStore(), newFakeCache())

	c, rec := postJSON("/auth/logout", "")
	require.NoError(t, h.HandleLogout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/login"`)
}

func TestAuthHandler_LogoutWithGarbageCookie(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Save(context.Background(), "sess-1", "bearer-abc", delivererUser()))

	h := newAuthFixture(&fakeGateway{}, store, newFakeCache())

	c, rec := postJSON("/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-real-token"})
	require.NoError(t, h.HandleLogout(c))

	// The browser gets logged out; unrelated sessions stay.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.sessions, 1)
}
