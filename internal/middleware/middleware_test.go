package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/middleware"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *service.AuthService {
	verifier := service.NewStaticVerifier("owner", "secret-pass")
	return service.NewAuthService(verifier, "test-session-secret", time.Hour, false)
}

func TestRequireAdminRedirectsVisitors(t *testing.T) {
	called := false
	h := middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/admin/delete_work/abc", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	called := false
	h := middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req = req.WithContext(ctxkeys.WithAdmin(req.Context(), &model.AdminIdentity{Username: "owner"}))
	h(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestRequireGuestRedirectsAdmin(t *testing.T) {
	h := middleware.RequireGuest(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a signed in admin")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ctxkeys.WithAdmin(req.Context(), &model.AdminIdentity{Username: "owner"}))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestAdminSession(t *testing.T) {
	auth := newAuthService()
	token, _, err := auth.Login(t.Context(), "owner", "secret-pass")
	require.NoError(t, err)

	var seen *model.AdminIdentity
	h := middleware.AdminSession(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.Admin(r.Context())
	}))

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: token})
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, seen)
		assert.Equal(t, "owner", seen.Username)
	})

	t.Run("tampered cookie is cleared", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: token + "x"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Nil(t, seen)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "admin_session", cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("no cookie", func(t *testing.T) {
		seen = nil
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, seen)
	})
}

func TestBodyLimit(t *testing.T) {
	h := middleware.BodyLimit(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("oversized body must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRecover(t *testing.T) {
	h := middleware.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestCSRFProtection(t *testing.T) {
	h := middleware.CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// A GET hands out the token cookie
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reviews", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reviews/like/1", nil)
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reviews/like/1", nil)
		req.AddCookie(cookies[0])
		req.Header.Set("X-CSRF-Token", token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("form token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader("csrf_token="+token))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(cookies[0])
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestFlashConsumedOnGet(t *testing.T) {
	var flashes []ctxkeys.FlashMessage
	h := middleware.Flash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flashes = ctxkeys.Flashes(r.Context())
	}))

	set := httptest.NewRecorder()
	ui.Flash(set, ui.FlashError, "Please fill in all fields.")
	cookie := set.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/appointment", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Len(t, flashes, 1)
	assert.Equal(t, ctxkeys.FlashMessage{Category: ui.FlashError, Message: "Please fill in all fields."}, flashes[0])

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestSecurityHeadersCarryNonce(t *testing.T) {
	var nonce string
	h := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce = templ.GetNonce(r.Context())
		}),
		middleware.NonceMiddleware,
		middleware.SecurityHeaders,
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "frame-src https://www.instagram.com")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimiterWindowExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := middleware.NewRateLimiter(1, time.Minute)
	limiter.SetClock(func() time.Time { return now })

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	now = now.Add(time.Minute)
	assert.True(t, limiter.Allow("10.0.0.1"))
}
