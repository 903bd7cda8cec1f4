package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/app"
	"github.com/hairstudio/salon/internal/config"
	"github.com/hairstudio/salon/internal/db/dbtest"
	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/routes"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	handler http.Handler
	store   *repository.Store
	cookies map[string]*http.Cookie
}

func newSite(t *testing.T) *site {
	t.Helper()

	cfg := &config.Config{
		AppName:          "Hair Studio",
		AppEnv:           "development",
		AppURL:           "http://localhost:8000",
		ContentPath:      t.TempDir(),
		MaxUploadBytes:   64 << 10,
		OperatorName:     "Arpit",
		OperatorWhatsApp: "+15550001111",
		StorageDriver:    "local",
	}

	database := dbtest.New(t)
	store := repository.NewStore(database)
	files, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	images := imaging.NewIngestor(files)

	a := &app.App{
		Cfg:                cfg,
		DB:                 database,
		Storage:            files,
		AuthService:        service.NewAuthService(service.NewStaticVerifier("owner", "secret-pass"), "test-secret", time.Hour, false),
		WorkService:        service.NewWorkService(store, images),
		ReviewService:      service.NewReviewService(store, images),
		AppointmentService: service.NewAppointmentService(store, nil, cfg.OperatorName, cfg.OperatorWhatsApp),
		ClientService:      service.NewClientService(store),
		StatsService:       service.NewStatsService(store),
		ContentService:     service.NewContentService(cfg.ContentPath),
	}

	return &site{
		handler: routes.SetupRoutes(a),
		store:   store,
		cookies: map[string]*http.Cookie{},
	}
}

// do sends the request with the cookies collected so far and keeps any new ones.
func (s *site) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *site) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *site) post(path string, values url.Values) *httptest.ResponseRecorder {
	if token, ok := s.cookies["csrf_token"]; ok {
		values.Set("csrf_token", token.Value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *site) login(t *testing.T) {
	t.Helper()
	s.get("/admin")
	rec := s.post("/admin", url.Values{"username": {"owner"}, "password": {"secret-pass"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func seedWork(t *testing.T, store *repository.Store) *model.Work {
	t.Helper()
	work := &model.Work{
		ID:          uuid.New().String(),
		Title:       "Curly bob",
		BeforeImage: "b.jpg",
		AfterImage:  "a.jpg",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Works.Create(context.Background(), work))
	return work
}

func TestPublicPages(t *testing.T) {
	s := newSite(t)
	seedWork(t, s.store)

	for _, path := range []string{"/", "/?hair=curly", "/about-me", "/reviews?stars=5&sort=newest", "/appointment", "/admin", "/robots.txt", "/sitemap.xml", "/assets/js/main.js"} {
		rec := s.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newSite(t)
	ctx := context.Background()
	work := seedWork(t, s.store)
	review := &model.Review{ID: uuid.New().String(), CustomerName: "Asha", PhoneNumber: "+911", Rating: 4, Content: "lovely", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.store.Reviews.Create(ctx, review))
	appointment := &model.Appointment{ID: uuid.New().String(), CustomerName: "Asha", PhoneNumber: "+911", Service: "cut", DateRequested: "Friday", Branch: "Central", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.store.Appointments.Create(ctx, appointment))

	// Picks up a CSRF cookie so POSTs reach the admin gate.
	s.get("/")

	cases := []struct {
		name string
		send func() *httptest.ResponseRecorder
	}{
		{"upload", func() *httptest.ResponseRecorder {
			return s.post("/admin/upload", url.Values{"title": {"New look"}})
		}},
		{"delete work", func() *httptest.ResponseRecorder { return s.get("/admin/delete_work/" + work.ID) }},
		{"approve review", func() *httptest.ResponseRecorder { return s.get("/admin/approve_review/" + review.ID) }},
		{"toggle feature", func() *httptest.ResponseRecorder { return s.get("/admin/toggle_feature/" + review.ID) }},
		{"delete review", func() *httptest.ResponseRecorder { return s.get("/admin/delete_review/" + review.ID) }},
		{"confirm appointment", func() *httptest.ResponseRecorder { return s.get("/admin/confirm_appointment/" + appointment.ID) }},
		{"delete appointment", func() *httptest.ResponseRecorder { return s.get("/admin/delete_appointment/" + appointment.ID) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.send()
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/admin", rec.Header().Get("Location"))
		})
	}

	works, err := s.store.Works.Works(ctx, "")
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, work.ID, works[0].ID)

	storedReview, err := s.store.Reviews.ByID(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, storedReview.IsApproved)
	assert.False(t, storedReview.IsFeatured)

	storedAppointment, err := s.store.Appointments.ByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.False(t, storedAppointment.IsConfirmed)

	for _, path := range []string{"/admin/dashboard", "/admin/clients", "/admin/client/+911", "/admin/reviews_log"} {
		rec := s.get(path)
		assert.Equal(t, "/admin", rec.Header().Get("Location"), path)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	s := newSite(t)
	work := seedWork(t, s.store)
	s.login(t)

	for _, path := range []string{"/admin/dashboard", "/admin/transformations", "/admin/reviews_log", "/admin/appointments_log", "/admin/clients"} {
		rec := s.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := s.get("/admin/delete_work/" + work.ID)
	assert.Equal(t, "/admin/transformations", rec.Header().Get("Location"))
	_, err := s.store.Works.ByID(context.Background(), work.ID)
	assert.ErrorIs(t, err, repository.ErrWorkNotFound)

	// Deleting again is a 404, not a crash
	rec = s.get("/admin/delete_work/" + work.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.get("/logout")
	assert.Equal(t, "/", rec.Header().Get("Location"))
	rec = s.get("/admin/dashboard")
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestWrongCredentialsFlash(t *testing.T) {
	s := newSite(t)
	s.get("/admin")

	rec := s.post("/admin", url.Values{"username": {"owner"}, "password": {"nope"}})
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	page := s.get("/admin")
	assert.Contains(t, page.Body.String(), "Wrong credentials.")

	// The flash is shown once
	page = s.get("/admin")
	assert.NotContains(t, page.Body.String(), "Wrong credentials.")
}

func TestBookingFlow(t *testing.T) {
	s := newSite(t)
	s.get("/appointment")

	rec := s.post("/appointment", url.Values{
		"name": {"Asha"}, "phone": {"+911"}, "branch": {"Central"}, "service": {"cut"}, "date": {"Friday"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "https://wa.me/15550001111?text="))

	rec = s.post("/appointment", url.Values{"name": {"Asha"}})
	assert.Equal(t, "/appointment", rec.Header().Get("Location"))
	page := s.get("/appointment")
	assert.Contains(t, page.Body.String(), "Please fill in all fields.")
}

func TestPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	s := newSite(t)

	req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader("name=Asha"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := s.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestErrorPages(t *testing.T) {
	s := newSite(t)
	s.get("/")

	assert.Equal(t, http.StatusNotFound, s.get("/nowhere").Code)
	assert.Equal(t, http.StatusNotFound, s.get("/pages/missing").Code)
	del := httptest.NewRequest(http.MethodDelete, "/reviews", nil)
	del.Header.Set("X-CSRF-Token", s.cookies["csrf_token"].Value)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(del).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.get("/reviews/like/abc").Code)

	big := url.Values{"name": {strings.Repeat("x", 128<<10)}}
	assert.Equal(t, http.StatusRequestEntityTooLarge, s.post("/reviews", big).Code)
}

func TestSecurityHeaders(t *testing.T) {
	s := newSite(t)
	rec := s.get("/")

	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self' 'nonce-")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
