package routes

import (
	"io/fs"
	"net/http"

	"github.com/hairstudio/salon/assets"
	"github.com/hairstudio/salon/internal/app"
	"github.com/hairstudio/salon/internal/handler"
	"github.com/hairstudio/salon/internal/middleware"
	"github.com/hairstudio/salon/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.WorkService, app.ReviewService, app.StatsService, app.ContentService)
	seo := handler.NewSEOHandler(app.ContentService, app.Cfg.AppURL)
	content := handler.NewContentHandler(app.ContentService)
	appointment := handler.NewAppointmentHandler(app.AppointmentService)
	review := handler.NewReviewHandler(app.ReviewService, app.WorkService, app.Cfg.MaxUploadBytes)
	adminAuth := handler.NewAdminAuthHandler(app.AuthService)
	admin := handler.NewAdminHandler(
		app.WorkService,
		app.ReviewService,
		app.AppointmentService,
		app.ClientService,
		app.StatsService,
		app.Cfg.MaxUploadBytes,
	)

	mux := http.NewServeMux()
	errs := handler.NewErrorHandler(mux)

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Uploaded images (object storage serves its own URLs)
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		mux.Handle("GET /uploads/", handler.Uploads(local.Root()))
	}

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Gallery and about
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /about-me", home.AboutPage)

	// Booking
	mux.HandleFunc("GET /appointment", appointment.AppointmentPage)
	mux.HandleFunc("POST /appointment", appointment.Book)

	// Reviews
	mux.HandleFunc("GET /reviews", review.ReviewsPage)
	mux.HandleFunc("POST /reviews", review.Submit)
	mux.HandleFunc("POST /reviews/like/{id}", review.Like)

	// Content
	mux.HandleFunc("GET /pages/{page}", content.ShowPage)

	// ============================================================================
	// ADMIN
	// ============================================================================

	rateLimiter := middleware.RateLimitLogin()

	mux.HandleFunc("GET /admin", middleware.RequireGuest(adminAuth.LoginPage))
	mux.HandleFunc("POST /admin", rateLimiter(middleware.RequireGuest(adminAuth.Login)))
	mux.HandleFunc("GET /logout", adminAuth.Logout)

	// Pages
	mux.HandleFunc("GET /admin/dashboard", middleware.RequireAdmin(admin.DashboardPage))
	mux.HandleFunc("GET /admin/transformations", middleware.RequireAdmin(admin.TransformationsPage))
	mux.HandleFunc("GET /admin/reviews_log", middleware.RequireAdmin(admin.ReviewsLogPage))
	mux.HandleFunc("GET /admin/appointments_log", middleware.RequireAdmin(admin.AppointmentsLogPage))
	mux.HandleFunc("GET /admin/clients", middleware.RequireAdmin(admin.ClientsPage))
	mux.HandleFunc("GET /admin/client/{phone...}", middleware.RequireAdmin(admin.ClientPage))

	// Works
	mux.HandleFunc("POST /admin/upload", middleware.RequireAdmin(admin.Upload))
	mux.HandleFunc("GET /admin/delete_work/{id}", middleware.RequireAdmin(admin.DeleteWork))

	// Moderation
	mux.HandleFunc("GET /admin/approve_review/{id}", middleware.RequireAdmin(admin.ApproveReview))
	mux.HandleFunc("GET /admin/toggle_feature/{id}", middleware.RequireAdmin(admin.ToggleFeature))
	mux.HandleFunc("GET /admin/delete_review/{id}", middleware.RequireAdmin(admin.DeleteReview))

	// Appointments
	mux.HandleFunc("GET /admin/confirm_appointment/{id}", middleware.RequireAdmin(admin.ConfirmAppointment))
	mux.HandleFunc("GET /admin/delete_appointment/{id}", middleware.RequireAdmin(admin.DeleteAppointment))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404, or 405 when the path exists for another method
	mux.HandleFunc(handler.FallbackPattern, errs.Fallback)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.Config(app.Cfg), // Before SecurityHeaders, which reads the S3 endpoint
		middleware.NonceMiddleware, // Before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.BodyLimit(app.Cfg.MaxUploadBytes),
		middleware.CSRFProtection,
		middleware.AdminSession(app.AuthService),
		middleware.Flash,
		middleware.ImageURLs(app.Storage),
		middleware.WithURLPath,
	)
}
