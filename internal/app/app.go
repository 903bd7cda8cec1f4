package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hairstudio/salon/internal/config"
	"github.com/hairstudio/salon/internal/db"
	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	Storage             storage.Storage
	AuthService         *service.AuthService
	WorkService         *service.WorkService
	ReviewService       *service.ReviewService
	AppointmentService  *service.AppointmentService
	ClientService       *service.ClientService
	StatsService        *service.StatsService
	ContentService      *service.ContentService
	NotificationService *service.NotificationService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := repository.NewStore(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	images := imaging.NewIngestor(fileStorage)

	// Services
	notificationService := service.NewNotificationService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.NotifyEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	verifier := service.NewAdminVerifier(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	authService := service.NewAuthService(verifier, cfg.SessionSecret, cfg.SessionExpiry, cfg.SecureCookies())
	workService := service.NewWorkService(store, images)
	reviewService := service.NewReviewService(store, images)
	appointmentService := service.NewAppointmentService(store, notificationService, cfg.OperatorName, cfg.OperatorWhatsApp)
	clientService := service.NewClientService(store)
	statsService := service.NewStatsService(store)
	contentService := service.NewContentService(cfg.ContentPath)

	err = contentService.LoadPages()
	if err != nil {
		// Pages are reloaded on request, a bad file only breaks that page
		slog.Warn("failed to load content pages", "error", err)
	}

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		Storage:             fileStorage,
		AuthService:         authService,
		WorkService:         workService,
		ReviewService:       reviewService,
		AppointmentService:  appointmentService,
		ClientService:       clientService,
		StatsService:        statsService,
		ContentService:      contentService,
		NotificationService: notificationService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
