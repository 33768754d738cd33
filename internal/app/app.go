package app

import (
	"context"
	"fmt"

	"github.com/skipjar/skipjar/internal/config"
	"github.com/skipjar/skipjar/internal/db"
	"github.com/skipjar/skipjar/internal/ledger"
	"github.com/skipjar/skipjar/internal/repository"
	mongostore "github.com/skipjar/skipjar/internal/repository/mongo"
	"github.com/skipjar/skipjar/internal/service"
	"github.com/skipjar/skipjar/internal/storage"
)

const DriverMongo = "mongo"

type App struct {
	Cfg                 *config.Config
	Store               repository.Store
	Calendar            ledger.Calendar
	AuthService         *service.AuthService
	NotificationService *service.NotificationService
	SkipLogService      *service.SkipLogService
	LeaderboardService  *service.LeaderboardService
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	calendar := ledger.NewCalendar(ledger.SystemClock{}, cfg.Location())

	// Services
	notificationService := service.NewNotificationService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	skipLogService := service.NewSkipLogService(store, calendar, notificationService)
	leaderboardService := service.NewLeaderboardService(store)

	return &App{
		Cfg:                 cfg,
		Store:               store,
		Calendar:            calendar,
		AuthService:         authService,
		NotificationService: notificationService,
		SkipLogService:      skipLogService,
		LeaderboardService:  leaderboardService,
	}, nil
}

// OpenStore connects the configured backend and brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DBDriver {
	case DriverMongo:
		store, err := mongostore.Connect(ctx, cfg.DBConnection, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		err = store.Migrate(ctx)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	case db.DriverSQLite, db.DriverPostgres:
		database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return repository.NewSQLStore(database), nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, pgx or mongo)", cfg.DBDriver)
	}
}

// AuditService connects the S3 archive on demand; the server never needs it.
func (a *App) AuditService(ctx context.Context) (*service.AuditService, error) {
	archive, err := storage.New(ctx, a.Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return service.NewAuditService(a.Store, archive), nil
}

func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
