package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/nkessler/guessgame-go/internal/dependencies/clock"
	"github.com/nkessler/guessgame-go/internal/dependencies/random"
	"github.com/nkessler/guessgame-go/internal/mailer"
	"github.com/nkessler/guessgame-go/internal/services/auth"
	"github.com/nkessler/guessgame-go/internal/services/credential"
	"github.com/nkessler/guessgame-go/internal/services/game"
	"github.com/nkessler/guessgame-go/internal/storage"
	"github.com/nkessler/guessgame-go/internal/storage/memory"
	redisstorage "github.com/nkessler/guessgame-go/internal/storage/redis"
	sqlitestorage "github.com/nkessler/guessgame-go/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Mailer mailer.Mailer

	// Services
	CredentialService *credential.Service
	AuthService       *auth.Service
	GameService       *game.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis", or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// SendGridAPIKey enables the SendGrid mailer when set; welcome emails
	// are otherwise skipped
	SendGridAPIKey string
	// MailFromName and MailFromEmail identify the welcome email sender
	MailFromName  string
	MailFromEmail string
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis', or 'sqlite'")
	}

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SendGridAPIKey != "" {
		mail = mailer.NewSendGrid(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromEmail)
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), mail, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	mail mailer.Mailer,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	credentialService := credential.New(store, clk, mail, logger)
	authService := auth.New(store, credentialService, clk, logger, authCfg)
	gameService := game.New(authService, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Mailer:            mail,
		CredentialService: credentialService,
		AuthService:       authService,
		GameService:       gameService,
	}
}
