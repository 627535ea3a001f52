package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/partyhub/party-ui-api/config"
	"github.com/partyhub/party-ui-api/internal/adapters/partyapi"
	redisadapter "github.com/partyhub/party-ui-api/internal/adapters/redis"
	"github.com/partyhub/party-ui-api/internal/data"
	"github.com/partyhub/party-ui-api/internal/ports"
	"github.com/partyhub/party-ui-api/internal/service"
)

// SessionConfig contains dependencies for building the session service.
type SessionConfig struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// SessionDeps bundles the session service with the backend client it was
// built around, so HTTP wiring can reuse the client for the CRUD proxy.
type SessionDeps struct {
	Sessions *service.SessionService
	Backend  *partyapi.Client
	Events   *data.AuthEventRepo
}

// BuildSessionService wires the backend client, profile resolver, Redis
// session store, and Postgres event log into a SessionService.
func BuildSessionService(cfg SessionConfig) (*SessionDeps, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := partyapi.NewClient(partyapi.Config{
		BaseURL: cfg.Config.Backend.BaseURL,
		Timeout: cfg.Config.Backend.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build backend client: %w", err)
	}

	resolver, err := partyapi.NewResolver(partyapi.ResolverOptions{
		Client:         client,
		UseCurrentRole: cfg.Config.Auth.UseCurrentRole,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build profile resolver: %w", err)
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")

	var events ports.AuthEventRecorder
	var eventRepo *data.AuthEventRepo
	if cfg.Config.Auth.EventLogEnabled && cfg.DB != nil {
		eventRepo = data.NewAuthEventRepo(cfg.DB)
		events = eventRepo
	} else {
		logger.Info("auth event log disabled")
	}

	sessions, err := service.NewSessionService(service.SessionServiceOptions{
		Provider:   client,
		Resolver:   resolver,
		Sessions:   sessionStore,
		Events:     events,
		Logger:     logger,
		SessionTTL: cfg.Config.Auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build session service: %w", err)
	}

	return &SessionDeps{
		Sessions: sessions,
		Backend:  client,
		Events:   eventRepo,
	}, nil
}

// ResourceFactory returns the factory the CRUD proxy uses to obtain a
// per-collection backend client.
func ResourceFactory(client *partyapi.Client) ports.ResourceClientFactory {
	return func(path string) ports.ResourceClient {
		return client.Resource(path)
	}
}
