package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"foccacia/external/footballapi"
	"foccacia/internal/config"
	"foccacia/internal/domain/group"
	"foccacia/internal/domain/user"
	lookupcache "foccacia/internal/infrastructure/lookup"
	"foccacia/internal/infrastructure/repository/elastic"
	"foccacia/internal/infrastructure/repository/memory"
	"foccacia/internal/interfaces/httpapi"
	idgen "foccacia/internal/platform/id"
	"foccacia/internal/platform/logging"
	"foccacia/internal/platform/resilience"
	"foccacia/internal/usecase"
)

// NewHTTPServer wires the selected storage backend, the lookup provider, the
// services, and the HTTP surface into a ready-to-run server.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, platformLogger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if platformLogger == nil {
		platformLogger = logging.Default()
	}

	groupRepo, userRepo, err := buildRepositories(cfg, platformLogger)
	if err != nil {
		return nil, err
	}

	teamLookup := buildTeamLookup(cfg, platformLogger)

	groupSvc := usecase.NewGroupService(groupRepo, teamLookup, idgen.NewRandomGenerator(), logger)
	userSvc := usecase.NewUserService(userRepo, logger)
	searchSvc := usecase.NewTeamSearchService(teamLookup, logger, cfg.SearchMaxWorkers)

	handler := httpapi.NewHandler(groupSvc, userSvc, searchSvc, logger)
	router := httpapi.NewRouter(handler, userSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, platformLogger *logging.Logger) (group.Repository, user.Repository, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return memory.NewGroupRepository(), memory.NewUserRepository(), nil
	case config.StorageElastic:
		client := NewElasticClient(cfg, platformLogger)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := elastic.EnsureIndices(ctx, client); err != nil {
			return nil, nil, fmt.Errorf("ensure indices: %w", err)
		}

		return elastic.NewGroupRepository(client), elastic.NewUserRepository(client), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// NewElasticClient builds the document store transport from config. Shared
// with the index bootstrap command.
func NewElasticClient(cfg config.Config, platformLogger *logging.Logger) *elastic.Client {
	return elastic.NewClient(elastic.ClientConfig{
		BaseURL: cfg.ElasticURL,
		Timeout: cfg.ElasticTimeout,
		Logger:  platformLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ElasticCircuitEnabled,
			FailureThreshold: cfg.ElasticCircuitFailures,
			OpenTimeout:      cfg.ElasticCircuitOpenWait,
			HalfOpenMaxReq:   cfg.ElasticCircuitHalfOpenReq,
		},
	})
}

func buildTeamLookup(cfg config.Config, platformLogger *logging.Logger) usecase.TeamLookup {
	client := footballapi.NewClient(footballapi.ClientConfig{
		BaseURL:    cfg.FootballAPIBaseURL,
		APIKey:     cfg.FootballAPIKey,
		Timeout:    cfg.FootballAPITimeout,
		MaxRetries: cfg.FootballAPIMaxRetries,
		Logger:     platformLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballAPICircuitEnabled,
			FailureThreshold: cfg.FootballAPICircuitFailures,
			OpenTimeout:      cfg.FootballAPICircuitOpenWait,
			HalfOpenMaxReq:   cfg.FootballAPICircuitHalfOpenReq,
		},
	})

	if !cfg.CacheEnabled {
		return client
	}

	return lookupcache.NewCached(client, cfg.CacheTTL)
}
