// Package app is the composition root: it loads configuration, wires the
// repositories, services, and HTTP transport, and owns the server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	auditlogrepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/auditlog"
	dashboardrepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/dashboard"
	grouprepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/group"
	occupationrepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/occupation"
	relationshiprepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/relationship"
	sourcerepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/source"
	synonymrepo "github.com/talentwire/taxonomy-backend/internal/adapter/postgres/synonym"
	"github.com/talentwire/taxonomy-backend/internal/auth"
	"github.com/talentwire/taxonomy-backend/internal/config"
	auditsvc "github.com/talentwire/taxonomy-backend/internal/service/audit"
	catalogsvc "github.com/talentwire/taxonomy-backend/internal/service/catalog"
	dashboardsvc "github.com/talentwire/taxonomy-backend/internal/service/dashboard"
	mergesvc "github.com/talentwire/taxonomy-backend/internal/service/merge"
	taxonomysvc "github.com/talentwire/taxonomy-backend/internal/service/taxonomy"
	"github.com/talentwire/taxonomy-backend/internal/transport/middleware"
	"github.com/talentwire/taxonomy-backend/internal/transport/rest"
)

// Run starts the taxonomy backend and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	txm := postgres.NewTxManager(pool)
	occupations := occupationrepo.New(pool)
	synonyms := synonymrepo.New(pool)
	groups := grouprepo.New(pool)
	sources := sourcerepo.New(pool)
	relationships := relationshiprepo.New(pool)
	auditLogs := auditlogrepo.New(pool)
	dashboardStats := dashboardrepo.New(pool)

	// Services.
	taxonomyService := taxonomysvc.NewService(logger, relationships, occupations, groups, txm)
	mergeService := mergesvc.NewService(logger, occupations, synonyms, relationships, txm)
	catalogService := catalogsvc.NewService(logger, occupations, synonyms, groups, sources, relationships, taxonomyService, txm)
	auditService := auditsvc.NewService(logger, auditLogs, auditsvc.Config{
		DefaultPageSize:    cfg.Audit.DefaultPageSize,
		MaxPageSize:        cfg.Audit.MaxPageSize,
		RecentActivityDays: cfg.Audit.RecentActivityDays,
	})
	dashboardService := dashboardsvc.NewService(logger, dashboardStats, sources)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := auth.NewService(logger, cfg.Auth, jwtManager)

	loginLimiter := middleware.NewRateLimiter(time.Minute)
	defer loginLimiter.Stop()

	// Transport.
	router := rest.NewRouter(rest.RouterDeps{
		Occupations:    rest.NewOccupationHandler(catalogService, mergeService, taxonomyService, logger),
		Synonyms:       rest.NewSynonymHandler(catalogService, logger),
		Groups:         rest.NewGroupHandler(catalogService, logger),
		Sources:        rest.NewSourceHandler(catalogService, logger),
		Taxonomy:       rest.NewTaxonomyHandler(taxonomyService, logger),
		Audit:          rest.NewAuditHandler(auditService, logger),
		Dashboard:      rest.NewDashboardHandler(dashboardService, logger),
		Search:         rest.NewSearchHandler(catalogService, logger),
		Auth:           rest.NewAuthHandler(authService, logger),
		Health:         rest.NewHealthHandler(pool, BuildVersion()),
		TokenValidator: jwtManager,
		LoginLimiter:   loginLimiter,
		CORS:           cfg.CORS,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
