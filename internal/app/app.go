// Package app wires configuration, storage, services, and the HTTP server
// into a runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	accountrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/account"
	campaignrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/campaign"
	holdingrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/holding"
	"github.com/crowdpool/crowdpool-backend/internal/auth"
	"github.com/crowdpool/crowdpool-backend/internal/config"
	accountsvc "github.com/crowdpool/crowdpool-backend/internal/service/account"
	campaignsvc "github.com/crowdpool/crowdpool-backend/internal/service/campaign"
	"github.com/crowdpool/crowdpool-backend/internal/transport/middleware"
	"github.com/crowdpool/crowdpool-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph, and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	campaigns := campaignrepo.New(pool)
	holdings := holdingrepo.New(pool)
	accounts := accountrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	accountService := accountsvc.NewService(logger, accounts, jwtManager, cfg.Auth)
	campaignService := campaignsvc.NewService(logger, campaigns, holdings, txManager, cfg.Campaign)

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		Account:  rest.NewAccountHandler(accountService, logger),
		Campaign: rest.NewCampaignHandler(campaignService, logger),
		Holding:  rest.NewHoldingHandler(holdings, logger),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
