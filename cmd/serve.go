package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"hack2hire/config"
	"hack2hire/domain"
	"hack2hire/infrastructure"
	"hack2hire/interfaces"
	"hack2hire/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	logger, err := infrastructure.NewLogger(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

// loadCatalog prefers the database question bank when DB_DSN is set.
func loadCatalog(cfg *config.Config, logger *zap.Logger) (*domain.Catalog, error) {
	if cfg.DBDSN == "" {
		return domain.DefaultCatalog(), nil
	}

	db, err := infrastructure.NewMySQLConnection(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return infrastructure.LoadCatalog(db, logger)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := infrastructure.ConfigureUnidocLicense(cfg.UnidocLicenseKey); err != nil {
		logger.Warn("unidoc license not applied", zap.Error(err))
	}

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Fatal("load question catalog", zap.Error(err))
	}

	var events interfaces.EventPublisher = infrastructure.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue, logger)
		if err != nil {
			logger.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer rmq.Close()

		if err := rmq.ConsumeEvents(infrastructure.AuditLogger(logger)); err != nil {
			logger.Fatal("consume interview events", zap.Error(err))
		}
		events = rmq
	}

	var fallback infrastructure.PDFFallback
	if cfg.GeminiAPIKey != "" {
		gemini, err := infrastructure.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("gemini fallback disabled", zap.Error(err))
		} else {
			fallback = gemini
		}
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	service := usecase.NewService(
		infrastructure.NewMemorySessionStore(),
		catalog,
		usecase.NewSelector(usecase.NewRandomSource(seed)),
		usecase.NewEvaluator(),
		logger,
	)

	gin.SetMode(cfg.GinMode)
	router := interfaces.NewRouter(logger, cfg.AllowedOrigins)
	interfaces.NewHTTPHandler(router, &interfaces.HTTPHandler{
		Interview: service,
		Extractor: infrastructure.NewTextExtractor(fallback, logger),
		Events:    events,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.Int("questions", catalog.Len()),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
