package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"plate-service/internal/auth"
	"plate-service/internal/capture"
	"plate-service/internal/client"
	"plate-service/internal/config"
	"plate-service/internal/db"
	httphandler "plate-service/internal/http"
	"plate-service/internal/http/middleware"
	"plate-service/internal/journal"
	"plate-service/internal/logger"
	"plate-service/internal/ocr/tesseract"
	"plate-service/internal/pipeline"
	"plate-service/internal/plate"
	"plate-service/internal/repository"
	"plate-service/internal/service"
)

func main() {
	flags := pflag.NewFlagSet("plate-service", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: plate-service [flags] [scan|serve]\n")
		flags.PrintDefaults()
	}
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	deps, err := buildCollaborators(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialise collaborators")
	}

	engine := tesseract.NewEngine(cfg.OCR.Languages, cfg.OCR.PageSegMode)
	platePipeline := pipeline.New(plate.NewCorrector(plate.DefaultConfusions), appLogger)
	recognitionService := service.NewRecognitionService(
		platePipeline,
		engine,
		deps,
		service.NewNotifyPolicy(cfg.Notify.On...),
		appLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Command {
	case config.CommandServe:
		serve(ctx, cfg, recognitionService, appLogger)
	default:
		if _, err := recognitionService.Scan(ctx); err != nil {
			appLogger.Error().Err(err).Msg("scan failed")
			os.Exit(1)
		}
	}
}

func buildCollaborators(cfg *config.Config, appLogger zerolog.Logger) (service.Collaborators, error) {
	var deps service.Collaborators

	source, err := capture.NewSource(cfg)
	if err != nil {
		return deps, err
	}
	deps.Source = source

	if cfg.Notify.URL != "" {
		deps.Notifier = client.NewNotifyClient(cfg)
	} else {
		appLogger.Warn().Msg("NOTIFY_URL is not set, actuator notifications are disabled")
	}

	if cfg.PlateLogPath != "" {
		deps.Journal = journal.New(cfg.PlateLogPath)
	}

	if cfg.DB.DSN != "" {
		database, err := db.New(cfg, appLogger)
		if err != nil {
			return deps, fmt.Errorf("failed to connect database: %w", err)
		}
		deps.Store = repository.NewPlateReadRepository(database)
	}

	return deps, nil
}

func serve(ctx context.Context, cfg *config.Config, recognitionService *service.RecognitionService, appLogger zerolog.Logger) {
	var authMiddleware gin.HandlerFunc
	if cfg.Auth.AccessSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	} else {
		appLogger.Warn().Msg("JWT_ACCESS_SECRET is not set, the API is unauthenticated")
	}

	handler := httphandler.NewHandler(recognitionService, appLogger)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("starting plate service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down plate service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("forced shutdown")
	}
}
