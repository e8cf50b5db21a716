package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/supchaser/pdf-image-extractor/internal/app/delivery"
	"github.com/supchaser/pdf-image-extractor/internal/app/repository"
	"github.com/supchaser/pdf-image-extractor/internal/app/usecase"
	"github.com/supchaser/pdf-image-extractor/internal/config"
	"github.com/supchaser/pdf-image-extractor/internal/engine"
	"github.com/supchaser/pdf-image-extractor/internal/middleware"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/validate"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newRouter(extractionDelivery *delivery.ExtractionDelivery, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", delivery.Alive).Methods("GET")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/health", extractionDelivery.Health).Methods("GET")
	apiRouter.HandleFunc("/extract-images", extractionDelivery.ExtractImages).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/pdf/{pdfId}/images", extractionDelivery.ListPDFImages).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/images/{pdfId}/{name}", extractionDelivery.GetImage).Methods("GET", "OPTIONS")
	apiRouter.Use(middleware.RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), int(cfg.RateLimitRPS)+1)))

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicMiddleware)
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return router
}

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(cfg.LogMode)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.LogMode),
		zap.String("storage_dir", cfg.StorageDir),
		zap.Int("max_upload_size_mb", cfg.MaxUploadSizeMB),
		zap.Int("max_files_per_request", cfg.MaxFilesPerRequest),
		zap.Int("max_concurrent_extractions", cfg.MaxConcurrentExtractions),
	)

	imageRepo, err := repository.CreateImageRepository(cfg.StorageDir, "/api/v1/images")
	if err != nil {
		logger.Error("failed to open image storage", zap.Error(err))
		os.Exit(1)
	}
	defer imageRepo.Close()

	extractionUsecase := usecase.CreateExtractionUsecase(engine.CreatePdfcpuEngine(), imageRepo, usecase.Options{
		MaxUploadSize:            int64(cfg.MaxUploadSizeMB) * validate.MB,
		MaxFiles:                 cfg.MaxFilesPerRequest,
		MaxConcurrentExtractions: cfg.MaxConcurrentExtractions,
	})
	extractionDelivery := delivery.CreateExtractionDelivery(extractionUsecase)

	router := newRouter(extractionDelivery, cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("starting HTTP server",
			zap.String("address", server.Addr),
			zap.Any("config", cfg),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("failed to start server", zap.Error(err))
		os.Exit(1)
	case sig := <-quit:
		logger.Info("server is shutting down",
			zap.String("signal", sig.String()),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
			os.Exit(1)
		}

		logger.Info("server stopped")
	}
}
