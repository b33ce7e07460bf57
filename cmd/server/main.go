package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/api"
	"gymsheet/training-app/internal/config"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/repository/postgres"
	"gymsheet/training-app/internal/service"
	"gymsheet/training-app/internal/storage"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logg.Sync()
	logg.Info("starting training app server")

	// --- Database ---
	db, err := postgres.Connect(cfg.Database.DSN, logg)
	if err != nil {
		logg.Fatal("could not connect to database", "error", err)
	}
	if err := postgres.AutoMigrateAll(db); err != nil {
		logg.Fatal("could not migrate schema", "error", err)
	}
	if err := postgres.SeedCategories(db, cfg.Seed.Categories); err != nil {
		logg.Fatal("could not seed categories", "error", err)
	}

	// --- File Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logg)
	if err != nil {
		logg.Fatal("could not initialize file storage", "error", err)
	}

	// --- Repositories ---
	store := postgres.NewStore(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	exerciseRepo := postgres.NewExerciseRepository(db)
	methodRepo := postgres.NewMethodRepository(db)
	groupRepo := postgres.NewExerciseGroupRepository(db)
	sheetRepo := postgres.NewTrainingSheetRepository(db)

	// --- Services ---
	exerciseService := service.NewExerciseService(exerciseRepo)
	methodService := service.NewMethodService(methodRepo)
	groupService := service.NewGroupService(store, groupRepo, categoryRepo, exerciseRepo, methodRepo)
	sheetService := service.NewSheetService(store, sheetRepo, groupRepo, fileStorage, logg)

	// --- HTTP ---
	router := gin.New()
	router.Use(api.RequestLogger(logg), gin.Recovery())
	api.SetupRoutes(router, exerciseService, methodService, groupService, sheetService, fileStorage, logg)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logg.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("listen and serve failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logg.Fatal("server forced to shutdown", "error", err)
	}
	logg.Info("server exited")
}
