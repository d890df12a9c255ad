package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/deck-api/internal/config"
	"github.com/yourusername/deck-api/internal/domain/repository"
	"github.com/yourusername/deck-api/internal/handler"
	pgRepo "github.com/yourusername/deck-api/internal/repository/postgres"
	s3Repo "github.com/yourusername/deck-api/internal/repository/s3"
	"github.com/yourusername/deck-api/internal/service"
	"github.com/yourusername/deck-api/pkg/database"
	"github.com/yourusername/deck-api/pkg/logger"
	"github.com/yourusername/deck-api/pkg/metrics"
	"github.com/yourusername/deck-api/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		// Логгер еще не настроен
		if bootLog, logErr := logger.New("development"); logErr == nil {
			bootLog.Error("failed to load config", "error", err)
			bootLog.Sync()
		}
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.URL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	if cfg.Database.Migrate {
		if err := database.MigrateDB(db, log); err != nil {
			log.Fatal("failed to migrate database", "error", err)
		}
	}

	// Хранилище объектов. Без STORAGE_ENDPOINT удаление ассета чистит только БД
	var objectRepo repository.ObjectRepository = s3Repo.NoOpObjectRepo{}
	if cfg.Storage.Enabled() {
		client, err := storage.NewMinioClient(storage.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			log.Fatal("failed to initialize storage client", "error", err)
		}
		bucketRepo := s3Repo.NewObjectRepo(client, cfg.Storage.Bucket)
		objectRepo = bucketRepo
		log.Info("storage bucket configured", "endpoint", cfg.Storage.Endpoint, "bucket", bucketRepo.Bucket())
	} else {
		log.Warn("STORAGE_ENDPOINT is not set, asset objects will not be removed from the bucket")
	}

	m := metrics.NewManager()

	// Репозитории
	deckRepo := pgRepo.NewDeckRepo(db)
	assetRepo := pgRepo.NewAssetRepo(db)

	// Сервисы
	deckService := service.NewDeckService(deckRepo, log, m)
	assetService := service.NewAssetService(assetRepo, objectRepo, log, m)

	router := handler.NewRouter(handler.RouterConfig{
		Decks:  handler.NewDeckHandler(deckService),
		Assets: handler.NewAssetHandler(assetService),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		Metrics:   m,
		Logger:    log,
		StaticDir: cfg.Server.StaticDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server running", "addr", "http://localhost:"+cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := database.GetSQLDB(db); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("server exited properly")
}
