package main

import (
	"context"
	"errors"
	"fmt"
	"mediaplanner/internal/cache"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/chat"
	"mediaplanner/internal/config"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/repository"
	"mediaplanner/internal/service"
	"mediaplanner/internal/transport/rest"
	"mediaplanner/internal/transport/ws"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	log.Info("ai config",
		"chatModel", cfg.AI.Models.Chat,
		"textModel", cfg.AI.Models.Text,
		"summaryModel", cfg.AI.Models.Summary,
		"adviceModel", cfg.AI.Models.Advice,
		"enabled", cfg.AI.IsEnabled(),
	)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", "error", err)
	}
	log.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", "error", err)
	}
	log.Info("connected to Redis", "addr", cfg.Redis.Addr)

	cat, err := loadCatalog(ctx, cfg, repository.NewCatalogRepo(db), log)
	if err != nil {
		log.Fatal("failed to load catalog", "error", err)
	}

	// Session store
	var sessions repository.SessionRepo
	switch cfg.SessionStore {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatal("failed to connect to Postgres", "error", err)
		}
		defer pool.Close()
		pgPingCtx, pgCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pgCancel()
		if err := pool.Ping(pgPingCtx); err != nil {
			log.Fatal("failed to ping Postgres", "error", err)
		}
		if err := repository.EnsureSessionSchema(ctx, pool); err != nil {
			log.Fatal("failed to prepare Postgres schema", "error", err)
		}
		sessions = repository.NewPostgresSessionRepo(pool)
		log.Info("sessions stored in Postgres")
	default:
		sessions = repository.NewSessionRepo(db)
		log.Info("sessions stored in MongoDB")
	}

	briefRepo := repository.NewBriefRepo(db)
	progressCache := cache.NewProgressCache(rdb, cfg.ProgressTTL)
	statsCache := cache.NewStatsCache(rdb)
	sessionCache := cache.NewSessionCache(rdb, time.Hour)

	// Initialize services
	kb := chat.MustLoadKnowledge()
	planner := engine.NewPlanner(cat)

	authSvc := service.NewAuthService(cfg.Auth)
	plannerSvc := service.NewPlannerService(cat, planner, sessions, log)
	plannerSvc.SetStats(statsCache)
	plannerSvc.SetSessionCache(sessionCache)
	progressSvc := service.NewProgressService(cat, plannerSvc, progressCache, log)
	chatSvc := service.NewChatService(kb, service.NewGeminiClient(cfg.AI, cfg.AI.Models.Chat), log)
	aiSvc := service.NewAIService(
		service.NewGeminiClient(cfg.AI, cfg.AI.Models.Text),
		service.NewGeminiClient(cfg.AI, cfg.AI.Models.Summary),
		kb, log,
	)
	csvSvc := service.NewCsvService(log)
	briefSvc := service.NewBriefService(planner, briefRepo, service.NewGeminiClient(cfg.AI, cfg.AI.Models.Advice), kb, log)

	wsHub := ws.NewHub(log)

	router := rest.NewRouter(&rest.Container{
		Catalog:         cat,
		CORS:            cfg.CORS,
		Log:             log,
		AuthService:     authSvc,
		PlannerService:  plannerSvc,
		ProgressService: progressSvc,
		ChatService:     chatSvc,
		AIService:       aiSvc,
		CsvService:      csvSvc,
		BriefService:    briefSvc,
		WSHub:           wsHub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "sessionStore", cfg.SessionStore, "catalog", cfg.CatalogSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	wsHub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

// loadCatalog reads the catalog from MongoDB when configured, falling back
// to the embedded copy if nothing has been seeded yet.
func loadCatalog(ctx context.Context, cfg *config.Config, repo repository.CatalogRepo, log *logger.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogSource != config.CatalogMongo {
		return catalog.Load()
	}

	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from MongoDB: %w", err)
	}
	if doc == nil {
		log.Warn("no catalog in MongoDB, using embedded catalog; run cmd/seed to store it")
		return catalog.Load()
	}
	cat, err := catalog.FromDocument(*doc)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded from MongoDB", "rules", len(cat.Rules()), "steps", len(cat.Steps()))
	return cat, nil
}
