package main

import (
	"context"
	"fmt"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/config"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/repository"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seed stores the embedded catalog in MongoDB and prepares the Postgres
// session table when that store is selected.
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc, err := catalog.EmbeddedDocument()
	if err != nil {
		log.Fatal("failed to read embedded catalog", "error", err)
	}
	if _, err := catalog.FromDocument(doc); err != nil {
		log.Fatal("embedded catalog is invalid", "error", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewCatalogRepo(client.Database(cfg.Mongo.Database))
	if err := repo.Save(ctx, doc); err != nil {
		log.Fatal("failed to save catalog", "error", err)
	}
	log.Info("catalog seeded",
		"database", cfg.Mongo.Database,
		"steps", len(doc.Steps),
		"rules", len(doc.Rules),
		"questions", len(doc.ScoredQuestions),
		"buckets", len(doc.Buckets),
	)

	if cfg.SessionStore != config.StorePostgres {
		return
	}
	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("failed to connect to Postgres", "error", err)
	}
	defer pool.Close()
	if err := repository.EnsureSessionSchema(ctx, pool); err != nil {
		log.Fatal("failed to prepare Postgres schema", "error", err)
	}
	log.Info("postgres session schema ready")
}
