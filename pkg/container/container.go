package container

import (
	"context"
	"time"

	"bookshelf-backend/internal/config"
	"bookshelf-backend/internal/domains/catalog"
	catalogHandler "bookshelf-backend/internal/domains/catalog/handler"
	catalogRepo "bookshelf-backend/internal/domains/catalog/repository"
	catalogService "bookshelf-backend/internal/domains/catalog/service"
	reviewHandler "bookshelf-backend/internal/domains/review/handler"
	reviewRepo "bookshelf-backend/internal/domains/review/repository"
	reviewService "bookshelf-backend/internal/domains/review/service"
	infraCache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/infrastructure/documentstore"
	"bookshelf-backend/internal/shared/audit"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/logger"
)

// Container wires configuration, stores and domain services in dependency
// order. Postgres and Mongo are required at startup; Redis is not.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Mongo *documentstore.MongoStore
	Cache cache.Cache
	Audit audit.Recorder

	CatalogService catalog.Service
	ReviewService  reviewService.ReviewService

	BookHandler   *catalogHandler.BookHandler
	ReviewHandler *reviewHandler.ReviewHandler

	redis *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(&cfg.Postgres)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, c.DB.Pool); err != nil {
		c.DB.Close()
		return nil, err
	}

	c.Mongo = documentstore.NewMongoStore(&cfg.Mongo)
	if err := c.Mongo.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, err
	}
	if err := c.Mongo.EnsureIndexes(ctx); err != nil {
		// The listing still works unindexed, so keep starting.
		logger.Warn("review index creation failed", err)
	}

	// Redis is an optional accelerator. Without it every list goes to
	// Postgres, which is correct, just slower.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, list caching disabled", err)
	} else {
		c.redis = redisCache
		c.Cache = redisCache
	}

	c.Audit = audit.NewPostgresRecorder(c.DB.Pool, cfg.Audit.Disabled)

	bookRepo := catalogRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.CatalogService = catalogService.NewCatalogService(bookRepo)
	c.BookHandler = catalogHandler.NewBookHandler(c.CatalogService)

	reviews := reviewRepo.NewMongoReviewRepository(c.Mongo.Reviews())
	c.ReviewService = reviewService.NewReviewService(reviews, c.CatalogService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)

	logger.Info("container initialized", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"redis_enabled": c.Cache != nil,
	})

	return c, nil
}

// Cleanup releases all store connections. Safe to call once during shutdown.
func (c *Container) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Warn("redis close failed", err)
		}
	}
	if c.Mongo != nil {
		c.Mongo.Close(ctx)
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
