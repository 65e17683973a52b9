package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"speakers-backend/internal/config"
	speakerHandler "speakers-backend/internal/domains/speaker/handler"
	speakerRepo "speakers-backend/internal/domains/speaker/repository"
	speakerService "speakers-backend/internal/domains/speaker/service"
	infraCache "speakers-backend/internal/infrastructure/cache"
	"speakers-backend/internal/infrastructure/database"
	"speakers-backend/internal/infrastructure/storage"
	"speakers-backend/pkg/cache"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Assets storage.AssetStore

	SpeakerRepo    speakerRepo.Repository
	SpeakerService speakerService.Service
	SpeakerHandler *speakerHandler.SpeakerHandler
}

// NewContainer builds the full graph in dependency order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// The cache is read-through only; running without it just costs
		// extra database reads.
		log.Printf("[Container] Redis connection failed (non-critical): %v", err)
	}
	c.Cache = redisCache

	assets, err := newAssetStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init asset store: %w", err)
	}
	c.Assets = assets

	c.SpeakerRepo = speakerRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.SpeakerService = speakerService.NewSpeakerService(c.SpeakerRepo, c.Assets)
	c.SpeakerHandler = speakerHandler.NewSpeakerHandler(c.SpeakerService)

	return c, nil
}

// newAssetStore picks the storage backend from config.
func newAssetStore(cfg config.StorageConfig) (storage.AssetStore, error) {
	switch cfg.Driver {
	case "minio":
		return storage.NewMinIOStore(cfg)
	default:
		return storage.NewLocalStore(cfg.LocalDir)
	}
}

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[Container] Failed to close database: %v", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close Redis: %v", err)
			}
		}
	}
}
