// Package app assembles the HTTP application: database, cache, optional
// event producer, and the gin router with all routes registered.
package app

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hOtoch/moment-midia/internal/cache"
	"github.com/hOtoch/moment-midia/internal/config"
	"github.com/hOtoch/moment-midia/internal/events"
	"github.com/hOtoch/moment-midia/internal/middleware"
	"github.com/hOtoch/moment-midia/internal/monitoring"
	"github.com/hOtoch/moment-midia/internal/repositories"
)

type App struct {
	cfg      *config.Config
	db       *gorm.DB
	cache    *cache.MultiLevelCache
	producer *events.Producer
	limiter  *middleware.RateLimiter
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	db, err := newDatabase(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	a.cache = newCache(cfg)

	if cfg.KafkaEnabled() {
		a.producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Printf("kafka producer enabled, topic %s", cfg.Kafka.Topic)
	}

	if cfg.RateLimit.Enabled {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit)
	}

	registerHealthChecks(a.db, a.cache)

	a.router = newRouter(a)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			log.Println("failed to close kafka producer:", err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Println("failed to close cache:", err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return repositories.OpenPostgres(cfg)
}

func newCache(cfg *config.Config) *cache.MultiLevelCache {
	redisCache := cache.NewRedisCache(&cache.RedisConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	return cache.NewMultiLevelCache(redisCache)
}

func registerHealthChecks(db *gorm.DB, c *cache.MultiLevelCache) {
	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	monitoring.RegisterHealthCheck("cache", func(ctx context.Context) error {
		return c.Health()
	})
}
