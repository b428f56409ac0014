package di

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-api/cmd/api/infrastructure"
	"user-management-api/internal/adapter/cache"
	"user-management-api/internal/adapter/db/memory"
	"user-management-api/internal/adapter/db/sqlite"
	ginhandler "user-management-api/internal/adapter/gin/handler"
	"user-management-api/internal/adapter/gin/middleware"
	ginrouter "user-management-api/internal/adapter/gin/router"
	"user-management-api/internal/adapter/repository/cached"
	"user-management-api/internal/config"
	"user-management-api/internal/usecase/user"
	redisclient "user-management-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	UserRepo    user.Repository
	UserUC      user.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.UserHandler
	Router      *gin.Engine
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	store, err := c.newStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	// Optional Redis: read-through cache and rate limiter
	var userCache cache.UserCache
	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		userCache = cache.NewRedisUserCache(rdb.Client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)

		if cfg.RateLimit.Enabled {
			c.RateLimiter = middleware.NewRateLimiter(
				rdb.Client,
				middleware.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
					BurstCapacity:     cfg.RateLimit.BurstCapacity,
				},
				l,
			)
		}
	}

	c.UserRepo = cached.NewUserRepository(store, userCache, l)
	c.UserUC = user.New(c.UserRepo, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.Router = ginrouter.SetupRouter(c.GinHandler, c.RateLimiter, ginrouter.Options{
		ServiceName: cfg.Logger.ServiceName,
		AuthEnabled: cfg.Auth.Enabled,
		SwaggerFile: cfg.App.SwaggerPath,
	}, l)

	l.Info("container initialized",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
		zap.Bool("cache_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", c.RateLimiter != nil),
	)

	return c, nil
}

func (c *Container) newStore(ctx context.Context) (user.Repository, error) {
	switch c.Config.Store.Driver {
	case config.StoreSQLite:
		db, err := infrastructure.NewDatabase(ctx, c.Config, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db

		repo := sqlite.NewUserRepoSQLite(db, c.Logger)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repo, nil
	default:
		return memory.NewUserRepoMemory(c.Logger), nil
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
