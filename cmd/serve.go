package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"task-tracker/backend/internal/cache"
	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/middleware"
	"task-tracker/backend/internal/monitoring"
	"task-tracker/backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logrus.Info(".env file not found, using environment variables")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := newLogger(cfg)

		checker := monitoring.NewHealthChecker()

		taskStore, commentStore, cleanup, err := buildStores(cfg, log, checker)
		if err != nil {
			return err
		}
		defer cleanup()

		if cfg.Cache.Enabled {
			redisCache := cache.NewRedisCache(&cache.RedisConfig{
				Addr:         cfg.GetRedisAddr(),
				Password:     cfg.Cache.Password,
				DB:           cfg.Cache.DB,
				PoolSize:     cfg.Cache.PoolSize,
				MinIdleConns: cfg.Cache.MinIdleConns,
				MaxRetries:   cfg.Cache.MaxRetries,
				DialTimeout:  cfg.Cache.DialTimeout,
				ReadTimeout:  cfg.Cache.ReadTimeout,
				WriteTimeout: cfg.Cache.WriteTimeout,
			})
			defer redisCache.Close()

			taskStore = storage.NewCachedTaskStore(taskStore, redisCache)
			checker.Register("cache", func(ctx context.Context) error {
				return redisCache.Health()
			})
			log.WithField("addr", cfg.GetRedisAddr()).Info("task cache enabled")
		}

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		engine := gin.New()
		engine.Use(middleware.RecoveryWithLogger(log))
		engine.Use(middleware.RequestLogger(log))
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			MaxAge:           12 * time.Hour,
			AllowCredentials: false,
		}))

		metrics := monitoring.NewMetrics()
		engine.Use(metrics.Middleware())

		if cfg.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(
				cfg.RateLimit.RequestsPerMin,
				cfg.RateLimit.BurstSize,
				cfg.RateLimit.CleanupInterval,
			)
			defer limiter.Stop()
			engine.Use(limiter.Middleware())
		}

		handlers.RegisterRoutes(engine, taskStore, commentStore, log)
		engine.GET("/metrics", metrics.Handler())
		engine.GET("/ready", checker.ReadinessHandler())

		server := &http.Server{
			Addr:         cfg.GetServerAddr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.WithField("addr", server.Addr).Info("HTTP server listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Log.Format == "json" || cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// buildStores returns the configured task and comment stores, plus a
// cleanup closing whatever resources they hold.
func buildStores(cfg *config.Config, log *logrus.Logger, checker *monitoring.HealthChecker) (storage.TaskStore, storage.CommentStore, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("using in-memory storage, data will not survive a restart")
		store := storage.NewMemoryStore()
		return store, store, func() {}, nil

	case "sqlite":
		pool, err := database.NewDatabasePool(&database.PoolConfig{
			DSN:             cfg.Database.SQLitePath,
			Driver:          database.DriverSQLite,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			LogLevel:        gormLogLevel(cfg),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if err := database.AutoMigrate(pool.DB); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checker.Register("database", func(ctx context.Context) error {
			return pool.Health()
		})
		store := storage.NewGormStore(pool.DB)
		return store, store, func() { pool.Close() }, nil

	case "postgres":
		pool, err := database.NewDatabasePool(&database.PoolConfig{
			DSN:             cfg.GetDatabaseDSN(),
			Driver:          database.DriverPostgres,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			LogLevel:        gormLogLevel(cfg),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres database: %w", err)
		}
		checker.Register("database", func(ctx context.Context) error {
			return pool.Health()
		})
		store := storage.NewGormStore(pool.DB)
		return store, store, func() { pool.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.IsProduction() {
		return logger.Warn
	}
	return logger.Info
}
