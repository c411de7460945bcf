package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/institucion-api/api"
	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/database"
	"github.com/sahilchouksey/institucion-api/router"
	"github.com/sahilchouksey/institucion-api/utils"
	"github.com/sahilchouksey/institucion-api/utils/auth"
	"github.com/sahilchouksey/institucion-api/utils/cache"
	"github.com/sahilchouksey/institucion-api/utils/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	env, err := config.Get()
	if err != nil {
		return err
	}

	log, err := utils.NewLogger(env.LOG_LEVEL, env.LOG_PATH)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, err := database.StartGORM(env, log)
	if err != nil {
		log.Error("check whether the database is running", zap.String("driver", env.DB_DRIVER))
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		return err
	}

	deps := router.Dependencies{
		Store:  store,
		Env:    env,
		Logger: log,
	}

	if env.JWT_SECRET != "" {
		deps.JWTManager = auth.NewJWTManager(auth.JWTConfig{
			Secret: env.JWT_SECRET,
			Issuer: env.JWT_ISSUER,
		})
	} else {
		log.Warn("JWT_SECRET not set, write endpoints are not protected")
	}

	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err != nil {
			log.Warn("failed to connect to Redis, write throttle disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			deps.Throttle = middleware.NewWriteThrottle(redisCache, env.WRITE_RATE_LIMIT, env.WRITE_RATE_WINDOW, log)
		}
	}

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT), log)
	router.SetupRoutes(server.GetEngine(), deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("signal received", zap.String("signal", sig.String()))
		return server.Shutdown(shutdownTimeout)
	}
}
