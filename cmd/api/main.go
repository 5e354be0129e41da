package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-bot/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-bot/internal/db"
	"github.com/BruksfildServices01/barber-bot/internal/logger"
	"github.com/BruksfildServices01/barber-bot/internal/middleware"
	"github.com/BruksfildServices01/barber-bot/internal/routes"
	"github.com/BruksfildServices01/barber-bot/internal/session"
)

func main() {

	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	sessions := newSessionStore(cfg, log)
	defer sessions.Close()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, sessions, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// Redis quando configurado; memória caso contrário.
func newSessionStore(cfg *config.Config, log *zap.Logger) session.Store {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(cfg.SessionTTL)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("invalid REDIS_URL", zap.Error(err))
	}

	return session.NewRedisStore(redis.NewClient(opts), cfg.SessionTTL)
}
