package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"backend-routeglobe/internal/auth"
	"backend-routeglobe/internal/backend"
	"backend-routeglobe/internal/config"
	"backend-routeglobe/internal/errtrack"
	"backend-routeglobe/internal/library"
	"backend-routeglobe/internal/render"
	"backend-routeglobe/internal/session"
	"backend-routeglobe/internal/stream"
	"backend-routeglobe/internal/weather"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthTimeout = 2 * time.Second

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Backend  *backend.Client
	Sampler  render.HeightSampler
	Sessions *session.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{ErrorHandler: errtrack.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Backend: backend.NewClient(cfg.BackendURL, cfg.BackendTimeout),
		Sampler: newSampler(cfg),
	}
	s.Sessions = session.NewService(newSessionStore(cfg, redisClient), s.Backend, s.Sampler, s.Stream)

	registerRoutes(s)
	return s
}

func newSampler(cfg config.Config) render.HeightSampler {
	if !cfg.TerrainEnabled {
		log.Printf("terrain sampling disabled, drawing recorded elevations")
		return render.DisabledSampler{}
	}
	return render.NewSRTMSampler(&http.Client{Timeout: cfg.TerrainTimeout}, cfg.TerrainCacheDir)
}

func newSessionStore(cfg config.Config, redisClient *redis.Client) session.Store {
	if redisClient == nil {
		log.Printf("redis not configured, keeping sessions in memory")
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	return session.NewRedisStore(redisClient, cfg.SessionTTL)
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
		defer cancel()
		backendStatus := "ok"
		if err := s.Backend.Health(ctx); err != nil {
			backendStatus = "unavailable"
		}
		return c.JSON(fiber.Map{"status": "ok", "backend": backendStatus})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	tokens := auth.NewService(s.Cfg.JWTSecret, s.Cfg.SessionTTL)

	auth.RegisterRoutes(s.App.Group("/auth"), tokens)
	render.RegisterRoutes(s.App.Group("/render"), s.Sampler)
	weather.RegisterRoutes(s.App.Group("/weather"))
	backend.RegisterRoutes(s.App, s.Backend)
	session.RegisterRoutes(s.App.Group("/sessions"), s.Sessions, tokens, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, s.Sessions.Snapshot)

	if s.DB == nil {
		log.Printf("postgres not connected, route library disabled")
		return
	}
	library.RegisterRoutes(s.App.Group("/library"), library.NewService(s.DB), s.Sessions, jwtMiddleware)
}
