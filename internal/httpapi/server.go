package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/bootstrap"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/observability"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Server is the public REST API.
type Server struct {
	core      *bootstrap.Core
	hub       *eventbus.Hub
	app       *fiber.App
	startedAt time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// New builds the fiber app with middleware and routes.
func New(core *bootstrap.Core) (*Server, error) {
	if core == nil || core.Cfg == nil {
		return nil, fmt.Errorf("core is nil")
	}

	if core.Hub == nil {
		core.Hub = eventbus.NewHub()
	}
	hub := core.Hub

	s := &Server{
		core:      core,
		hub:       hub,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               core.Cfg.App.Name,
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(helmet.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next:  func(c *fiber.Ctx) bool { return c.Path() == "/api/events" },
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins(core.Cfg.HTTP.CORSOrigins), ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," + core.Cfg.HTTP.PrincipalHeader,
	}))
	app.Use(loggingMiddleware())
	app.Use(timeoutMiddleware(time.Duration(core.Cfg.HTTP.RequestTimeoutSec) * time.Second))
	app.Use(principalMiddleware(core.Cfg.HTTP.PrincipalHeader))
	if n := core.Cfg.HTTP.RateLimitPerMin; n > 0 {
		app.Use(rateLimitMiddleware(n))
	}

	s.app = app
	s.routes()
	return s, nil
}

func corsOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = append(out, "*")
	}
	return out
}

func (s *Server) routes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Get("/events", s.handleEvents)
	api.Get("/status", s.handleStatus)

	diary := api.Group("/diary-entries")
	diary.Post("/", s.handleSubmitDiary)
	diary.Get("/user/:userId", s.handleListDiary)
	diary.Get("/user/:userId/stats", s.handleDiaryStats)
	diary.Get("/user/:userId/date/:date", s.handleDiaryByDate)
	diary.Put("/:id", s.handleUpdateDiary)
	diary.Delete("/:id", s.handleDeleteDiary)

	api.Get("/achievements", s.handleCatalog)
	api.Post("/user-achievements/check", s.handleCheckAchievements)
	api.Get("/user-achievements/:userId", s.handleUserAchievements)

	goals := api.Group("/goals")
	goals.Post("/", s.handleCreateGoal)
	goals.Get("/user/:userId", s.handleListGoals)
	goals.Put("/:id/progress", s.handleGoalProgress)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until Shutdown.
func (s *Server) Listen(addr string) error {
	slog.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown ends event streams and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.app == nil {
		return nil
	}
	s.closeOnce.Do(func() { close(s.done) })
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) exposeErrors() bool {
	return !s.core.Cfg.IsProduction()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	h := observability.BuildHealth(s.core, s.startedAt, s.exposeErrors())
	status := fiber.StatusOK
	if !h.Success {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(h)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	st, err := observability.BuildStatus(c.UserContext(), s.core, s.startedAt, s.exposeErrors())
	if err != nil {
		return s.fail(c, fiber.NewError(fiber.StatusServiceUnavailable, err.Error()))
	}
	return ok(c, st)
}
