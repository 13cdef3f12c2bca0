package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ideahub/internal/config"
	"ideahub/internal/delivery/http/handler"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/delivery/http/routes"
	v1 "ideahub/internal/delivery/http/routes/v1"
	"ideahub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the websocket hub and returns the app
// with a cleanup func that stops both.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(log.Writer(), "", log.LstdFlags|log.Lmicroseconds)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(c.Verifier)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		ws.NewHandler(c.Hub, c.Verifier, c.Logger),
		auth,
		v1.Handlers{
			Users:         handler.NewUserHandler(c.ProfileUC, c.SearchUC, c.PreviewUC),
			Skills:        handler.NewSkillHandler(c.SkillUC),
			Ideas:         handler.NewIdeaHandler(c.IdeaUC),
			Matches:       handler.NewMatchHandler(c.MatchingUC),
			Engagement:    handler.NewEngagementHandler(c.EngagementUC),
			Contributions: handler.NewContributionHandler(c.ContributionUC),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
