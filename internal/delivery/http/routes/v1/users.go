package v1

import (
	"ideahub/internal/delivery/http/handler"
	"ideahub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, userHandler *handler.UserHandler, auth *middleware.AuthMiddleware) {
	if r == nil || userHandler == nil {
		return
	}
	userHandler.RegisterRoutes(r, auth)
}

func RegisterIdeas(r fiber.Router, ideaHandler *handler.IdeaHandler, auth *middleware.AuthMiddleware) {
	if r == nil || ideaHandler == nil {
		return
	}
	ideaHandler.RegisterRoutes(r, auth)
}
