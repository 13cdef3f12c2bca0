package v1

import (
	"ideahub/internal/delivery/http/handler"
	"ideahub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Users         *handler.UserHandler
	Skills        *handler.SkillHandler
	Ideas         *handler.IdeaHandler
	Matches       *handler.MatchHandler
	Engagement    *handler.EngagementHandler
	Contributions *handler.ContributionHandler
}

func Register(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	if h.Skills != nil {
		h.Skills.RegisterRoutes(r, auth)
	}

	// Match and engagement routes sit under /users/me and /ideas/:id; they must be
	// registered before the catch-all /users/:username.
	if h.Matches != nil {
		h.Matches.RegisterRoutes(r, auth)
	}
	if h.Engagement != nil {
		h.Engagement.RegisterRoutes(r, auth)
	}
	if h.Contributions != nil {
		h.Contributions.RegisterRoutes(r, auth)
	}

	RegisterUsers(r.Group("/users"), h.Users, auth)
	RegisterIdeas(r.Group("/ideas"), h.Ideas, auth)
}
