package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

// RegisterRoutes mounts on the API root since the two routes live under /ideas and /users.
func (h *MatchHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/ideas/:id/matches", auth.Middleware(), h.CandidatesForIdea)
	r.Get("/users/me/matches", auth.Middleware(), h.IdeasForMe)
}

func (h *MatchHandler) CandidatesForIdea(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ideaID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchCandidatesForIdea(c.Context(), userID, ideaID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateMatchResponses(items))
}

func (h *MatchHandler) IdeasForMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}

	items, err := h.uc.MatchIdeasForUser(c.Context(), userID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewIdeaMatchResponses(items))
}
