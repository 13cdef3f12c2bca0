package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ContributionHandler struct {
	uc usecase.ContributionUsecase
}

func NewContributionHandler(uc usecase.ContributionUsecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

func (h *ContributionHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	protected := auth.Middleware()

	r.Post("/ideas/:id/contributions", protected, h.Request)
	r.Get("/ideas/:id/contributions", protected, h.ListForIdea)
	r.Put("/contributions/:id", protected, h.Decide)
}

func (h *ContributionHandler) Request(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}

	var req dto.ContributionRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	created, err := h.uc.Request(c.Context(), userID, ideaID, req.Message)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Contribution requested", dto.NewContributionResponse(created))
}

func (h *ContributionHandler) ListForIdea(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForIdea(c.Context(), userID, ideaID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewContributionResponses(items))
}

func (h *ContributionHandler) Decide(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	contributionID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.DecideContributionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.Decide(c.Context(), userID, contributionID, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Contribution updated", dto.NewContributionResponse(updated))
}

func userAndIdea(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := currentUser(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	ideaID, err := uuidParam(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, ideaID, nil
}
