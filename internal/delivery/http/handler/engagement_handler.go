package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EngagementHandler struct {
	uc usecase.EngagementUsecase
}

func NewEngagementHandler(uc usecase.EngagementUsecase) *EngagementHandler {
	return &EngagementHandler{uc: uc}
}

func (h *EngagementHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	protected := auth.Middleware()

	r.Post("/ideas/:id/bookmark", protected, h.Bookmark)
	r.Delete("/ideas/:id/bookmark", protected, h.Unbookmark)
	r.Post("/ideas/:id/spark", protected, h.Spark)
	r.Delete("/ideas/:id/spark", protected, h.Unspark)
	r.Get("/users/me/bookmarks", protected, h.ListBookmarks)
}

func (h *EngagementHandler) Bookmark(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}
	if err := h.uc.Bookmark(c.Context(), userID, ideaID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Bookmarked", nil)
}

func (h *EngagementHandler) Unbookmark(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}
	if err := h.uc.Unbookmark(c.Context(), userID, ideaID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Bookmark removed", nil)
}

func (h *EngagementHandler) Spark(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}
	n, err := h.uc.Spark(c.Context(), userID, ideaID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Sparked", dto.SparkResponse{IdeaID: ideaID, SparkCount: n})
}

func (h *EngagementHandler) Unspark(c fiber.Ctx) error {
	userID, ideaID, err := userAndIdea(c)
	if err != nil {
		return err
	}
	n, err := h.uc.Unspark(c.Context(), userID, ideaID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Spark removed", dto.SparkResponse{IdeaID: ideaID, SparkCount: n})
}

func (h *EngagementHandler) ListBookmarks(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListBookmarks(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.NewIdeaResponses(items), response.Meta{Limit: limit, Offset: offset, Count: len(items)})
}
