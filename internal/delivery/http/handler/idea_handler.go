package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type IdeaHandler struct {
	uc usecase.IdeaUsecase
}

func NewIdeaHandler(uc usecase.IdeaUsecase) *IdeaHandler {
	return &IdeaHandler{uc: uc}
}

func (h *IdeaHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	protected := auth.Middleware()

	r.Get("/", h.List)
	r.Post("/", protected, h.Create)
	r.Get("/mine", protected, h.ListMine)
	r.Get("/:id", auth.Optional(), h.Get)
	r.Put("/:id", protected, h.Update)
	r.Delete("/:id", protected, h.Delete)
}

func (h *IdeaHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateIdeaRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateIdeaInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Visibility:  req.Visibility,
		Skills:      req.Skills,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Idea created", dto.NewIdeaResponse(created))
}

func (h *IdeaHandler) List(c fiber.Ctx) error {
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListPublished(c.Context(), usecase.IdeaListParams{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.NewIdeaResponses(items), response.Meta{Limit: limit, Offset: offset, Count: len(items)})
}

func (h *IdeaHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, offset, err := pageQuery(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID, limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.List(c, dto.NewIdeaResponses(items), response.Meta{Limit: limit, Offset: offset, Count: len(items)})
}

func (h *IdeaHandler) Get(c fiber.Ctx) error {
	ideaID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	it, err := h.uc.Get(c.Context(), middleware.UserID(c), ideaID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewIdeaResponse(it))
}

func (h *IdeaHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ideaID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateIdeaRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.Update(c.Context(), userID, ideaID, usecase.UpdateIdeaInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      req.Status,
		Visibility:  req.Visibility,
		Skills:      req.Skills,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Idea updated", dto.NewIdeaResponse(updated))
}

func (h *IdeaHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	ideaID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), userID, ideaID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Idea deleted", nil)
}
