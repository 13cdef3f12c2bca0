package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/skills", h.List)
	r.Post("/skills", auth.Middleware(), h.Create)
	r.Get("/industries", h.ListIndustries)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context(), c.Query("category"))
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.CreateSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddSkill(c.Context(), req.Name, req.Category)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created successfully", dto.NewSkillResponse(created))
}

func (h *SkillHandler) ListIndustries(c fiber.Ctx) error {
	items, err := h.uc.ListIndustries(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.IndustryResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.IndustryResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
