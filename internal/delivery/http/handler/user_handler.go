package handler

import (
	"ideahub/internal/delivery/http/dto"
	"ideahub/internal/delivery/http/middleware"
	"ideahub/internal/domain/user"
	"ideahub/internal/pkg/response"
	"ideahub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc       usecase.ProfileUsecase
	search   usecase.UserSearchUsecase
	previews usecase.PreviewUsecase
}

func NewUserHandler(uc usecase.ProfileUsecase, search usecase.UserSearchUsecase, previews usecase.PreviewUsecase) *UserHandler {
	return &UserHandler{uc: uc, search: search, previews: previews}
}

// RegisterRoutes mounts the user routes. Static paths go first so "me" and
// "search" are never taken for a username.
func (h *UserHandler) RegisterRoutes(r fiber.Router, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}
	protected := auth.Middleware()

	r.Get("/me", protected, h.GetMe)
	r.Put("/me", protected, h.UpdateMe)
	r.Put("/me/skills", protected, h.ReplaceSkills)
	r.Put("/me/industries", protected, h.ReplaceIndustries)
	r.Get("/me/completeness", protected, h.Completeness)
	r.Get("/search", protected, h.Search)

	r.Get("/:username", h.GetByUsername)
	r.Get("/:username/website-preview", h.WebsitePreview)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view.Profile, view.Completeness, true))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	view, err := h.uc.UpdateMe(c.Context(), userID, user.ProfileUpdate{
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		Image:    req.Image,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated", dto.NewProfileResponse(view.Profile, view.Completeness, true))
}

func (h *UserHandler) ReplaceSkills(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ReplaceSkillsRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	view, err := h.uc.ReplaceSkills(c.Context(), userID, req.Skills)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skills updated", dto.NewProfileResponse(view.Profile, view.Completeness, true))
}

func (h *UserHandler) ReplaceIndustries(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ReplaceIndustriesRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	view, err := h.uc.ReplaceIndustries(c.Context(), userID, req.Industries)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Industries updated", dto.NewProfileResponse(view.Profile, view.Completeness, true))
}

func (h *UserHandler) Completeness(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Completeness(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompletenessResponse(res))
}

func (h *UserHandler) Search(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}

	hits, err := h.search.SearchUsers(c.Context(), userID, c.Query("q"), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSearchResponses(hits))
}

func (h *UserHandler) GetByUsername(c fiber.Ctx) error {
	view, err := h.uc.GetByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view.Profile, view.Completeness, false))
}

func (h *UserHandler) WebsitePreview(c fiber.Ctx) error {
	p, err := h.previews.WebsitePreview(c.Context(), c.Params("username"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}
