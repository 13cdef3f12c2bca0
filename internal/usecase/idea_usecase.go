package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"ideahub/internal/domain/idea"
	"ideahub/internal/domain/matching"
	"ideahub/internal/repository"

	"github.com/google/uuid"
)

const (
	minTitleLength       = 3
	maxTitleLength       = 120
	maxDescriptionLength = 5000
	maxIdeaSkills        = 20
	defaultPageLimit     = 20
	maxPageLimit         = 50
)

type CreateIdeaInput struct {
	Title       string
	Description string
	Category    *string
	Status      string
	Visibility  string
	Skills      []string
}

// UpdateIdeaInput is a partial update; nil fields are left untouched.
type UpdateIdeaInput struct {
	Title       *string
	Description *string
	Category    *string
	Status      *string
	Visibility  *string
	Skills      *[]string
}

type IdeaListParams struct {
	Category string
	Limit    int
	Offset   int
}

type IdeaUsecase interface {
	Create(ctx context.Context, authorID uuid.UUID, in CreateIdeaInput) (idea.Idea, error)
	Get(ctx context.Context, viewerID, ideaID uuid.UUID) (idea.Idea, error)
	Update(ctx context.Context, requesterID, ideaID uuid.UUID, in UpdateIdeaInput) (idea.Idea, error)
	Delete(ctx context.Context, requesterID, ideaID uuid.UUID) error
	ListPublished(ctx context.Context, params IdeaListParams) ([]idea.Idea, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error)
}

type Ideas struct {
	ideas  repository.IdeaRepository
	cache  SearchCache
	logger *log.Logger
}

func NewIdeaUsecase(ideas repository.IdeaRepository, cache SearchCache, logger *log.Logger) *Ideas {
	if logger == nil {
		logger = log.Default()
	}
	return &Ideas{ideas: ideas, cache: cache, logger: logger}
}

func (u *Ideas) Create(ctx context.Context, authorID uuid.UUID, in CreateIdeaInput) (idea.Idea, error) {
	if authorID == uuid.Nil {
		return idea.Idea{}, ErrUnauthorized
	}

	it := idea.Idea{
		AuthorID:    authorID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    trimOptional(in.Category),
		Status:      idea.StatusDraft,
		Visibility:  idea.VisibilityPublic,
		Skills:      matching.CleanSkills(in.Skills),
	}
	if strings.TrimSpace(in.Status) != "" {
		s, ok := idea.ParseStatus(in.Status)
		if !ok {
			return idea.Idea{}, ErrInvalidInput
		}
		it.Status = s
	}
	if strings.TrimSpace(in.Visibility) != "" {
		v, ok := idea.ParseVisibility(in.Visibility)
		if !ok {
			return idea.Idea{}, ErrInvalidInput
		}
		it.Visibility = v
	}
	if err := validateIdea(it); err != nil {
		return idea.Idea{}, err
	}

	created, err := u.ideas.Create(ctx, it)
	if err != nil {
		u.logger.Printf("[Ideas] create failed author=%s: %v", authorID, err)
		return idea.Idea{}, ErrInternal
	}
	u.invalidate(ctx, created.ID)
	return created, nil
}

func (u *Ideas) Get(ctx context.Context, viewerID, ideaID uuid.UUID) (idea.Idea, error) {
	return loadVisibleIdea(ctx, u.ideas, u.logger, viewerID, ideaID)
}

func (u *Ideas) Update(ctx context.Context, requesterID, ideaID uuid.UUID, in UpdateIdeaInput) (idea.Idea, error) {
	it, err := loadOwnIdea(ctx, u.ideas, u.logger, requesterID, ideaID)
	if err != nil {
		return idea.Idea{}, err
	}

	if in.Title != nil {
		it.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		it.Category = trimOptional(in.Category)
	}
	if in.Status != nil {
		s, ok := idea.ParseStatus(*in.Status)
		if !ok {
			return idea.Idea{}, ErrInvalidInput
		}
		it.Status = s
	}
	if in.Visibility != nil {
		v, ok := idea.ParseVisibility(*in.Visibility)
		if !ok {
			return idea.Idea{}, ErrInvalidInput
		}
		it.Visibility = v
	}
	if in.Skills != nil {
		it.Skills = matching.CleanSkills(*in.Skills)
	}
	if err := validateIdea(it); err != nil {
		return idea.Idea{}, err
	}

	updated, err := u.ideas.Update(ctx, it)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return idea.Idea{}, ErrIdeaNotFound
		}
		u.logger.Printf("[Ideas] update failed idea=%s: %v", ideaID, err)
		return idea.Idea{}, ErrInternal
	}
	u.invalidate(ctx, ideaID)
	return updated, nil
}

func (u *Ideas) Delete(ctx context.Context, requesterID, ideaID uuid.UUID) error {
	if _, err := loadOwnIdea(ctx, u.ideas, u.logger, requesterID, ideaID); err != nil {
		return err
	}
	if err := u.ideas.Delete(ctx, ideaID); err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return ErrIdeaNotFound
		}
		u.logger.Printf("[Ideas] delete failed idea=%s: %v", ideaID, err)
		return ErrInternal
	}
	u.invalidate(ctx, ideaID)
	return nil
}

func (u *Ideas) ListPublished(ctx context.Context, params IdeaListParams) ([]idea.Idea, error) {
	limit, offset, err := pageParams(params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	items, err := u.ideas.ListPublished(ctx, repository.IdeaFilter{
		Category: strings.TrimSpace(params.Category),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		u.logger.Printf("[Ideas] list published failed: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Ideas) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit, offset, err := pageParams(limit, offset)
	if err != nil {
		return nil, err
	}
	items, err := u.ideas.ListByAuthor(ctx, userID, limit, offset)
	if err != nil {
		u.logger.Printf("[Ideas] list by author=%s failed: %v", userID, err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Ideas) invalidate(ctx context.Context, ideaID uuid.UUID) {
	invalidateCache(ctx, u.cache, u.logger, ideaMatchesPrefix+ideaID.String()+":*", userMatchesPattern)
}

// loadVisibleIdea hides drafts and private ideas from everyone but the author.
func loadVisibleIdea(ctx context.Context, ideas repository.IdeaRepository, logger *log.Logger, viewerID, ideaID uuid.UUID) (idea.Idea, error) {
	if ideaID == uuid.Nil {
		return idea.Idea{}, ErrIdeaNotFound
	}
	it, err := ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return idea.Idea{}, ErrIdeaNotFound
		}
		logger.Printf("[Ideas] load idea=%s failed: %v", ideaID, err)
		return idea.Idea{}, ErrInternal
	}
	if !it.VisibleTo(viewerID) {
		return idea.Idea{}, ErrIdeaNotFound
	}
	return it, nil
}

func loadOwnIdea(ctx context.Context, ideas repository.IdeaRepository, logger *log.Logger, requesterID, ideaID uuid.UUID) (idea.Idea, error) {
	if requesterID == uuid.Nil {
		return idea.Idea{}, ErrUnauthorized
	}
	it, err := loadVisibleIdea(ctx, ideas, logger, requesterID, ideaID)
	if err != nil {
		return idea.Idea{}, err
	}
	if it.AuthorID != requesterID {
		return idea.Idea{}, ErrForbidden
	}
	return it, nil
}

func validateIdea(it idea.Idea) error {
	n := len([]rune(it.Title))
	if n < minTitleLength || n > maxTitleLength {
		return ErrInvalidInput
	}
	if len([]rune(it.Description)) > maxDescriptionLength {
		return ErrInvalidInput
	}
	if len(it.Skills) > maxIdeaSkills {
		return ErrInvalidInput
	}
	return nil
}

func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func pageParams(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 || limit > maxPageLimit || offset < 0 {
		return 0, 0, ErrInvalidInput
	}
	return limit, offset, nil
}
