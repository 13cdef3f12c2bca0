package usecase

import (
	"context"
	"errors"
	"log"

	"ideahub/internal/domain/idea"
	"ideahub/internal/domain/notification"
	"ideahub/internal/repository"

	"github.com/google/uuid"
)

// Notifier delivers an event to one user. Delivery is best effort.
type Notifier interface {
	Notify(recipient uuid.UUID, ev notification.Event)
}

type EngagementUsecase interface {
	Bookmark(ctx context.Context, userID, ideaID uuid.UUID) error
	Unbookmark(ctx context.Context, userID, ideaID uuid.UUID) error
	ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error)
	Spark(ctx context.Context, userID, ideaID uuid.UUID) (int, error)
	Unspark(ctx context.Context, userID, ideaID uuid.UUID) (int, error)
}

type Engagement struct {
	ideas    repository.IdeaRepository
	repo     repository.EngagementRepository
	notifier Notifier
	logger   *log.Logger
}

func NewEngagementUsecase(ideas repository.IdeaRepository, repo repository.EngagementRepository, notifier Notifier, logger *log.Logger) *Engagement {
	if logger == nil {
		logger = log.Default()
	}
	return &Engagement{ideas: ideas, repo: repo, notifier: notifier, logger: logger}
}

func (u *Engagement) Bookmark(ctx context.Context, userID, ideaID uuid.UUID) error {
	if _, err := u.visible(ctx, userID, ideaID); err != nil {
		return err
	}
	if _, err := u.repo.AddBookmark(ctx, userID, ideaID); err != nil {
		return u.mapErr(err, "bookmark")
	}
	return nil
}

func (u *Engagement) Unbookmark(ctx context.Context, userID, ideaID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if _, err := u.repo.RemoveBookmark(ctx, userID, ideaID); err != nil {
		return u.mapErr(err, "unbookmark")
	}
	return nil
}

func (u *Engagement) ListBookmarks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit, offset, err := pageParams(limit, offset)
	if err != nil {
		return nil, err
	}
	items, err := u.ideas.ListBookmarkedBy(ctx, userID, limit, offset)
	if err != nil {
		return nil, u.mapErr(err, "list bookmarks")
	}
	return items, nil
}

// Spark records interest and notifies the author the first time a user sparks an idea.
func (u *Engagement) Spark(ctx context.Context, userID, ideaID uuid.UUID) (int, error) {
	it, err := u.visible(ctx, userID, ideaID)
	if err != nil {
		return 0, err
	}
	created, err := u.repo.AddSpark(ctx, userID, ideaID)
	if err != nil {
		return 0, u.mapErr(err, "spark")
	}
	if created && it.AuthorID != userID && u.notifier != nil {
		u.notifier.Notify(it.AuthorID, notification.New(notification.TypeIdeaSparked, ideaID, userID))
	}
	return u.count(ctx, ideaID)
}

func (u *Engagement) Unspark(ctx context.Context, userID, ideaID uuid.UUID) (int, error) {
	if _, err := u.visible(ctx, userID, ideaID); err != nil {
		return 0, err
	}
	if _, err := u.repo.RemoveSpark(ctx, userID, ideaID); err != nil {
		return 0, u.mapErr(err, "unspark")
	}
	return u.count(ctx, ideaID)
}

func (u *Engagement) visible(ctx context.Context, userID, ideaID uuid.UUID) (idea.Idea, error) {
	if userID == uuid.Nil {
		return idea.Idea{}, ErrUnauthorized
	}
	return loadVisibleIdea(ctx, u.ideas, u.logger, userID, ideaID)
}

func (u *Engagement) count(ctx context.Context, ideaID uuid.UUID) (int, error) {
	n, err := u.repo.CountSparks(ctx, ideaID)
	if err != nil {
		return 0, u.mapErr(err, "count sparks")
	}
	return n, nil
}

func (u *Engagement) mapErr(err error, op string) error {
	if errors.Is(err, repository.ErrIdeaNotFound) {
		return ErrIdeaNotFound
	}
	u.logger.Printf("[Engagement] %s failed: %v", op, err)
	return ErrInternal
}
