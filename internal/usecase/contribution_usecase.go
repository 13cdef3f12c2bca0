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

const maxContributionMessage = 1000

type ContributionUsecase interface {
	Request(ctx context.Context, userID, ideaID uuid.UUID, message *string) (idea.Contribution, error)
	ListForIdea(ctx context.Context, requesterID, ideaID uuid.UUID) ([]idea.Contribution, error)
	Decide(ctx context.Context, requesterID, contributionID uuid.UUID, decision string) (idea.Contribution, error)
}

type Contributions struct {
	ideas    repository.IdeaRepository
	repo     repository.ContributionRepository
	notifier Notifier
	logger   *log.Logger
}

func NewContributionUsecase(ideas repository.IdeaRepository, repo repository.ContributionRepository, notifier Notifier, logger *log.Logger) *Contributions {
	if logger == nil {
		logger = log.Default()
	}
	return &Contributions{ideas: ideas, repo: repo, notifier: notifier, logger: logger}
}

func (u *Contributions) Request(ctx context.Context, userID, ideaID uuid.UUID, message *string) (idea.Contribution, error) {
	if userID == uuid.Nil {
		return idea.Contribution{}, ErrUnauthorized
	}
	message = trimOptional(message)
	if message != nil && len([]rune(*message)) > maxContributionMessage {
		return idea.Contribution{}, ErrInvalidInput
	}

	it, err := loadVisibleIdea(ctx, u.ideas, u.logger, userID, ideaID)
	if err != nil {
		return idea.Contribution{}, err
	}
	if it.AuthorID == userID {
		return idea.Contribution{}, ErrForbidden
	}

	c, err := u.repo.Create(ctx, idea.Contribution{
		IdeaID:  ideaID,
		UserID:  userID,
		Message: message,
		Status:  idea.ContributionPending,
	})
	if err != nil {
		return idea.Contribution{}, u.mapErr(err, "request")
	}

	u.notify(it.AuthorID, notification.TypeContributionRequested, c, userID)
	return c, nil
}

func (u *Contributions) ListForIdea(ctx context.Context, requesterID, ideaID uuid.UUID) ([]idea.Contribution, error) {
	if _, err := loadOwnIdea(ctx, u.ideas, u.logger, requesterID, ideaID); err != nil {
		return nil, err
	}
	items, err := u.repo.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, u.mapErr(err, "list")
	}
	return items, nil
}

// Decide moves a pending request to APPROVED or REJECTED. Only the idea's author may decide.
func (u *Contributions) Decide(ctx context.Context, requesterID, contributionID uuid.UUID, decision string) (idea.Contribution, error) {
	if requesterID == uuid.Nil {
		return idea.Contribution{}, ErrUnauthorized
	}
	status, ok := idea.ParseDecision(decision)
	if !ok {
		return idea.Contribution{}, ErrInvalidInput
	}

	c, err := u.repo.GetByID(ctx, contributionID)
	if err != nil {
		return idea.Contribution{}, u.mapErr(err, "get")
	}
	if _, err := loadOwnIdea(ctx, u.ideas, u.logger, requesterID, c.IdeaID); err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			return idea.Contribution{}, ErrContributionNotFound
		}
		return idea.Contribution{}, err
	}
	if c.Status != idea.ContributionPending {
		return idea.Contribution{}, ErrInvalidInput
	}

	updated, err := u.repo.UpdateStatus(ctx, contributionID, status)
	if err != nil {
		return idea.Contribution{}, u.mapErr(err, "update status")
	}

	u.notify(updated.UserID, notification.TypeContributionUpdated, updated, requesterID)
	return updated, nil
}

func (u *Contributions) notify(recipient uuid.UUID, t notification.Type, c idea.Contribution, actorID uuid.UUID) {
	if u.notifier == nil {
		return
	}
	ev := notification.New(t, c.IdeaID, actorID)
	id := c.ID
	ev.ContributionID = &id
	ev.Status = string(c.Status)
	u.notifier.Notify(recipient, ev)
}

func (u *Contributions) mapErr(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return ErrAlreadyExists
	case errors.Is(err, repository.ErrContributionNotFound):
		return ErrContributionNotFound
	case errors.Is(err, repository.ErrIdeaNotFound):
		return ErrIdeaNotFound
	}
	u.logger.Printf("[Contributions] %s failed: %v", op, err)
	return ErrInternal
}
