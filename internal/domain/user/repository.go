package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	UpdateProfile(ctx context.Context, u User) error
	UpdateCompleteness(ctx context.Context, id uuid.UUID, pct int) error
	ReplaceSkills(ctx context.Context, id uuid.UUID, skills []string) error
	ReplaceIndustries(ctx context.Context, id uuid.UUID, industries []string) error
	// ListUsersWithSkills returns the full skill sets of the limit users, other
	// than excludeID, holding the most of skills.
	ListUsersWithSkills(ctx context.Context, skills []string, excludeID uuid.UUID, limit int) (map[uuid.UUID][]string, error)
	Search(ctx context.Context, terms []string, limit int) ([]SearchHit, error)
	ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
}
