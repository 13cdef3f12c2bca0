package repository

import (
	"context"
	"errors"

	"ideahub/internal/database"
	"ideahub/internal/database/postgres"
	"ideahub/internal/domain/idea"

	"github.com/google/uuid"
)

var ErrContributionNotFound = errors.New("contribution not found")

type ContributionRepository interface {
	Create(ctx context.Context, c idea.Contribution) (idea.Contribution, error)
	GetByID(ctx context.Context, id uuid.UUID) (idea.Contribution, error)
	ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]idea.Contribution, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status idea.ContributionStatus) (idea.Contribution, error)
}

const contributionColumns = `id, idea_id, user_id, message, status, created_at, updated_at`

type PostgresContributionRepository struct {
	db database.DB
}

func NewPostgresContributionRepository(db database.DB) *PostgresContributionRepository {
	return &PostgresContributionRepository{db: db}
}

func (r *PostgresContributionRepository) Create(ctx context.Context, c idea.Contribution) (idea.Contribution, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = idea.ContributionPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO contribution_requests (id, idea_id, user_id, message, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+contributionColumns,
		c.ID, c.IdeaID, c.UserID, c.Message, string(c.Status),
	)
	out, err := scanContribution(row)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return idea.Contribution{}, ErrAlreadyExists
		case postgres.IsForeignKeyViolation(err):
			return idea.Contribution{}, ErrIdeaNotFound
		}
		return idea.Contribution{}, err
	}
	return out, nil
}

func (r *PostgresContributionRepository) GetByID(ctx context.Context, id uuid.UUID) (idea.Contribution, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contributionColumns+` FROM contribution_requests WHERE id = $1`, id)
	out, err := scanContribution(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return idea.Contribution{}, ErrContributionNotFound
		}
		return idea.Contribution{}, err
	}
	return out, nil
}

func (r *PostgresContributionRepository) ListByIdea(ctx context.Context, ideaID uuid.UUID) ([]idea.Contribution, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+contributionColumns+`
		 FROM contribution_requests
		 WHERE idea_id = $1
		 ORDER BY created_at ASC, id ASC`,
		ideaID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]idea.Contribution, 0)
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresContributionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status idea.ContributionStatus) (idea.Contribution, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE contribution_requests
		 SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+contributionColumns,
		id, string(status),
	)
	out, err := scanContribution(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return idea.Contribution{}, ErrContributionNotFound
		}
		return idea.Contribution{}, err
	}
	return out, nil
}

func scanContribution(row database.Row) (idea.Contribution, error) {
	var c idea.Contribution
	var status string
	if err := row.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Message, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return idea.Contribution{}, err
	}
	c.Status = idea.ContributionStatus(status)
	return c, nil
}
