package repository

import (
	"context"

	"ideahub/internal/database"
	"ideahub/internal/database/postgres"

	"github.com/google/uuid"
)

// EngagementRepository stores bookmarks and sparks. Adds and removes are
// idempotent; the bool result reports whether a row changed.
type EngagementRepository interface {
	AddBookmark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error)
	RemoveBookmark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error)
	AddSpark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error)
	RemoveSpark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error)
	CountSparks(ctx context.Context, ideaID uuid.UUID) (int, error)
}

type PostgresEngagementRepository struct {
	db database.DB
}

func NewPostgresEngagementRepository(db database.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

func (r *PostgresEngagementRepository) AddBookmark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error) {
	return r.insertPair(ctx, `INSERT INTO bookmarks (user_id, idea_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, ideaID)
}

func (r *PostgresEngagementRepository) RemoveBookmark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND idea_id = $2`, userID, ideaID)
	return n > 0, err
}

func (r *PostgresEngagementRepository) AddSpark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error) {
	return r.insertPair(ctx, `INSERT INTO sparks (user_id, idea_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, ideaID)
}

func (r *PostgresEngagementRepository) RemoveSpark(ctx context.Context, userID, ideaID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM sparks WHERE user_id = $1 AND idea_id = $2`, userID, ideaID)
	return n > 0, err
}

func (r *PostgresEngagementRepository) CountSparks(ctx context.Context, ideaID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sparks WHERE idea_id = $1`, ideaID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresEngagementRepository) insertPair(ctx context.Context, query string, userID, ideaID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, query, userID, ideaID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return false, ErrIdeaNotFound
		}
		return false, err
	}
	return n > 0, nil
}
