package repository

import (
	"context"
	"errors"
	"strings"

	"ideahub/internal/database"
	"ideahub/internal/database/postgres"
	"ideahub/internal/domain/idea"

	"github.com/google/uuid"
)

var (
	ErrIdeaNotFound  = errors.New("idea not found")
	ErrAlreadyExists = errors.New("already exists")
)

type IdeaFilter struct {
	Category string
	Limit    int
	Offset   int
}

type IdeaRepository interface {
	Create(ctx context.Context, it idea.Idea) (idea.Idea, error)
	Update(ctx context.Context, it idea.Idea) (idea.Idea, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (idea.Idea, error)
	ListPublished(ctx context.Context, f IdeaFilter) ([]idea.Idea, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]idea.Idea, error)
	ListBookmarkedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error)
	ListMatchPool(ctx context.Context, viewerID uuid.UUID, limit int) ([]idea.Idea, error)
}

const ideaColumns = `i.id, i.author_id, i.title, COALESCE(i.description, ''), i.category, i.status, i.visibility,
	(SELECT COUNT(*) FROM sparks sp WHERE sp.idea_id = i.id), i.created_at, i.updated_at`

type PostgresIdeaRepository struct {
	db database.DB
}

func NewPostgresIdeaRepository(db database.DB) *PostgresIdeaRepository {
	return &PostgresIdeaRepository{db: db}
}

func (r *PostgresIdeaRepository) Create(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ideas (id, author_id, title, description, category, status, visibility)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.AuthorID, it.Title, it.Description, it.Category, string(it.Status), string(it.Visibility),
		); err != nil {
			return err
		}
		return replaceTags(ctx, tx, ideaSkillTags, it.ID, it.Skills)
	})
	if err != nil {
		return idea.Idea{}, err
	}
	return r.GetByID(ctx, it.ID)
}

func (r *PostgresIdeaRepository) Update(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE ideas
			 SET title = $2, description = $3, category = $4, status = $5, visibility = $6, updated_at = now()
			 WHERE id = $1`,
			it.ID, it.Title, it.Description, it.Category, string(it.Status), string(it.Visibility),
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrIdeaNotFound
		}
		return replaceTags(ctx, tx, ideaSkillTags, it.ID, it.Skills)
	})
	if err != nil {
		return idea.Idea{}, err
	}
	return r.GetByID(ctx, it.ID)
}

func (r *PostgresIdeaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrIdeaNotFound
	}
	return nil
}

func (r *PostgresIdeaRepository) GetByID(ctx context.Context, id uuid.UUID) (idea.Idea, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ideaColumns+` FROM ideas i WHERE i.id = $1`, id)
	it, err := scanIdea(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return idea.Idea{}, ErrIdeaNotFound
		}
		return idea.Idea{}, err
	}
	skills, err := listTags(ctx, r.db, ideaSkillTags, id)
	if err != nil {
		return idea.Idea{}, err
	}
	it.Skills = skills
	return it, nil
}

func (r *PostgresIdeaRepository) ListPublished(ctx context.Context, f IdeaFilter) ([]idea.Idea, error) {
	limit, offset := clampPage(f.Limit, f.Offset)
	category := strings.TrimSpace(f.Category)

	return r.list(ctx,
		`SELECT `+ideaColumns+`
		 FROM ideas i
		 WHERE i.status = 'PUBLISHED' AND i.visibility = 'PUBLIC'
		   AND ($1 = '' OR lower(COALESCE(i.category, '')) = lower($1))
		 ORDER BY i.created_at DESC, i.id ASC
		 LIMIT $2 OFFSET $3`,
		category, limit, offset,
	)
}

func (r *PostgresIdeaRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]idea.Idea, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT `+ideaColumns+`
		 FROM ideas i
		 WHERE i.author_id = $1
		 ORDER BY i.created_at DESC, i.id ASC
		 LIMIT $2 OFFSET $3`,
		authorID, limit, offset,
	)
}

func (r *PostgresIdeaRepository) ListBookmarkedBy(ctx context.Context, userID uuid.UUID, limit, offset int) ([]idea.Idea, error) {
	limit, offset = clampPage(limit, offset)
	return r.list(ctx,
		`SELECT `+ideaColumns+`
		 FROM bookmarks b
		 JOIN ideas i ON i.id = b.idea_id
		 WHERE b.user_id = $1
		   AND ((i.status = 'PUBLISHED' AND i.visibility = 'PUBLIC') OR i.author_id = $1)
		 ORDER BY b.created_at DESC, i.id ASC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
}

// ListMatchPool returns listed ideas by other authors that share at least one
// skill with the viewer, best covered first. Coverage is the share of an
// idea's distinct skills the viewer holds, so limit keeps the top of the
// ranking rather than the newest rows.
func (r *PostgresIdeaRepository) ListMatchPool(ctx context.Context, viewerID uuid.UUID, limit int) ([]idea.Idea, error) {
	if limit <= 0 || limit > 2000 {
		limit = 500
	}

	return r.list(ctx,
		`WITH mine AS (
		     SELECT DISTINCT lower(s.name) AS name
		     FROM user_skills us
		     JOIN skills s ON s.id = us.skill_id
		     WHERE us.user_id = $1
		 ), coverage AS (
		     SELECT isk.idea_id,
		            COUNT(DISTINCT lower(s.name)) AS required,
		            COUNT(DISTINCT lower(s.name)) FILTER (WHERE lower(s.name) IN (SELECT name FROM mine)) AS overlap
		     FROM idea_skills isk
		     JOIN skills s ON s.id = isk.skill_id
		     GROUP BY isk.idea_id
		 )
		 SELECT `+ideaColumns+`
		 FROM ideas i
		 JOIN coverage cv ON cv.idea_id = i.id
		 WHERE i.status = 'PUBLISHED' AND i.visibility = 'PUBLIC'
		   AND i.author_id <> $1
		   AND cv.overlap > 0
		 ORDER BY cv.overlap::float8 / cv.required DESC, cv.overlap DESC, i.id ASC
		 LIMIT $2`,
		viewerID, limit,
	)
}

func (r *PostgresIdeaRepository) list(ctx context.Context, query string, args ...any) ([]idea.Idea, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]idea.Idea, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		it, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
		ids = append(ids, it.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	skills, err := listTagsByOwners(ctx, r.db, ideaSkillTags, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].ID]
		if out[i].Skills == nil {
			out[i].Skills = []string{}
		}
	}
	return out, nil
}

func scanIdea(row database.Row) (idea.Idea, error) {
	var it idea.Idea
	var status, visibility string
	if err := row.Scan(&it.ID, &it.AuthorID, &it.Title, &it.Description, &it.Category, &status, &visibility, &it.SparkCount, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return idea.Idea{}, err
	}
	it.Status = idea.Status(status)
	it.Visibility = idea.Visibility(visibility)
	return it, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
