package repository

import (
	"context"
	"strings"

	"ideahub/internal/database"
	"ideahub/internal/database/postgres"
	"ideahub/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name string, category *string) (skill.Skill, error)
	ListIndustries(ctx context.Context) ([]skill.Industry, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at
		 FROM skills
		 WHERE ($1 = '' OR lower(COALESCE(category, '')) = lower($1))
		 ORDER BY name ASC`,
		strings.TrimSpace(category),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string, category *string) (skill.Skill, error) {
	s := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category)
		 SELECT $1, $2::text, $3
		 WHERE NOT EXISTS (SELECT 1 FROM skills WHERE lower(name) = lower($2::text))
		 RETURNING created_at`,
		s.ID, s.Name, s.Category,
	)
	if err := row.Scan(&s.CreatedAt); err != nil {
		if postgres.IsNoRows(err) || postgres.IsUniqueViolation(err) {
			return skill.Skill{}, ErrAlreadyExists
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ListIndustries(ctx context.Context) ([]skill.Industry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM industries ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Industry, 0)
	for rows.Next() {
		var in skill.Industry
		if err := rows.Scan(&in.ID, &in.Name, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
