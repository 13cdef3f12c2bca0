package repository

import (
	"context"
	"strings"

	"ideahub/internal/database"
	"ideahub/internal/database/postgres"
	"ideahub/internal/domain/matching"
	"ideahub/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, username, bio, image, location, website, COALESCE(profile_completeness, 0), created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

var _ user.Repository = (*PostgresUserRepository)(nil)

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, strings.TrimSpace(username))
	return scanUser(row)
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	skills, err := listTags(ctx, r.db, userSkillTags, id)
	if err != nil {
		return user.Profile{}, err
	}
	industries, err := listTags(ctx, r.db, userIndustryTags, id)
	if err != nil {
		return user.Profile{}, err
	}
	return user.Profile{User: u, Skills: skills, Industries: industries}, nil
}

func (r *PostgresUserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error) {
	out := make([]user.User, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, u user.User) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET name = $2, username = $3, bio = $4, image = $5, location = $6, website = $7, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Name, u.Username, u.Bio, u.Image, u.Location, u.Website,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateCompleteness(ctx context.Context, id uuid.UUID, pct int) error {
	affected, err := r.db.Exec(ctx, `UPDATE users SET profile_completeness = $2 WHERE id = $1`, id, pct)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) ReplaceSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		return replaceTags(ctx, tx, userSkillTags, id, skills)
	})
}

func (r *PostgresUserRepository) ReplaceIndustries(ctx context.Context, id uuid.UUID, industries []string) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		return replaceTags(ctx, tx, userIndustryTags, id, industries)
	})
}

// ListUsersWithSkills ranks users by how many of skills they hold before
// applying limit, so the cut never drops a stronger candidate.
func (r *PostgresUserRepository) ListUsersWithSkills(ctx context.Context, skills []string, excludeID uuid.UUID, limit int) (map[uuid.UUID][]string, error) {
	names := matching.NormalizeSkills(skills)
	if len(names) == 0 {
		return map[uuid.UUID][]string{}, nil
	}
	if limit <= 0 || limit > 2000 {
		limit = 500
	}

	rows, err := r.db.Query(ctx,
		`SELECT us.user_id
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE lower(s.name) = ANY($1)
		   AND us.user_id <> $2
		 GROUP BY us.user_id
		 ORDER BY COUNT(DISTINCT lower(s.name)) DESC, us.user_id ASC
		 LIMIT $3`,
		names, excludeID, limit,
	)
	if err != nil {
		return nil, err
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return listTagsByOwners(ctx, r.db, userSkillTags, ids)
}

// Search returns users whose username, name, bio or a skill contains any of terms.
func (r *PostgresUserRepository) Search(ctx context.Context, terms []string, limit int) ([]user.SearchHit, error) {
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		patterns = append(patterns, "%"+escapeLike(t)+"%")
	}
	if len(patterns) == 0 {
		return []user.SearchHit{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.username, u.bio, u.image, COALESCE(u.profile_completeness, 0)
		 FROM users u
		 WHERE lower(COALESCE(u.username, '')) LIKE ANY($1)
		    OR lower(COALESCE(u.name, '')) LIKE ANY($1)
		    OR lower(COALESCE(u.bio, '')) LIKE ANY($1)
		    OR EXISTS (
		        SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id
		        WHERE us.user_id = u.id AND lower(s.name) LIKE ANY($1)
		    )
		 ORDER BY u.profile_completeness DESC NULLS LAST, u.created_at ASC
		 LIMIT $2`,
		patterns, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.SearchHit, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var h user.SearchHit
		if err := rows.Scan(&h.ID, &h.Name, &h.Username, &h.Bio, &h.Image, &h.ProfileCompleteness); err != nil {
			return nil, err
		}
		out = append(out, h)
		ids = append(ids, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := listTagsByOwners(ctx, r.db, userSkillTags, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].ID]
	}
	return out, nil
}

// ListIDs pages through users by id, starting after afterID.
func (r *PostgresUserRepository) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(ctx,
		`SELECT id
		 FROM users
		 WHERE id > $1
		 ORDER BY id ASC
		 LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Username, &u.Bio, &u.Image, &u.Location, &u.Website, &u.ProfileCompleteness, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanIDs(rows database.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
