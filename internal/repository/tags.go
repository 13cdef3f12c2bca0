package repository

import (
	"context"
	"fmt"

	"ideahub/internal/database"
	"ideahub/internal/domain/matching"

	"github.com/google/uuid"
)

// tagJoin names a tag table and the join table linking it to an owner row.
type tagJoin struct {
	TagTable    string
	JoinTable   string
	OwnerColumn string
	TagColumn   string
}

var (
	userSkillTags    = tagJoin{TagTable: "skills", JoinTable: "user_skills", OwnerColumn: "user_id", TagColumn: "skill_id"}
	userIndustryTags = tagJoin{TagTable: "industries", JoinTable: "user_industries", OwnerColumn: "user_id", TagColumn: "industry_id"}
	ideaSkillTags    = tagJoin{TagTable: "skills", JoinTable: "idea_skills", OwnerColumn: "idea_id", TagColumn: "skill_id"}
)

// replaceTags makes names the complete tag set of owner. Unknown tags are created;
// an existing tag matching case-insensitively is reused.
func replaceTags(ctx context.Context, tx database.Tx, j tagJoin, ownerID uuid.UUID, names []string) error {
	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, j.JoinTable, j.OwnerColumn),
		ownerID,
	); err != nil {
		return err
	}

	for _, name := range matching.CleanSkills(names) {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (id, name)
			 SELECT gen_random_uuid(), $1::text
			 WHERE NOT EXISTS (SELECT 1 FROM %s WHERE lower(name) = lower($1::text))`, j.TagTable, j.TagTable),
			name,
		); err != nil {
			return fmt.Errorf("ensure %s %q: %w", j.TagTable, name, err)
		}

		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (%s, %s)
			 SELECT $1, t.id FROM %s t WHERE lower(t.name) = lower($2)
			 ON CONFLICT DO NOTHING`, j.JoinTable, j.OwnerColumn, j.TagColumn, j.TagTable),
			ownerID, name,
		); err != nil {
			return fmt.Errorf("link %s %q: %w", j.TagTable, name, err)
		}
	}
	return nil
}

func listTags(ctx context.Context, db database.DB, j tagJoin, ownerID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT t.name
		 FROM %s jt
		 JOIN %s t ON t.id = jt.%s
		 WHERE jt.%s = $1
		 ORDER BY t.name ASC`, j.JoinTable, j.TagTable, j.TagColumn, j.OwnerColumn),
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	return database.ScanStrings(rows)
}

// listTagsByOwners loads tag names for many owners in one round trip.
func listTagsByOwners(ctx context.Context, db database.DB, j tagJoin, ownerIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	out := make(map[uuid.UUID][]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT jt.%s, t.name
		 FROM %s jt
		 JOIN %s t ON t.id = jt.%s
		 WHERE jt.%s = ANY($1)
		 ORDER BY jt.%s, t.name ASC`, j.OwnerColumn, j.JoinTable, j.TagTable, j.TagColumn, j.OwnerColumn, j.OwnerColumn),
		ownerIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
