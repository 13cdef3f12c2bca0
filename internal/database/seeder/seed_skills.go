package seeder

import (
	"context"
	"fmt"

	"ideahub/internal/database"
)

type catalogueItem struct {
	Name     string
	Category string
}

var defaultSkills = []catalogueItem{
	{Name: "Go", Category: "Programming Language"},
	{Name: "Python", Category: "Programming Language"},
	{Name: "JavaScript", Category: "Programming Language"},
	{Name: "TypeScript", Category: "Programming Language"},
	{Name: "Rust", Category: "Programming Language"},
	{Name: "React", Category: "Frontend"},
	{Name: "Vue", Category: "Frontend"},
	{Name: "Node.js", Category: "Backend"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "Redis", Category: "Database"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
	{Name: "GCP", Category: "Cloud"},
	{Name: "Machine Learning", Category: "Data"},
	{Name: "UI Design", Category: "Design"},
	{Name: "UX Research", Category: "Design"},
	{Name: "Product Management", Category: "Product"},
	{Name: "Marketing", Category: "Business"},
	{Name: "Fundraising", Category: "Business"},
}

var defaultIndustries = []string{
	"Fintech", "Healthcare", "Education", "E-commerce", "Climate",
	"Media", "Gaming", "Developer Tools", "Logistics", "Social Impact",
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range defaultSkills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skills (id, name, category)
				 SELECT gen_random_uuid(), $1::text, $2::text
				 WHERE NOT EXISTS (SELECT 1 FROM skills WHERE lower(name) = lower($1::text))`,
				it.Name, it.Category,
			); err != nil {
				return fmt.Errorf("skill %q: %w", it.Name, err)
			}
		}
		return nil
	})
}

type IndustriesSeeder struct{}

func (IndustriesSeeder) Name() string { return "industries" }

func (IndustriesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "industries", "id", "name"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range defaultIndustries {
			if _, err := tx.Exec(ctx,
				`INSERT INTO industries (id, name)
				 SELECT gen_random_uuid(), $1::text
				 WHERE NOT EXISTS (SELECT 1 FROM industries WHERE lower(name) = lower($1::text))`,
				name,
			); err != nil {
				return fmt.Errorf("industry %q: %w", name, err)
			}
		}
		return nil
	})
}
