package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"ideahub/internal/domain/skill"
	"ideahub/internal/repository"
)

const maxSkillNameLength = 60

type SkillUsecase interface {
	ListSkills(ctx context.Context, category string) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name string, category *string) (skill.Skill, error)
	ListIndustries(ctx context.Context) ([]skill.Industry, error)
}

type Skill struct {
	repo   repository.SkillRepository
	logger *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{repo: repo, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context, category string) ([]skill.Skill, error) {
	items, err := u.repo.ListSkills(ctx, category)
	if err != nil {
		u.logger.Printf("[Skills] list failed: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, name string, category *string) (skill.Skill, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" || len([]rune(name)) > maxSkillNameLength {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name, trimOptional(category))
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return skill.Skill{}, ErrAlreadyExists
		}
		u.logger.Printf("[Skills] create %q failed: %v", name, err)
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Skill) ListIndustries(ctx context.Context) ([]skill.Industry, error) {
	items, err := u.repo.ListIndustries(ctx)
	if err != nil {
		u.logger.Printf("[Skills] list industries failed: %v", err)
		return nil, ErrInternal
	}
	return items, nil
}
