package dto

import (
	"ideahub/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category *string   `json:"category"`
}

type IndustryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}
