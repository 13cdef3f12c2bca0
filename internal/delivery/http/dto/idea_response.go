package dto

import (
	"time"

	"ideahub/internal/domain/idea"

	"github.com/google/uuid"
)

type IdeaResponse struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    *string   `json:"category"`
	Status      string    `json:"status"`
	Visibility  string    `json:"visibility"`
	Skills      []string  `json:"skills"`
	SparkCount  int       `json:"spark_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContributionResponse struct {
	ID        uuid.UUID `json:"id"`
	IdeaID    uuid.UUID `json:"idea_id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   *string   `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SparkResponse struct {
	IdeaID     uuid.UUID `json:"idea_id"`
	SparkCount int       `json:"spark_count"`
}

func NewIdeaResponse(it idea.Idea) IdeaResponse {
	return IdeaResponse{
		ID:          it.ID,
		AuthorID:    it.AuthorID,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Status:      string(it.Status),
		Visibility:  string(it.Visibility),
		Skills:      nonNil(it.Skills),
		SparkCount:  it.SparkCount,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func NewIdeaResponses(items []idea.Idea) []IdeaResponse {
	out := make([]IdeaResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewIdeaResponse(it))
	}
	return out
}

func NewContributionResponse(c idea.Contribution) ContributionResponse {
	return ContributionResponse{
		ID:        c.ID,
		IdeaID:    c.IdeaID,
		UserID:    c.UserID,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewContributionResponses(items []idea.Contribution) []ContributionResponse {
	out := make([]ContributionResponse, 0, len(items))
	for _, c := range items {
		out = append(out, NewContributionResponse(c))
	}
	return out
}
