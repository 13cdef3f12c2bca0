package dto

import (
	"ideahub/internal/usecase"

	"github.com/google/uuid"
)

type CandidateMatchResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     *string   `json:"name"`
	Username *string   `json:"username"`
	Image    *string   `json:"image"`
	Overlap  []string  `json:"overlap"`
	RawScore int       `json:"raw_score"`
	Score    float64   `json:"score"`
}

type IdeaMatchResponse struct {
	Idea     IdeaResponse `json:"idea"`
	Overlap  []string     `json:"overlap"`
	RawScore int          `json:"raw_score"`
	Score    float64      `json:"score"`
}

func NewCandidateMatchResponses(items []usecase.CandidateMatchItem) []CandidateMatchResponse {
	out := make([]CandidateMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CandidateMatchResponse{
			UserID:   it.UserID,
			Name:     it.Name,
			Username: it.Username,
			Image:    it.Image,
			Overlap:  nonNil(it.Overlap),
			RawScore: it.RawScore,
			Score:    it.Score,
		})
	}
	return out
}

func NewIdeaMatchResponses(items []usecase.IdeaMatchItem) []IdeaMatchResponse {
	out := make([]IdeaMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, IdeaMatchResponse{
			Idea:     NewIdeaResponse(it.Idea),
			Overlap:  nonNil(it.Overlap),
			RawScore: it.RawScore,
			Score:    it.Score,
		})
	}
	return out
}
