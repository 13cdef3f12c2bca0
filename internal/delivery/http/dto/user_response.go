package dto

import (
	"time"

	"ideahub/internal/domain/completeness"
	"ideahub/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email,omitempty"`
	Name                *string   `json:"name"`
	Username            *string   `json:"username"`
	Bio                 *string   `json:"bio"`
	Image               *string   `json:"image"`
	Location            *string   `json:"location"`
	Website             *string   `json:"website"`
	Skills              []string  `json:"skills"`
	Industries          []string  `json:"industries"`
	ProfileCompleteness int       `json:"profile_completeness"`
	CompletenessTips    []string  `json:"completeness_tips,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type CompletenessResponse struct {
	Percentage    int      `json:"percentage"`
	Tips          []string `json:"tips"`
	MissingFields []string `json:"missing_fields"`
}

type UserSearchResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                *string   `json:"name"`
	Username            *string   `json:"username"`
	Bio                 *string   `json:"bio"`
	Image               *string   `json:"image"`
	Skills              []string  `json:"skills"`
	ProfileCompleteness int       `json:"profile_completeness"`
}

// NewProfileResponse renders a profile. Email and tips are only shown to the owner.
func NewProfileResponse(p user.Profile, c completeness.Result, owner bool) ProfileResponse {
	res := ProfileResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Username:            p.Username,
		Bio:                 p.Bio,
		Image:               p.Image,
		Location:            p.Location,
		Website:             p.Website,
		Skills:              nonNil(p.Skills),
		Industries:          nonNil(p.Industries),
		ProfileCompleteness: c.Percentage,
		CreatedAt:           p.CreatedAt,
	}
	if owner {
		res.Email = p.Email
		res.CompletenessTips = nonNil(c.Tips)
	}
	return res
}

func NewCompletenessResponse(c completeness.Result) CompletenessResponse {
	return CompletenessResponse{Percentage: c.Percentage, Tips: nonNil(c.Tips), MissingFields: nonNil(c.Missing)}
}

func NewUserSearchResponses(hits []user.SearchHit) []UserSearchResponse {
	out := make([]UserSearchResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, UserSearchResponse{
			ID:                  h.ID,
			Name:                h.Name,
			Username:            h.Username,
			Bio:                 h.Bio,
			Image:               h.Image,
			Skills:              nonNil(h.Skills),
			ProfileCompleteness: h.ProfileCompleteness,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
