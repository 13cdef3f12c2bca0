package dto

// Optional string fields use pointers so an omitted key leaves the stored value
// untouched while "" clears it.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Image    *string `json:"image" validate:"omitempty,max=2048"`
	Location *string `json:"location" validate:"omitempty,max=100"`
	Website  *string `json:"website" validate:"omitempty,max=2048"`
}

type ReplaceSkillsRequest struct {
	Skills []string `json:"skills" validate:"max=50,dive,max=60"`
}

type ReplaceIndustriesRequest struct {
	Industries []string `json:"industries" validate:"max=50,dive,max=60"`
}

type CreateSkillRequest struct {
	Name     string  `json:"name" validate:"required,max=60"`
	Category *string `json:"category" validate:"omitempty,max=60"`
}

type CreateIdeaRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"max=5000"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	Status      string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED draft published"`
	Visibility  string   `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE public private"`
	Skills      []string `json:"skills" validate:"max=20,dive,max=60"`
}

type UpdateIdeaRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=120"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Category    *string   `json:"category" validate:"omitempty,max=60"`
	Status      *string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED draft published"`
	Visibility  *string   `json:"visibility" validate:"omitempty,oneof=PUBLIC PRIVATE public private"`
	Skills      *[]string `json:"skills" validate:"omitempty,max=20,dive,max=60"`
}

type ContributionRequest struct {
	Message *string `json:"message" validate:"omitempty,max=1000"`
}

type DecideContributionRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED approved rejected"`
}
