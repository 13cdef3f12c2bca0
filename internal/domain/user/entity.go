package user

import (
	"time"

	"ideahub/internal/domain/completeness"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID
	Email               string
	Name                *string
	Username            *string
	Bio                 *string
	Image               *string
	Location            *string
	Website             *string
	ProfileCompleteness int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Profile is a user together with the tag sets shown on their profile page.
type Profile struct {
	User
	Skills     []string
	Industries []string
}

func (p Profile) CompletenessFields() completeness.Fields {
	return completeness.Fields{
		Name:       p.Name,
		Username:   p.Username,
		Bio:        p.Bio,
		Avatar:     p.Image,
		Location:   p.Location,
		Website:    p.Website,
		Skills:     p.Skills,
		Industries: p.Industries,
	}
}

// ProfileUpdate carries a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Username *string
	Bio      *string
	Image    *string
	Location *string
	Website  *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Username == nil && u.Bio == nil && u.Image == nil && u.Location == nil && u.Website == nil
}

// Apply copies the non-nil fields onto usr. Blank strings clear the field.
func (u ProfileUpdate) Apply(usr *User) {
	set := func(dst **string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			*dst = nil
			return
		}
		s := *v
		*dst = &s
	}
	set(&usr.Name, u.Name)
	set(&usr.Username, u.Username)
	set(&usr.Bio, u.Bio)
	set(&usr.Image, u.Image)
	set(&usr.Location, u.Location)
	set(&usr.Website, u.Website)
}

// SearchHit is a lightweight row returned by user search.
type SearchHit struct {
	ID                  uuid.UUID
	Name                *string
	Username            *string
	Bio                 *string
	Image               *string
	ProfileCompleteness int
	Skills              []string
}
