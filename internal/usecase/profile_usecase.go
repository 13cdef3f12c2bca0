package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"regexp"
	"strings"

	"ideahub/internal/domain/completeness"
	"ideahub/internal/domain/matching"
	"ideahub/internal/domain/user"

	"github.com/google/uuid"
)

const (
	maxProfileTags = 50
	maxBioLength   = 500
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

type ProfileView struct {
	Profile      user.Profile
	Completeness completeness.Result
}

type ProfileUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	GetByUsername(ctx context.Context, username string) (ProfileView, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in user.ProfileUpdate) (ProfileView, error)
	ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) (ProfileView, error)
	ReplaceIndustries(ctx context.Context, userID uuid.UUID, industries []string) (ProfileView, error)
	Completeness(ctx context.Context, userID uuid.UUID) (completeness.Result, error)
	RefreshCompleteness(ctx context.Context, userID uuid.UUID) (int, error)
}

type Profile struct {
	users  user.Repository
	cache  SearchCache
	logger *log.Logger
}

func NewProfileUsecase(users user.Repository, cache SearchCache, logger *log.Logger) *Profile {
	if logger == nil {
		logger = log.Default()
	}
	return &Profile{users: users, cache: cache, logger: logger}
}

func (u *Profile) GetMe(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	if userID == uuid.Nil {
		return ProfileView{}, ErrUnauthorized
	}
	return u.load(ctx, userID)
}

func (u *Profile) GetByUsername(ctx context.Context, username string) (ProfileView, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return ProfileView{}, ErrInvalidInput
	}
	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		return ProfileView{}, u.mapUserErr(err, "get by username")
	}
	return u.load(ctx, usr.ID)
}

func (u *Profile) UpdateMe(ctx context.Context, userID uuid.UUID, in user.ProfileUpdate) (ProfileView, error) {
	if userID == uuid.Nil {
		return ProfileView{}, ErrUnauthorized
	}
	in = trimUpdate(in)
	if err := validateUpdate(in); err != nil {
		return ProfileView{}, err
	}

	current, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileView{}, u.mapUserErr(err, "get user")
	}
	if in.Empty() {
		return u.load(ctx, userID)
	}

	in.Apply(&current)
	if err := u.users.UpdateProfile(ctx, current); err != nil {
		return ProfileView{}, u.mapUserErr(err, "update profile")
	}
	// candidate lists embed name, username and image
	u.invalidate(ctx, userSearchCachePattern, ideaMatchesPattern)
	return u.refresh(ctx, userID)
}

func (u *Profile) ReplaceSkills(ctx context.Context, userID uuid.UUID, skills []string) (ProfileView, error) {
	if userID == uuid.Nil {
		return ProfileView{}, ErrUnauthorized
	}
	if len(skills) > maxProfileTags {
		return ProfileView{}, ErrInvalidInput
	}
	if err := u.users.ReplaceSkills(ctx, userID, matching.CleanSkills(skills)); err != nil {
		return ProfileView{}, u.mapUserErr(err, "replace skills")
	}
	u.invalidate(ctx, userMatchesPrefix+userID.String()+":*", ideaMatchesPattern, userSearchCachePattern)
	return u.refresh(ctx, userID)
}

func (u *Profile) ReplaceIndustries(ctx context.Context, userID uuid.UUID, industries []string) (ProfileView, error) {
	if userID == uuid.Nil {
		return ProfileView{}, ErrUnauthorized
	}
	if len(industries) > maxProfileTags {
		return ProfileView{}, ErrInvalidInput
	}
	if err := u.users.ReplaceIndustries(ctx, userID, matching.CleanSkills(industries)); err != nil {
		return ProfileView{}, u.mapUserErr(err, "replace industries")
	}
	return u.refresh(ctx, userID)
}

func (u *Profile) Completeness(ctx context.Context, userID uuid.UUID) (completeness.Result, error) {
	v, err := u.GetMe(ctx, userID)
	if err != nil {
		return completeness.Result{}, err
	}
	return v.Completeness, nil
}

// RefreshCompleteness recomputes the score and persists it when it drifted.
func (u *Profile) RefreshCompleteness(ctx context.Context, userID uuid.UUID) (int, error) {
	v, err := u.refresh(ctx, userID)
	if err != nil {
		return 0, err
	}
	return v.Completeness.Percentage, nil
}

func (u *Profile) refresh(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	v, err := u.load(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	if v.Profile.ProfileCompleteness == v.Completeness.Percentage {
		return v, nil
	}
	if err := u.users.UpdateCompleteness(ctx, userID, v.Completeness.Percentage); err != nil {
		return ProfileView{}, u.mapUserErr(err, "update completeness")
	}
	v.Profile.ProfileCompleteness = v.Completeness.Percentage
	return v, nil
}

func (u *Profile) load(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, u.mapUserErr(err, "get profile")
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Industries == nil {
		p.Industries = []string{}
	}
	return ProfileView{Profile: p, Completeness: completeness.Score(p.CompletenessFields())}, nil
}

func (u *Profile) invalidate(ctx context.Context, patterns ...string) {
	invalidateCache(ctx, u.cache, u.logger, patterns...)
}

func (u *Profile) mapUserErr(err error, op string) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, user.ErrUsernameTaken):
		return ErrUsernameTaken
	}
	u.logger.Printf("[Profile] %s failed: %v", op, err)
	return ErrInternal
}

func trimUpdate(in user.ProfileUpdate) user.ProfileUpdate {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.TrimSpace(*p)
		return &s
	}
	in.Name = trim(in.Name)
	in.Username = trim(in.Username)
	in.Bio = trim(in.Bio)
	in.Image = trim(in.Image)
	in.Location = trim(in.Location)
	in.Website = trim(in.Website)
	return in
}

func validateUpdate(in user.ProfileUpdate) error {
	if in.Username != nil && *in.Username != "" && !usernamePattern.MatchString(*in.Username) {
		return ErrInvalidInput
	}
	if in.Bio != nil && len([]rune(*in.Bio)) > maxBioLength {
		return ErrInvalidInput
	}
	if in.Website != nil && *in.Website != "" && !isHTTPURL(*in.Website) {
		return ErrInvalidInput
	}
	return nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func invalidateCache(ctx context.Context, cache SearchCache, logger *log.Logger, patterns ...string) {
	if cache == nil {
		return
	}
	for _, p := range patterns {
		if err := cache.DeleteByPattern(ctx, p); err != nil && logger != nil {
			logger.Printf("[Cache] invalidate pattern=%s err=%v", p, err)
		}
	}
}
