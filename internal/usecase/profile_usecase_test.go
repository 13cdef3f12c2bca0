package usecase

import (
	"context"
	"errors"
	"testing"

	"ideahub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_GetMe_ComputesCompleteness(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{Name: strPtr("Ana"), Bio: strPtr("Builds things")}, "Go")
	uc := NewProfileUsecase(users, nil, quietLogger)

	v, err := uc.GetMe(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, v.Completeness.Percentage)
	assert.Equal(t, []string{
		"Choose a unique username",
		"Upload a profile photo",
		"Add your location",
		"Add your website or portfolio",
		"Add your industry",
	}, v.Completeness.Tips)
	assert.NotNil(t, v.Profile.Industries)
}

func TestProfile_GetMe_Errors(t *testing.T) {
	users := newFakeUsers()
	uc := NewProfileUsecase(users, nil, quietLogger)

	_, err := uc.GetMe(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = uc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	users.err = errors.New("db down")
	_, err = uc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestProfile_UpdateMe_PersistsCompleteness(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{})
	cache := newMemCache()
	uc := NewProfileUsecase(users, cache, quietLogger)

	v, err := uc.UpdateMe(context.Background(), u.ID, user.ProfileUpdate{
		Name:     strPtr("  Ana Lee "),
		Username: strPtr("ana_lee"),
		Website:  strPtr("https://ana.dev"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lee", *v.Profile.Name)
	assert.Equal(t, 35, v.Completeness.Percentage)
	assert.Equal(t, 35, users.users[u.ID].ProfileCompleteness)
	assert.Contains(t, cache.deleted, userSearchCachePattern)
}

func TestProfile_UpdateMe_DropsCachedCandidateLists(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{})
	cache := newMemCache()
	key := IdeaMatchesCacheKey(uuid.New(), 20)
	require.NoError(t, cache.SetJSON(context.Background(), key, []CandidateMatchItem{{UserID: u.ID, Name: strPtr("Old Name")}}, 0))
	uc := NewProfileUsecase(users, cache, quietLogger)

	_, err := uc.UpdateMe(context.Background(), u.ID, user.ProfileUpdate{Name: strPtr("New Name")})
	require.NoError(t, err)
	assert.False(t, cache.has(key))
	assert.Contains(t, cache.deleted, ideaMatchesPattern)
}

func TestProfile_UpdateMe_BlankClearsField(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{Bio: strPtr("old"), ProfileCompleteness: 20})
	uc := NewProfileUsecase(users, nil, quietLogger)

	v, err := uc.UpdateMe(context.Background(), u.ID, user.ProfileUpdate{Bio: strPtr("   ")})
	require.NoError(t, err)
	assert.Nil(t, v.Profile.Bio)
	assert.Equal(t, 0, v.Completeness.Percentage)
	assert.Equal(t, 0, users.users[u.ID].ProfileCompleteness)
}

func TestProfile_UpdateMe_Validation(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{})
	uc := NewProfileUsecase(users, nil, quietLogger)

	cases := []user.ProfileUpdate{
		{Username: strPtr("a b")},
		{Username: strPtr("x")},
		{Website: strPtr("not a url")},
		{Website: strPtr("ftp://files.example.com")},
	}
	for _, in := range cases {
		_, err := uc.UpdateMe(context.Background(), u.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestProfile_UpdateMe_UsernameTaken(t *testing.T) {
	users := newFakeUsers()
	users.add(user.User{Username: strPtr("ana")})
	me := users.add(user.User{})
	uc := NewProfileUsecase(users, nil, quietLogger)

	_, err := uc.UpdateMe(context.Background(), me.ID, user.ProfileUpdate{Username: strPtr("ANA")})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestProfile_ReplaceSkills_InvalidatesMatches(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{})
	cache := newMemCache()
	_ = cache.SetJSON(context.Background(), UserMatchesCacheKey(u.ID, 20), []int{1}, 0)
	_ = cache.SetJSON(context.Background(), IdeaMatchesCacheKey(uuid.New(), 20), []int{1}, 0)
	uc := NewProfileUsecase(users, cache, quietLogger)

	v, err := uc.ReplaceSkills(context.Background(), u.ID, []string{" Go ", "go", "", "SQL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, v.Profile.Skills)
	assert.Equal(t, 15, v.Completeness.Percentage)
	assert.Empty(t, cache.data)
}

func TestProfile_ReplaceIndustries(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{})
	uc := NewProfileUsecase(users, nil, quietLogger)

	v, err := uc.ReplaceIndustries(context.Background(), u.ID, []string{"Fintech"})
	require.NoError(t, err)
	assert.Equal(t, 5, v.Completeness.Percentage)

	_, err = uc.ReplaceIndustries(context.Background(), u.ID, make([]string, maxProfileTags+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfile_GetByUsername(t *testing.T) {
	users := newFakeUsers()
	users.add(user.User{Username: strPtr("ana")}, "Go")
	uc := NewProfileUsecase(users, nil, quietLogger)

	v, err := uc.GetByUsername(context.Background(), "@Ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, v.Profile.Skills)

	_, err = uc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.GetByUsername(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfile_RefreshCompleteness_SkipsWriteWhenUnchanged(t *testing.T) {
	users := newFakeUsers()
	u := users.add(user.User{Name: strPtr("Ana"), ProfileCompleteness: 15})
	uc := NewProfileUsecase(users, nil, quietLogger)

	pct, err := uc.RefreshCompleteness(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, pct)
	assert.Zero(t, users.completes[u.ID])
}
