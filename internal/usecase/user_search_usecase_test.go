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

func TestUserSearch_RanksAndExcludesSearcher(t *testing.T) {
	users := newFakeUsers()
	me := users.add(user.User{Username: strPtr("gopher_me")}, "Go")
	bio := users.add(user.User{Username: strPtr("zed"), Bio: strPtr("I write go daily"), ProfileCompleteness: 100})
	handle := users.add(user.User{Username: strPtr("go")})
	skilled := users.add(user.User{Username: strPtr("mia")}, "Go")
	uc := NewUserSearchUsecase(users, newMemCache(), quietLogger)

	got, err := uc.SearchUsers(context.Background(), me.ID, "Golang", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, handle.ID, got[0].ID)
	assert.Equal(t, skilled.ID, got[1].ID)
	assert.Equal(t, bio.ID, got[2].ID)
	assert.NotNil(t, got[2].Skills)
	assert.Equal(t, []string{"golang", "go"}, users.searches[0])
}

func TestUserSearch_CachesRankedResults(t *testing.T) {
	users := newFakeUsers()
	users.add(user.User{Username: strPtr("ana")})
	cache := newMemCache()
	uc := NewUserSearchUsecase(users, cache, quietLogger)

	first, err := uc.SearchUsers(context.Background(), uuid.Nil, "ana", 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	users.err = errors.New("db down")
	second, err := uc.SearchUsers(context.Background(), uuid.Nil, "  ANA ", 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUserSearch_FallsBackToFirstWord(t *testing.T) {
	users := newFakeUsers()
	ana := users.add(user.User{Name: strPtr("Ana Lee")})
	uc := NewUserSearchUsecase(users, nil, quietLogger)

	got, err := uc.SearchUsers(context.Background(), uuid.Nil, "ana designer", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ana.ID, got[0].ID)
	assert.Len(t, users.searches, 2)
}

func TestUserSearch_Validation(t *testing.T) {
	uc := NewUserSearchUsecase(newFakeUsers(), nil, quietLogger)

	_, err := uc.SearchUsers(context.Background(), uuid.Nil, "  ?! ", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.SearchUsers(context.Background(), uuid.Nil, "go", maxSearchLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
