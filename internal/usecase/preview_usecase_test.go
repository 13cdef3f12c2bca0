package usecase

import (
	"context"
	"errors"
	"testing"

	"ideahub/internal/domain/user"
	"ideahub/internal/infrastructure/preview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	p     preview.Preview
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (preview.Preview, error) {
	f.calls++
	if f.err != nil {
		return preview.Preview{}, f.err
	}
	p := f.p
	p.URL = rawURL
	return p, nil
}

func TestPreview_FetchesAndCaches(t *testing.T) {
	users := newFakeUsers()
	users.add(user.User{Username: strPtr("ana"), Website: strPtr("https://ana.dev")})
	fetcher := &fakeFetcher{p: preview.Preview{Title: "Ana"}}
	uc := NewPreviewUsecase(users, fetcher, newMemCache(), quietLogger)

	p, err := uc.WebsitePreview(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Title)
	assert.Equal(t, "https://ana.dev", p.URL)

	_, err = uc.WebsitePreview(context.Background(), "@ana")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestPreview_Unavailable(t *testing.T) {
	users := newFakeUsers()
	users.add(user.User{Username: strPtr("nosite")})
	users.add(user.User{Username: strPtr("broken"), Website: strPtr("https://broken.example")})
	uc := NewPreviewUsecase(users, &fakeFetcher{err: errors.New("timeout")}, nil, quietLogger)

	_, err := uc.WebsitePreview(context.Background(), "nosite")
	assert.ErrorIs(t, err, ErrPreviewUnavailable)

	_, err = uc.WebsitePreview(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrPreviewUnavailable)

	_, err = uc.WebsitePreview(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
