package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"ideahub/internal/domain/user"
	"ideahub/internal/infrastructure/preview"
)

const previewCacheTTL = 6 * time.Hour

type PreviewFetcher interface {
	Fetch(ctx context.Context, rawURL string) (preview.Preview, error)
}

type PreviewUsecase interface {
	WebsitePreview(ctx context.Context, username string) (preview.Preview, error)
}

type Preview struct {
	users   user.Repository
	fetcher PreviewFetcher
	cache   SearchCache
	logger  *log.Logger
}

func NewPreviewUsecase(users user.Repository, fetcher PreviewFetcher, cache SearchCache, logger *log.Logger) *Preview {
	if logger == nil {
		logger = log.Default()
	}
	return &Preview{users: users, fetcher: fetcher, cache: cache, logger: logger}
}

// WebsitePreview returns title and description metadata for the website on a user's profile.
func (u *Preview) WebsitePreview(ctx context.Context, username string) (preview.Preview, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return preview.Preview{}, ErrInvalidInput
	}
	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return preview.Preview{}, ErrUserNotFound
		}
		u.logger.Printf("[Preview] load user %q failed: %v", username, err)
		return preview.Preview{}, ErrInternal
	}
	if usr.Website == nil || strings.TrimSpace(*usr.Website) == "" {
		return preview.Preview{}, ErrPreviewUnavailable
	}
	site := strings.TrimSpace(*usr.Website)

	key := WebsitePreviewCacheKey(site)
	if u.cache != nil {
		var cached preview.Preview
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if u.fetcher == nil {
		return preview.Preview{}, ErrPreviewUnavailable
	}
	p, err := u.fetcher.Fetch(ctx, site)
	if err != nil {
		u.logger.Printf("[Preview] fetch %s failed: %v", site, err)
		return preview.Preview{}, ErrPreviewUnavailable
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, p, previewCacheTTL); err != nil {
			u.logger.Printf("[Preview] cache SET failed key=%s err=%v", key, err)
		}
	}
	return p, nil
}
