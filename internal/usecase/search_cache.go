package usecase

import (
	"context"
	"time"
)

// SearchCache is the JSON result cache shared by matching, search and previews.
// Implementations must treat an unreachable backend as a miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
