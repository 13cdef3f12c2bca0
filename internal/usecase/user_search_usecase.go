package usecase

import (
	"context"
	"log"
	"time"

	"ideahub/internal/domain/user"
	"ideahub/internal/search"

	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	minSearchResults   = 5
	searchCacheTTL     = 2 * time.Minute
	// fetched before ranking so relevance can reorder past the SQL order
	searchOverfetch = 4
)

type UserSearchUsecase interface {
	SearchUsers(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]user.SearchHit, error)
}

type UserSearch struct {
	users  user.Repository
	cache  SearchCache
	logger *log.Logger
}

func NewUserSearchUsecase(users user.Repository, cache SearchCache, logger *log.Logger) *UserSearch {
	if logger == nil {
		logger = log.Default()
	}
	return &UserSearch{users: users, cache: cache, logger: logger}
}

// SearchUsers finds other users by username, name, skills and bio, most relevant first.
func (u *UserSearch) SearchUsers(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]user.SearchHit, error) {
	if limit == 0 {
		limit = defaultSearchLimit
	}
	if limit < 0 || limit > maxSearchLimit {
		return nil, ErrInvalidInput
	}
	qctx := search.ProcessQuery(query)
	if qctx.Normalized == "" {
		return nil, ErrInvalidInput
	}

	key := UserSearchCacheKey(qctx.Normalized, limit)
	var hits []user.SearchHit
	cached := false
	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, key, &hits); err == nil && hit {
			u.logger.Printf("[Search] cache HIT key=%s", key)
			cached = true
		}
	}

	if !cached {
		var err error
		hits, err = u.users.Search(ctx, qctx.Variants, limit*searchOverfetch)
		if err != nil {
			u.logger.Printf("[Search] query %q failed: %v", qctx.Normalized, err)
			return nil, ErrInternal
		}
		if len(hits) < minSearchResults {
			if fb := search.FallbackFirstWord(qctx.Normalized); fb != "" && fb != qctx.Normalized {
				more, err := u.users.Search(ctx, search.ProcessQuery(fb).Variants, limit*searchOverfetch)
				if err == nil {
					hits = mergeHits(hits, more)
				}
			}
		}
		hits = rankHits(hits, qctx.Variants)
		if u.cache != nil {
			if err := u.cache.SetJSON(ctx, key, hits, searchCacheTTL); err != nil {
				u.logger.Printf("[Search] cache SET failed key=%s err=%v", key, err)
			}
		}
	}

	out := make([]user.SearchHit, 0, limit)
	for _, h := range hits {
		if h.ID == searcherID {
			continue
		}
		if h.Skills == nil {
			h.Skills = []string{}
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func mergeHits(a, b []user.SearchHit) []user.SearchHit {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	out := make([]user.SearchHit, 0, len(a)+len(b))
	for _, list := range [][]user.SearchHit{a, b} {
		for _, h := range list {
			if _, ok := seen[h.ID]; ok {
				continue
			}
			seen[h.ID] = struct{}{}
			out = append(out, h)
		}
	}
	return out
}

func rankHits(hits []user.SearchHit, variants []string) []user.SearchHit {
	people := make([]search.Person, 0, len(hits))
	for i, h := range hits {
		people = append(people, search.Person{
			OriginalIndex: i,
			ID:            h.ID,
			Username:      deref(h.Username),
			Name:          deref(h.Name),
			Bio:           deref(h.Bio),
			Skills:        h.Skills,
			Completeness:  h.ProfileCompleteness,
		})
	}
	ranked := search.RankPeople(people, variants)

	out := make([]user.SearchHit, 0, len(hits))
	for _, p := range ranked {
		out = append(out, hits[p.OriginalIndex])
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
