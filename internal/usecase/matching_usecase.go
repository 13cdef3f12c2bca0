package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"ideahub/internal/domain/idea"
	"ideahub/internal/domain/matching"
	"ideahub/internal/domain/user"
	"ideahub/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 50
)

type CandidateMatchItem struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     *string   `json:"name"`
	Username *string   `json:"username"`
	Image    *string   `json:"image"`
	Overlap  []string  `json:"overlap"`
	RawScore int       `json:"raw_score"`
	Score    float64   `json:"score"`
}

type IdeaMatchItem struct {
	Idea     idea.Idea `json:"idea"`
	Overlap  []string  `json:"overlap"`
	RawScore int       `json:"raw_score"`
	Score    float64   `json:"score"`
}

type MatchingUsecase interface {
	MatchCandidatesForIdea(ctx context.Context, requesterID, ideaID uuid.UUID, limit int) ([]CandidateMatchItem, error)
	MatchIdeasForUser(ctx context.Context, userID uuid.UUID, limit int) ([]IdeaMatchItem, error)
}

type MatchingOptions struct {
	CacheTTL      time.Duration
	CandidatePool int
}

type Matching struct {
	users  user.Repository
	ideas  repository.IdeaRepository
	cache  SearchCache
	opts   MatchingOptions
	logger *log.Logger
}

func NewMatchingUsecase(users user.Repository, ideas repository.IdeaRepository, cache SearchCache, opts MatchingOptions, logger *log.Logger) *Matching {
	if logger == nil {
		logger = log.Default()
	}
	if opts.CandidatePool <= 0 {
		opts.CandidatePool = 500
	}
	return &Matching{users: users, ideas: ideas, cache: cache, opts: opts, logger: logger}
}

// MatchCandidatesForIdea ranks users against the idea's required skills. Only
// the author may ask; the author is never a candidate.
func (u *Matching) MatchCandidatesForIdea(ctx context.Context, requesterID, ideaID uuid.UUID, limit int) ([]CandidateMatchItem, error) {
	if requesterID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit = matchLimit(limit)

	it, err := u.ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, ErrIdeaNotFound
		}
		u.logger.Printf("[Matching] load idea=%s failed: %v", ideaID, err)
		return nil, ErrInternal
	}
	if !it.VisibleTo(requesterID) {
		return nil, ErrIdeaNotFound
	}
	if it.AuthorID != requesterID {
		return nil, ErrForbidden
	}

	key := IdeaMatchesCacheKey(ideaID, limit)
	var cached []CandidateMatchItem
	if u.getCached(ctx, key, &cached) {
		return cached, nil
	}

	pool, err := u.users.ListUsersWithSkills(ctx, it.Skills, it.AuthorID, u.opts.CandidatePool)
	if err != nil {
		u.logger.Printf("[Matching] load candidates idea=%s failed: %v", ideaID, err)
		return nil, ErrInternal
	}
	candidates := make([]matching.Candidate, 0, len(pool))
	for id, skills := range pool {
		if id == it.AuthorID {
			continue
		}
		candidates = append(candidates, matching.Candidate{UserID: id, Skills: skills})
	}

	matches := matching.MatchCandidates(it.Skills, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.UserID)
	}
	people, err := u.users.ListByIDs(ctx, ids)
	if err != nil {
		u.logger.Printf("[Matching] load users failed: %v", err)
		return nil, ErrInternal
	}
	byID := make(map[uuid.UUID]user.User, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	out := make([]CandidateMatchItem, 0, len(matches))
	for _, m := range matches {
		p := byID[m.UserID]
		out = append(out, CandidateMatchItem{
			UserID:   m.UserID,
			Name:     p.Name,
			Username: p.Username,
			Image:    p.Image,
			Overlap:  m.Overlap,
			RawScore: m.RawScore,
			Score:    m.Score,
		})
	}

	u.setCached(ctx, key, out)
	return out, nil
}

// MatchIdeasForUser ranks listed ideas by other authors against the user's skills.
func (u *Matching) MatchIdeasForUser(ctx context.Context, userID uuid.UUID, limit int) ([]IdeaMatchItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit = matchLimit(limit)

	key := UserMatchesCacheKey(userID, limit)
	var cached []IdeaMatchItem
	if u.getCached(ctx, key, &cached) {
		return cached, nil
	}

	var (
		profile user.Profile
		pool    []idea.Idea
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = u.users.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = u.ideas.ListMatchPool(gctx, userID, u.opts.CandidatePool)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.logger.Printf("[Matching] load pool user=%s failed: %v", userID, err)
		return nil, ErrInternal
	}

	byID := make(map[uuid.UUID]idea.Idea, len(pool))
	candidates := make([]matching.IdeaCandidate, 0, len(pool))
	for _, it := range pool {
		if !it.Listed() && it.AuthorID != userID {
			continue
		}
		byID[it.ID] = it
		candidates = append(candidates, matching.IdeaCandidate{IdeaID: it.ID, Skills: it.Skills})
	}

	matches := matching.MatchIdeas(profile.Skills, candidates)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]IdeaMatchItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, IdeaMatchItem{
			Idea:     byID[m.IdeaID],
			Overlap:  m.Overlap,
			RawScore: m.RawScore,
			Score:    m.Score,
		})
	}

	u.setCached(ctx, key, out)
	return out, nil
}

func (u *Matching) getCached(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	if err == nil && hit {
		u.logger.Printf("[Matching] cache HIT key=%s", key)
		return true
	}
	u.logger.Printf("[Matching] cache MISS key=%s", key)
	return false
}

func (u *Matching) setCached(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, value, u.opts.CacheTTL); err != nil {
		u.logger.Printf("[Matching] cache SET failed key=%s err=%v", key, err)
	}
}

// matchLimit falls back to the default for non-positive values and caps the rest.
func matchLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultMatchLimit
	case limit > maxMatchLimit:
		return maxMatchLimit
	}
	return limit
}
