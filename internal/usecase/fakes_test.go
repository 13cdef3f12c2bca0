package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"ideahub/internal/domain/idea"
	"ideahub/internal/domain/notification"
	"ideahub/internal/domain/skill"
	"ideahub/internal/domain/user"
	"ideahub/internal/repository"

	"github.com/google/uuid"
)

var quietLogger = log.New(io.Discard, "", 0)

func strPtr(s string) *string { return &s }

type fakeUsers struct {
	mu         sync.Mutex
	users      map[uuid.UUID]user.User
	skills     map[uuid.UUID][]string
	industries map[uuid.UUID][]string
	err        error
	searches   [][]string
	completes  map[uuid.UUID]int
	poolLimits []int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users:      map[uuid.UUID]user.User{},
		skills:     map[uuid.UUID][]string{},
		industries: map[uuid.UUID][]string{},
		completes:  map[uuid.UUID]int{},
	}
}

func (f *fakeUsers) add(u user.User, skills ...string) user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	f.skills[u.ID] = skills
	return u
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.users {
		if u.Username != nil && strings.EqualFold(*u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) GetProfile(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return user.Profile{User: u, Skills: f.skills[id], Industries: f.industries[id]}, nil
}

func (f *fakeUsers) ListByIDs(_ context.Context, ids []uuid.UUID) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	if u.Username != nil {
		for id, other := range f.users {
			if id != u.ID && other.Username != nil && strings.EqualFold(*other.Username, *u.Username) {
				return user.ErrUsernameTaken
			}
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) UpdateCompleteness(_ context.Context, id uuid.UUID, pct int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ProfileCompleteness = pct
	f.users[id] = u
	f.completes[id]++
	return nil
}

func (f *fakeUsers) ReplaceSkills(_ context.Context, id uuid.UUID, skills []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return user.ErrNotFound
	}
	f.skills[id] = skills
	return nil
}

func (f *fakeUsers) ReplaceIndustries(_ context.Context, id uuid.UUID, industries []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return user.ErrNotFound
	}
	f.industries[id] = industries
	return nil
}

func (f *fakeUsers) ListUsersWithSkills(_ context.Context, skills []string, excludeID uuid.UUID, limit int) (map[uuid.UUID][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.poolLimits = append(f.poolLimits, limit)
	want := map[string]bool{}
	for _, s := range skills {
		want[strings.ToLower(strings.TrimSpace(s))] = true
	}

	type ranked struct {
		id   uuid.UUID
		hits int
	}
	hits := make([]ranked, 0)
	for id, have := range f.skills {
		if id == excludeID {
			continue
		}
		n := 0
		for _, s := range have {
			if want[strings.ToLower(strings.TrimSpace(s))] {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, ranked{id: id, hits: n})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].hits != hits[j].hits {
			return hits[i].hits > hits[j].hits
		}
		return hits[i].id.String() < hits[j].id.String()
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := map[uuid.UUID][]string{}
	for _, h := range hits {
		out[h.id] = f.skills[h.id]
	}
	return out, nil
}

func (f *fakeUsers) Search(_ context.Context, terms []string, limit int) ([]user.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, terms)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]user.SearchHit, 0)
	for id, u := range f.users {
		hay := strings.ToLower(deref(u.Username) + " " + deref(u.Name) + " " + deref(u.Bio) + " " + strings.Join(f.skills[id], " "))
		for _, t := range terms {
			if strings.Contains(hay, strings.ToLower(t)) {
				out = append(out, user.SearchHit{ID: id, Name: u.Name, Username: u.Username, Bio: u.Bio, ProfileCompleteness: u.ProfileCompleteness, Skills: f.skills[id]})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUsers) ListIDs(_ context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]uuid.UUID, 0, len(f.users))
	for id := range f.users {
		if after == uuid.Nil || id.String() > after.String() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeIdeas struct {
	mu        sync.Mutex
	ideas     map[uuid.UUID]idea.Idea
	bookmarks map[uuid.UUID][]uuid.UUID
	err       error
}

func newFakeIdeas() *fakeIdeas {
	return &fakeIdeas{ideas: map[uuid.UUID]idea.Idea{}, bookmarks: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeIdeas) add(it idea.Idea) idea.Idea {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	if it.Status == "" {
		it.Status = idea.StatusPublished
	}
	if it.Visibility == "" {
		it.Visibility = idea.VisibilityPublic
	}
	f.ideas[it.ID] = it
	return it
}

func (f *fakeIdeas) Create(_ context.Context, it idea.Idea) (idea.Idea, error) {
	if f.err != nil {
		return idea.Idea{}, f.err
	}
	it.CreatedAt = time.Now()
	return f.add(it), nil
}

func (f *fakeIdeas) Update(_ context.Context, it idea.Idea) (idea.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ideas[it.ID]; !ok {
		return idea.Idea{}, repository.ErrIdeaNotFound
	}
	f.ideas[it.ID] = it
	return it, nil
}

func (f *fakeIdeas) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ideas[id]; !ok {
		return repository.ErrIdeaNotFound
	}
	delete(f.ideas, id)
	return nil
}

func (f *fakeIdeas) GetByID(_ context.Context, id uuid.UUID) (idea.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return idea.Idea{}, f.err
	}
	it, ok := f.ideas[id]
	if !ok {
		return idea.Idea{}, repository.ErrIdeaNotFound
	}
	return it, nil
}

func (f *fakeIdeas) filter(keep func(idea.Idea) bool) []idea.Idea {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]idea.Idea, 0)
	for _, it := range f.ideas {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (f *fakeIdeas) ListPublished(_ context.Context, flt repository.IdeaFilter) ([]idea.Idea, error) {
	return f.filter(func(it idea.Idea) bool {
		return it.Listed() && (flt.Category == "" || (it.Category != nil && strings.EqualFold(*it.Category, flt.Category)))
	}), nil
}

func (f *fakeIdeas) ListByAuthor(_ context.Context, authorID uuid.UUID, _, _ int) ([]idea.Idea, error) {
	return f.filter(func(it idea.Idea) bool { return it.AuthorID == authorID }), nil
}

func (f *fakeIdeas) ListBookmarkedBy(_ context.Context, userID uuid.UUID, _, _ int) ([]idea.Idea, error) {
	f.mu.Lock()
	marked := map[uuid.UUID]bool{}
	for _, id := range f.bookmarks[userID] {
		marked[id] = true
	}
	f.mu.Unlock()
	return f.filter(func(it idea.Idea) bool { return marked[it.ID] }), nil
}

func (f *fakeIdeas) ListMatchPool(_ context.Context, viewerID uuid.UUID, _ int) ([]idea.Idea, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(it idea.Idea) bool { return it.Listed() && it.AuthorID != viewerID }), nil
}

type fakeEngagement struct {
	mu        sync.Mutex
	ideas     *fakeIdeas
	sparks    map[[2]uuid.UUID]bool
	bookmarks map[[2]uuid.UUID]bool
}

func newFakeEngagement(ideas *fakeIdeas) *fakeEngagement {
	return &fakeEngagement{ideas: ideas, sparks: map[[2]uuid.UUID]bool{}, bookmarks: map[[2]uuid.UUID]bool{}}
}

func (f *fakeEngagement) AddBookmark(_ context.Context, userID, ideaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]uuid.UUID{userID, ideaID}
	if f.bookmarks[k] {
		return false, nil
	}
	f.bookmarks[k] = true
	f.ideas.mu.Lock()
	f.ideas.bookmarks[userID] = append(f.ideas.bookmarks[userID], ideaID)
	f.ideas.mu.Unlock()
	return true, nil
}

func (f *fakeEngagement) RemoveBookmark(_ context.Context, userID, ideaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]uuid.UUID{userID, ideaID}
	if !f.bookmarks[k] {
		return false, nil
	}
	delete(f.bookmarks, k)
	f.ideas.mu.Lock()
	kept := f.ideas.bookmarks[userID][:0]
	for _, id := range f.ideas.bookmarks[userID] {
		if id != ideaID {
			kept = append(kept, id)
		}
	}
	f.ideas.bookmarks[userID] = kept
	f.ideas.mu.Unlock()
	return true, nil
}

func (f *fakeEngagement) AddSpark(_ context.Context, userID, ideaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]uuid.UUID{userID, ideaID}
	if f.sparks[k] {
		return false, nil
	}
	f.sparks[k] = true
	return true, nil
}

func (f *fakeEngagement) RemoveSpark(_ context.Context, userID, ideaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]uuid.UUID{userID, ideaID}
	existed := f.sparks[k]
	delete(f.sparks, k)
	return existed, nil
}

func (f *fakeEngagement) CountSparks(_ context.Context, ideaID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.sparks {
		if k[1] == ideaID {
			n++
		}
	}
	return n, nil
}

type fakeContributions struct {
	mu    sync.Mutex
	items map[uuid.UUID]idea.Contribution
}

func newFakeContributions() *fakeContributions {
	return &fakeContributions{items: map[uuid.UUID]idea.Contribution{}}
}

func (f *fakeContributions) Create(_ context.Context, c idea.Contribution) (idea.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.IdeaID == c.IdeaID && it.UserID == c.UserID {
			return idea.Contribution{}, repository.ErrAlreadyExists
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeContributions) GetByID(_ context.Context, id uuid.UUID) (idea.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return idea.Contribution{}, repository.ErrContributionNotFound
	}
	return c, nil
}

func (f *fakeContributions) ListByIdea(_ context.Context, ideaID uuid.UUID) ([]idea.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]idea.Contribution, 0)
	for _, c := range f.items {
		if c.IdeaID == ideaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContributions) UpdateStatus(_ context.Context, id uuid.UUID, status idea.ContributionStatus) (idea.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return idea.Contribution{}, repository.ErrContributionNotFound
	}
	c.Status = status
	f.items[id] = c
	return c, nil
}

type fakeSkills struct {
	items []skill.Skill
	err   error
}

func (f *fakeSkills) ListSkills(context.Context, string) ([]skill.Skill, error) {
	return f.items, f.err
}

func (f *fakeSkills) CreateSkill(_ context.Context, name string, category *string) (skill.Skill, error) {
	if f.err != nil {
		return skill.Skill{}, f.err
	}
	for _, s := range f.items {
		if strings.EqualFold(s.Name, name) {
			return skill.Skill{}, repository.ErrAlreadyExists
		}
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeSkills) ListIndustries(context.Context) ([]skill.Industry, error) {
	return []skill.Industry{}, f.err
}

// memCache is an in-memory SearchCache that supports trailing-* patterns.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type sentEvent struct {
	to uuid.UUID
	ev notification.Event
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *fakeNotifier) Notify(to uuid.UUID, ev notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{to: to, ev: ev})
}
