package matching

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchIdeas_Example(t *testing.T) {
	ideaID := uuid.New()
	res := MatchIdeas(
		[]string{"React", "Go", "SQL"},
		[]IdeaCandidate{{IdeaID: ideaID, Skills: []string{"Go", "SQL", "Rust"}}},
	)

	require.Len(t, res, 1)
	assert.Equal(t, ideaID, res[0].IdeaID)
	assert.Equal(t, []string{"Go", "SQL"}, res[0].Overlap)
	assert.Equal(t, 2, res[0].RawScore)
	assert.InDelta(t, 0.667, res[0].Score, 0.001)
}

func TestMatchCandidates_ExcludesZeroOverlapAndSorts(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	res := MatchCandidates(
		[]string{"Go", "Postgres", "Docker", "Redis"},
		[]Candidate{
			{UserID: a, Skills: []string{"Go"}},
			{UserID: b, Skills: []string{"Figma", "Sketch"}},
			{UserID: c, Skills: []string{"go", "docker", "redis"}},
			{UserID: d, Skills: []string{"Postgres", "Go"}},
		},
	)

	require.Len(t, res, 3)
	assert.Equal(t, c, res[0].UserID)
	assert.Equal(t, 3, res[0].RawScore)
	assert.InDelta(t, 0.75, res[0].Score, 1e-9)
	assert.Equal(t, d, res[1].UserID)
	assert.Equal(t, a, res[2].UserID)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
	for _, m := range res {
		assert.NotEqual(t, b, m.UserID)
		assert.Positive(t, m.RawScore)
	}
}

func TestMatchCandidates_EmptyRequiredReturnsEmpty(t *testing.T) {
	res := MatchCandidates(nil, []Candidate{{UserID: uuid.New(), Skills: []string{"Go"}}})
	require.NotNil(t, res)
	assert.Empty(t, res)

	res = MatchCandidates([]string{"  ", ""}, []Candidate{{UserID: uuid.New(), Skills: []string{"Go"}}})
	assert.Empty(t, res)
}

func TestMatchIdeas_EmptyInputs(t *testing.T) {
	assert.Empty(t, MatchIdeas(nil, []IdeaCandidate{{IdeaID: uuid.New(), Skills: []string{"Go"}}}))
	assert.Empty(t, MatchIdeas([]string{"Go"}, nil))
}

func TestMatchCandidates_SkipsMalformed(t *testing.T) {
	id := uuid.New()
	res := MatchCandidates([]string{"Go"}, []Candidate{
		{UserID: uuid.Nil, Skills: []string{"Go"}},
		{UserID: id, Skills: []string{"Go"}},
		{UserID: id, Skills: []string{"Go", "Rust"}},
	})
	require.Len(t, res, 1)
	assert.Equal(t, id, res[0].UserID)
}

func TestMatchCandidates_DuplicateSkillsCountedOnce(t *testing.T) {
	id := uuid.New()
	res := MatchCandidates([]string{"Go", "go ", "GO"}, []Candidate{
		{UserID: id, Skills: []string{"Go", "Go"}},
	})
	require.Len(t, res, 1)
	assert.Equal(t, 1, res[0].RawScore)
	assert.Equal(t, 1.0, res[0].Score)
	assert.Equal(t, []string{"Go"}, res[0].Overlap)
}

func TestMatchCandidates_Deterministic(t *testing.T) {
	required := []string{"Go", "SQL"}
	pool := make([]Candidate, 0, 20)
	for i := 0; i < 20; i++ {
		skills := []string{"Go"}
		if i%3 == 0 {
			skills = append(skills, "SQL")
		}
		pool = append(pool, Candidate{UserID: uuid.New(), Skills: skills})
	}

	first := MatchCandidates(required, pool)
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 5; n++ {
		shuffled := append([]Candidate(nil), pool...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, first, MatchCandidates(required, shuffled))
	}

	for i := 1; i < len(first); i++ {
		if first[i-1].Score == first[i].Score {
			assert.Less(t, first[i-1].UserID.String(), first[i].UserID.String())
		}
	}
}

func TestMatch_Symmetric(t *testing.T) {
	userID, ideaID := uuid.New(), uuid.New()
	ideaSkills := []string{"A", "B"}
	userSkills := []string{"A", "B", "C"}

	byIdea := MatchCandidates(ideaSkills, []Candidate{{UserID: userID, Skills: userSkills}})
	byUser := MatchIdeas(userSkills, []IdeaCandidate{{IdeaID: ideaID, Skills: ideaSkills}})

	require.Len(t, byIdea, 1)
	require.Len(t, byUser, 1)
	assert.Equal(t, byIdea[0].Overlap, byUser[0].Overlap)
	assert.Equal(t, []string{"A", "B"}, byUser[0].Overlap)
	assert.Equal(t, byIdea[0].RawScore, byUser[0].RawScore)
	assert.Equal(t, 1.0, byUser[0].Score)
}

func TestMatchIdeas_OrdersByCoverage(t *testing.T) {
	small, big := uuid.New(), uuid.New()
	res := MatchIdeas([]string{"Go", "SQL"}, []IdeaCandidate{
		{IdeaID: big, Skills: []string{"Go", "SQL", "Rust", "Kafka"}},
		{IdeaID: small, Skills: []string{"Go"}},
	})
	require.Len(t, res, 2)
	assert.Equal(t, small, res[0].IdeaID)
	assert.Equal(t, 1.0, res[0].Score)
	assert.Equal(t, big, res[1].IdeaID)
	assert.Equal(t, 0.5, res[1].Score)
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"node js", "go"}, NormalizeSkills([]string{" Node   JS", "Go", "go", ""}))
	assert.Equal(t, "machine learning", NormalizeSkill("  Machine\tLearning "))
}

func TestCleanSkills(t *testing.T) {
	got := CleanSkills([]string{" Go ", "go", "Machine   Learning", "", "  ", "SQL", "machine learning"})
	assert.Equal(t, []string{"Go", "Machine Learning", "SQL"}, got)
	assert.Empty(t, CleanSkills(nil))
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, []string{"Go", "sql"}, Overlap([]string{"sql", "Go", "React"}, []string{"SQL", "go"}))
	assert.Empty(t, Overlap([]string{"Go"}, nil))
}
