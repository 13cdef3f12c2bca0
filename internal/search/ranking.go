package search

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Person is the searchable projection of a user profile.
type Person struct {
	OriginalIndex int
	ID            uuid.UUID
	Username      string
	Name          string
	Bio           string
	Skills        []string
	Completeness  int
}

type PersonScore struct {
	ID           uuid.UUID
	Relevance    float64
	Completeness float64
	FinalScore   float64
}

const maxRelevance = 20

// ComputeRelevance weighs matches by field: username > name > skills > bio.
// Exact hits on username or a skill score higher than substring hits.
func ComputeRelevance(p Person, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	username := strings.ToLower(p.Username)
	name := strings.ToLower(p.Name)
	bio := strings.ToLower(p.Bio)
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, strings.ToLower(strings.TrimSpace(s)))
	}

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		switch {
		case username != "" && username == v:
			score += 10
		case username != "" && strings.HasPrefix(username, v):
			score += 6
		case username != "" && strings.Contains(username, v):
			score += 4
		}
		if name != "" && strings.Contains(name, v) {
			score += 4
		}
		for _, s := range skills {
			if s == v {
				score += 3
				break
			}
			if strings.Contains(s, v) {
				score += 2
				break
			}
		}
		if bio != "" && strings.Contains(bio, v) {
			score += 1
		}
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

// ComputeCompleteness maps a 0..100 percentage onto 0..5.
func ComputeCompleteness(pct int) float64 {
	if pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 5
	}
	return float64(pct) / 20
}

func ScorePerson(p Person, queryVariants []string) PersonScore {
	rel := ComputeRelevance(p, queryVariants)
	comp := ComputeCompleteness(p.Completeness)
	return PersonScore{
		ID:           p.ID,
		Relevance:    rel,
		Completeness: comp,
		FinalScore:   rel*2.0 + comp*0.5,
	}
}

// RankPeople orders people by final score, most relevant first. Ties keep
// their input order.
func RankPeople(people []Person, queryVariants []string) []Person {
	if len(people) == 0 {
		return people
	}

	type scored struct {
		idx   int
		score float64
	}
	all := make([]scored, len(people))
	maxScore := 0.0
	for i := range people {
		s := ScorePerson(people[i], queryVariants).FinalScore
		all[i] = scored{idx: i, score: s}
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return people
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].score > all[j].score
	})

	out := make([]Person, 0, len(people))
	for _, it := range all {
		out = append(out, people[it.idx])
	}
	return out
}
