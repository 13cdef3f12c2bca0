package matching

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Candidate struct {
	UserID uuid.UUID
	Skills []string
}

type CandidateMatch struct {
	UserID   uuid.UUID
	Overlap  []string
	RawScore int
	Score    float64
}

type IdeaCandidate struct {
	IdeaID uuid.UUID
	Skills []string
}

type IdeaMatch struct {
	IdeaID   uuid.UUID
	Overlap  []string
	RawScore int
	Score    float64
}

// MatchCandidates ranks users by how many of the required skills they hold.
// Score is the covered fraction of required; users with no overlap are dropped.
func MatchCandidates(requiredSkills []string, candidates []Candidate) []CandidateMatch {
	out := make([]CandidateMatch, 0)
	required := newSkillSet(requiredSkills)
	if required.len() == 0 || len(candidates) == 0 {
		return out
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		if c.UserID == uuid.Nil {
			continue
		}
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}

		overlap := required.intersect(newSkillSet(c.Skills))
		if len(overlap) == 0 {
			continue
		}
		out = append(out, CandidateMatch{
			UserID:   c.UserID,
			Overlap:  overlap,
			RawScore: len(overlap),
			Score:    ratio(len(overlap), required.len()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].Score, out[j].Score, out[i].RawScore, out[j].RawScore, out[i].UserID, out[j].UserID)
	})
	return out
}

// MatchIdeas ranks ideas by how many of their required skills the user holds.
// The pool must already be restricted to ideas the user may see.
func MatchIdeas(userSkills []string, pool []IdeaCandidate) []IdeaMatch {
	out := make([]IdeaMatch, 0)
	mine := newSkillSet(userSkills)
	if mine.len() == 0 || len(pool) == 0 {
		return out
	}

	seen := make(map[uuid.UUID]struct{}, len(pool))
	for _, it := range pool {
		if it.IdeaID == uuid.Nil {
			continue
		}
		if _, dup := seen[it.IdeaID]; dup {
			continue
		}
		seen[it.IdeaID] = struct{}{}

		required := newSkillSet(it.Skills)
		overlap := mine.intersect(required)
		if len(overlap) == 0 {
			continue
		}
		out = append(out, IdeaMatch{
			IdeaID:   it.IdeaID,
			Overlap:  overlap,
			RawScore: len(overlap),
			Score:    ratio(len(overlap), required.len()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].Score, out[j].Score, out[i].RawScore, out[j].RawScore, out[i].IdeaID, out[j].IdeaID)
	})
	return out
}

// Overlap returns the skills present in both sets, spelled as in a.
func Overlap(a, b []string) []string {
	return newSkillSet(a).intersect(newSkillSet(b))
}

// NormalizeSkill trims, lower-cases and collapses inner whitespace.
func NormalizeSkill(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NormalizeSkills returns the distinct normalized names in first-seen order.
func NormalizeSkills(names []string) []string {
	s := newSkillSet(names)
	out := make([]string, 0, s.len())
	out = append(out, s.keys...)
	return out
}

// CleanSkills drops blanks and case-insensitive duplicates, keeping the first
// spelling of each name with inner whitespace collapsed.
func CleanSkills(names []string) []string {
	s := newSkillSet(names)
	out := make([]string, 0, s.len())
	for _, k := range s.keys {
		out = append(out, strings.Join(strings.Fields(s.display[k]), " "))
	}
	return out
}

type skillSet struct {
	keys    []string
	display map[string]string
}

func newSkillSet(names []string) skillSet {
	s := skillSet{keys: make([]string, 0, len(names)), display: make(map[string]string, len(names))}
	for _, n := range names {
		k := NormalizeSkill(n)
		if k == "" {
			continue
		}
		if _, ok := s.display[k]; ok {
			continue
		}
		s.display[k] = strings.TrimSpace(n)
		s.keys = append(s.keys, k)
	}
	return s
}

func (s skillSet) len() int {
	return len(s.keys)
}

func (s skillSet) intersect(other skillSet) []string {
	keys := make([]string, 0)
	for _, k := range s.keys {
		if _, ok := other.display[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.display[k])
	}
	return out
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func less(si, sj float64, ri, rj int, idi, idj uuid.UUID) bool {
	if si != sj {
		return si > sj
	}
	if ri != rj {
		return ri > rj
	}
	return idi.String() < idj.String()
}
