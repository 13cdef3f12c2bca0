// Package completeness scores how fully a user profile is filled in.
package completeness

import (
	"math"
	"strings"
)

// Fields is the subset of a user profile that contributes to completeness.
// Nil pointers and blank strings count as absent.
type Fields struct {
	Name       *string
	Username   *string
	Bio        *string
	Avatar     *string
	Location   *string
	Website    *string
	Skills     []string
	Industries []string
}

type Result struct {
	Percentage int
	Tips       []string

	// Missing holds the keys of absent fields, aligned with Tips.
	Missing []string
}

type criterion struct {
	Field   string
	Weight  float64
	Tip     string
	Present func(f Fields) bool
}

// weights sum to 100; order is the order tips are emitted in.
var table = []criterion{
	{Field: "name", Weight: 15, Tip: "Add your full name", Present: func(f Fields) bool { return hasText(f.Name) }},
	{Field: "username", Weight: 10, Tip: "Choose a unique username", Present: func(f Fields) bool { return hasText(f.Username) }},
	{Field: "bio", Weight: 20, Tip: "Write a short bio", Present: func(f Fields) bool { return hasText(f.Bio) }},
	{Field: "avatar", Weight: 15, Tip: "Upload a profile photo", Present: func(f Fields) bool { return hasText(f.Avatar) }},
	{Field: "location", Weight: 10, Tip: "Add your location", Present: func(f Fields) bool { return hasText(f.Location) }},
	{Field: "website", Weight: 10, Tip: "Add your website or portfolio", Present: func(f Fields) bool { return hasText(f.Website) }},
	{Field: "skills", Weight: 15, Tip: "Add your skills", Present: func(f Fields) bool { return hasAny(f.Skills) }},
	{Field: "industries", Weight: 5, Tip: "Add your industry", Present: func(f Fields) bool { return hasAny(f.Industries) }},
}

// Score returns the weighted completeness percentage and one tip per missing field.
func Score(f Fields) Result {
	total := 0.0
	tips := make([]string, 0, len(table))
	missing := make([]string, 0, len(table))
	for _, c := range table {
		if c.Present(f) {
			total += c.Weight
			continue
		}
		tips = append(tips, c.Tip)
		missing = append(missing, c.Field)
	}

	pct := int(math.Round(total))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Result{Percentage: pct, Tips: tips, Missing: missing}
}

func totalWeight() float64 {
	sum := 0.0
	for _, c := range table {
		sum += c.Weight
	}
	return sum
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func hasAny(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			return true
		}
	}
	return false
}
