package search

import (
	"strings"
	"unicode"
)

const maxVariants = 8

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lower-cases input and keeps letters, digits, spaces and the
// punctuation that appears in handles and skill names such as "c++" or "node.js".
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case strings.ContainsRune("+#.-_", r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	return strings.TrimPrefix(out, "@")
}

func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	// "fullstack" -> "full stack"
	words := strings.Fields(normalized)
	if len(words) == 1 {
		for k, syns := range Synonyms {
			if !strings.Contains(k, " ") || strings.ReplaceAll(k, " ", "") != words[0] {
				continue
			}
			add(k)
			for _, syn := range syns {
				add(syn)
			}
			break
		}
	}

	if len(words) > 1 {
		for _, w := range words {
			for _, syn := range GetSynonyms(w) {
				add(strings.Replace(normalized, w, syn, 1))
			}
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	ctx := QueryContext{Original: input}
	ctx.Normalized = NormalizeQuery(input)
	if ctx.Normalized == "" {
		ctx.Variants = []string{}
		return ctx
	}
	ctx.Variants = ExpandQuery(ctx.Normalized)
	return ctx
}

func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
