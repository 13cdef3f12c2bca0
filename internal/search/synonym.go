package search

var Synonyms = map[string][]string{
	"golang":     {"go"},
	"js":         {"javascript"},
	"ts":         {"typescript"},
	"frontend":   {"front end", "react", "ui"},
	"backend":    {"back end", "server"},
	"ml":         {"machine learning"},
	"ai":         {"artificial intelligence", "machine learning"},
	"designer":   {"ui designer", "product designer", "figma"},
	"postgres":   {"postgresql", "sql"},
	"k8s":        {"kubernetes"},
	"full stack": {"fullstack", "frontend", "backend"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
