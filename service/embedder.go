package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/askcse/deptbot-be/types"
)

// Embedder turns text into fixed-dimension vectors. EmbedQuery optionally
// applies lexical expansion and reports which text was actually embedded.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, query string, expand bool) (*types.EmbedQueryResult, error)
}

// queryExpansions maps academic-domain terms to synonyms appended to the
// query before embedding. Keys are matched as substrings of the lowercased
// query.
var queryExpansions = map[string][]string{
	"faculty":  {"professor", "teacher", "instructor", "staff", "lecturer"},
	"course":   {"subject", "class", "curriculum", "paper"},
	"research": {"publication", "project", "work", "area", "interest"},
	"phd":      {"doctorate", "doctoral", "research scholar", "ph.d"},
	"mtech":    {"m.tech", "masters", "postgraduate"},
	"btech":    {"b.tech", "bachelor", "undergraduate"},
	"contact":  {"email", "phone", "office", "reach"},
	"teach":    {"teaching", "teaches", "instructor", "course"},
	"lab":      {"laboratory", "research group", "facility"},
}

// ExpandQuery appends domain synonyms for every expansion key present in
// the query. Keys are applied in sorted order so expansion is deterministic.
func ExpandQuery(query string) string {
	queryLower := strings.ToLower(query)

	keys := make([]string, 0, len(queryExpansions))
	for key := range queryExpansions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	expanded := []string{query}
	for _, key := range keys {
		if strings.Contains(queryLower, key) {
			expanded = append(expanded, queryExpansions[key]...)
		}
	}
	return strings.Join(expanded, " ")
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	specialsRe   = regexp.MustCompile(`[^\w\s.,!?;:()\-]`)
)

// PreprocessText normalizes text before embedding: collapse whitespace and
// strip characters outside words, spaces and basic punctuation.
func PreprocessText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialsRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
