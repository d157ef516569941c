package service

import (
	"sort"
	"strings"
	"unicode"

	"github.com/askcse/deptbot-be/config"
	"github.com/askcse/deptbot-be/types"
)

// DefaultRerankConfig is the documented starting point for the hybrid
// scoring weights. The weights sum to 1.0 so final scores stay in [0,1].
var DefaultRerankConfig = config.RerankConfig{
	VectorWeight:     0.4,
	KeywordWeight:    0.25,
	ExactMatchWeight: 0.15,
	LengthWeight:     0.1,
	PositionWeight:   0.1,
	TargetLength:     250,
}

// HybridReranker orders candidates by a weighted combination of vector
// similarity, keyword overlap, exact-phrase match, passage length and
// original rank. Scoring is pure: identical inputs always produce
// identical output.
type HybridReranker struct {
	cfg config.RerankConfig
}

func NewHybridReranker(cfg config.RerankConfig) *HybridReranker {
	if cfg.VectorWeight == 0 && cfg.KeywordWeight == 0 && cfg.ExactMatchWeight == 0 &&
		cfg.LengthWeight == 0 && cfg.PositionWeight == 0 {
		cfg = DefaultRerankConfig
	}
	if cfg.TargetLength <= 0 {
		cfg.TargetLength = DefaultRerankConfig.TargetLength
	}
	return &HybridReranker{cfg: cfg}
}

// Rerank scores every candidate, sorts by final score descending with ties
// broken by ascending original position, and truncates to topK. An empty
// candidate set returns an empty result without scoring.
func (r *HybridReranker) Rerank(query string, candidates []types.SearchCandidate, topK int) []types.ScoredResult {
	if len(candidates) == 0 {
		return []types.ScoredResult{}
	}

	queryNorm := normalizeText(query)
	queryTokens := tokenSet(queryNorm)

	results := make([]types.ScoredResult, len(candidates))
	for i, c := range candidates {
		breakdown := r.score(queryNorm, queryTokens, c)
		results[i] = types.ScoredResult{
			SearchCandidate: c,
			FinalScore:      r.combine(breakdown),
			ScoreBreakdown:  breakdown,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].Position < results[j].Position
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// score computes the per-component breakdown, each value in [0,1].
func (r *HybridReranker) score(queryNorm string, queryTokens map[string]struct{}, c types.SearchCandidate) types.ScoreBreakdown {
	textNorm := normalizeText(c.Content)

	return types.ScoreBreakdown{
		Vector:     clamp01(c.VectorScore),
		Keyword:    keywordOverlap(queryTokens, textNorm),
		ExactMatch: exactMatch(queryNorm, textNorm),
		Length:     r.lengthScore(c.Content),
		Position:   1.0 / float64(1+c.Position),
	}
}

func (r *HybridReranker) combine(b types.ScoreBreakdown) float64 {
	return b.Vector*r.cfg.VectorWeight +
		b.Keyword*r.cfg.KeywordWeight +
		b.ExactMatch*r.cfg.ExactMatchWeight +
		b.Length*r.cfg.LengthWeight +
		b.Position*r.cfg.PositionWeight
}

// keywordOverlap is the fraction of query tokens present in the text.
func keywordOverlap(queryTokens map[string]struct{}, textNorm string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	textTokens := tokenSet(textNorm)
	matched := 0
	for token := range queryTokens {
		if _, ok := textTokens[token]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// exactMatch returns 1 when the whole normalized query appears verbatim in
// the text. It catches exact-name lookups that weak embeddings miss.
func exactMatch(queryNorm, textNorm string) float64 {
	if queryNorm == "" {
		return 0
	}
	if strings.Contains(textNorm, queryNorm) {
		return 1
	}
	return 0
}

// lengthScore is an inverted-U peaking at the configured target word count:
// very short passages carry little information, very long ones dilute it.
func (r *HybridReranker) lengthScore(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	target := float64(r.cfg.TargetLength)
	w := float64(words)
	if w <= target {
		return w / target
	}
	return target / w
}

// normalizeText lowercases and strips punctuation so token comparison and
// substring matching are case- and punctuation-insensitive.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(normalized string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(normalized) {
		tokens[t] = struct{}{}
	}
	return tokens
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
