// ABOUTME: Semantic similarity support for the relevance scorer
// ABOUTME: Blends embedding cosine similarity into the keyword score when available

package relevance

import (
	"context"
	"math"
	"strings"
)

// semanticContentLimit bounds how much body text feeds the embedding.
const semanticContentLimit = 500

// semanticSimilarity embeds the query and the candidate content and
// returns their cosine similarity on a 0-100 scale. The title is doubled
// to weigh it above the body. Returns ok=false when the embedder fails,
// in which case the keyword score stands alone.
func (s *Scorer) semanticSimilarity(ctx context.Context, query, title, body string) (float64, bool) {
	if len(body) > semanticContentLimit {
		body = body[:semanticContentLimit]
	}
	content := strings.TrimSpace(title + " " + title + " " + body)
	if content == "" {
		return 0, false
	}

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil || len(queryVec) == 0 {
		return 0, false
	}

	contentVec, err := s.embedder.EmbedText(ctx, content)
	if err != nil || len(contentVec) == 0 {
		return 0, false
	}

	similarity := cosineSimilarity(queryVec, contentVec)

	score := similarity * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, true
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
