// Package similarity provides pure vector-math utilities for searching
// precomputed chunk embeddings.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mraso/portfolio/internal/models"
)

// ErrVectorLengthMismatch indicates two vectors have different dimensions.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")

// Default search parameters.
const (
	DefaultTopK      = 5
	DefaultThreshold = 0.7
)

// ChunkScore pairs an embedded chunk with its similarity to a query.
type ChunkScore struct {
	Chunk models.EmbeddingRecord `json:"chunk"`
	Score float64                `json:"score"`
}

// Embedder converts text to an embedding vector. The query side of
// SearchByText is the only place embeddings are produced at runtime;
// corpus vectors are always precomputed.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Cosine computes cosine similarity between two vectors of equal length.
// Returns 0 when either vector has zero magnitude, avoiding NaN.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrVectorLengthMismatch, len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0, nil
	}
	return dot / den, nil
}

// FindSimilarChunks scores every candidate against the query embedding,
// drops scores below threshold, and returns the topK best in descending
// order. Ties keep input order (stable sort).
func FindSimilarChunks(query []float64, embeddings []models.EmbeddingRecord, topK int, threshold float64) ([]ChunkScore, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	results := make([]ChunkScore, 0, len(embeddings))
	for _, rec := range embeddings {
		score, err := Cosine(query, rec.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score chunk %s: %w", rec.ChunkID, err)
		}
		if score < threshold {
			continue
		}
		results = append(results, ChunkScore{Chunk: rec, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// SearchByText embeds the query text and delegates to FindSimilarChunks.
func SearchByText(ctx context.Context, query string, embeddings []models.EmbeddingRecord, embedder Embedder, topK int, threshold float64) ([]ChunkScore, error) {
	vec, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return FindSimilarChunks(vec, embeddings, topK, threshold)
}

// GroupResultsByRole partitions results by the role identifier in chunk
// metadata, preserving each group's relative order.
func GroupResultsByRole(results []ChunkScore) map[string][]ChunkScore {
	grouped := make(map[string][]ChunkScore)
	for _, r := range results {
		roleID := r.Chunk.Metadata.RoleID
		grouped[roleID] = append(grouped[roleID], r)
	}
	return grouped
}

// GroupedRoleIDs returns the role identifiers of results in order of
// first appearance. Pairs with GroupResultsByRole, whose map loses the
// result ordering.
func GroupedRoleIDs(results []ChunkScore) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range results {
		roleID := r.Chunk.Metadata.RoleID
		if !seen[roleID] {
			seen[roleID] = true
			ids = append(ids, roleID)
		}
	}
	return ids
}

// TopChunkPerRole keeps the highest-scoring chunk per role. Input is
// expected score-descending (as produced by FindSimilarChunks), so the
// first member of each group is its maximum. The output is sorted
// descending by that chunk's score.
func TopChunkPerRole(results []ChunkScore) []ChunkScore {
	grouped := GroupResultsByRole(results)

	top := make([]ChunkScore, 0, len(grouped))
	for _, chunks := range grouped {
		if len(chunks) > 0 {
			top = append(top, chunks[0])
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Score > top[j].Score
	})
	return top
}

// AverageSimilarity returns the arithmetic mean of result scores, 0 for
// empty input.
func AverageSimilarity(results []ChunkScore) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return sum / float64(len(results))
}

// FormatScore renders a similarity score as a percentage, e.g. "87.3%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
