package retriever

import (
	"context"
	"math"
	"sort"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/embedding"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

// Retriever ranks a subject's chunks against a query by brute-force cosine
// similarity. There is deliberately no index structure here; a full scan over
// a per-subject collection of study notes is cheap and exact.
type Retriever struct {
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func New(embedder embedding.Embedder) *Retriever {
	return &Retriever{
		embedder: embedder,
		logger:   logger_i.NewLogger("Retriever"),
	}
}

// Retrieve returns the topK best-scoring chunks, best first. If the query
// embedding is unavailable the result is empty, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []commonModels.Chunk, topK int) []commonModels.ScoredChunk {
	return r.rank(ctx, query, chunks, topK, false, 0)
}

// RetrieveAboveThreshold additionally drops chunks scoring below minScore.
func (r *Retriever) RetrieveAboveThreshold(ctx context.Context, query string, chunks []commonModels.Chunk, topK int, minScore float64) []commonModels.ScoredChunk {
	return r.rank(ctx, query, chunks, topK, true, minScore)
}

func (r *Retriever) rank(ctx context.Context, query string, chunks []commonModels.Chunk, topK int, hasMin bool, minScore float64) []commonModels.ScoredChunk {
	queryVec, err := r.embedder.Embed(ctx, query, embedding.ModeQuery)
	if err != nil {
		r.logger.Warn("Query embedding unavailable, returning no matches", "error", err)
		return nil
	}

	var scored []commonModels.ScoredChunk
	for _, chunk := range chunks {
		// chunks that never got an embedding are invisible to retrieval
		if len(chunk.Embedding) == 0 {
			continue
		}
		score := CosineSimilarity(queryVec, chunk.Embedding)
		if hasMin && score < minScore {
			continue
		}
		scored = append(scored, commonModels.ScoredChunk{
			Score:    score,
			Text:     chunk.Text,
			Citation: chunk.Citation,
		})
	}

	// ties keep their original index order
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// CosineSimilarity is dot(a,b) / (|a|*|b|), defined as 0.0 when either
// magnitude is zero. Accumulation happens in float64.
func CosineSimilarity(a []float32, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, x := range a {
		magA += float64(x) * float64(x)
	}
	for _, y := range b {
		magB += float64(y) * float64(y)
	}

	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
