package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"documind-be/pkg/embedding"
)

type entry struct {
	Content string
	Vector  []float32
}

// Index is an in-memory vector index over text chunks, bound to the
// embedding provider that produced its vectors. Vectors are stored unit
// length so cosine similarity reduces to a dot product.
type Index struct {
	provider embedding.EmbeddingProvider
	entries  []entry
	dim      int
}

// Scored is one search hit.
type Scored struct {
	Content string
	Score   float32
}

func New(provider embedding.EmbeddingProvider) *Index {
	return &Index{provider: provider}
}

// Build embeds every chunk and replaces the index contents. Building over
// zero chunks is a caller bug and fails rather than producing an index that
// can never answer.
func (ix *Index) Build(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		return &BuildError{Chunk: -1, Err: errors.New("no chunks to index")}
	}

	entries := make([]entry, 0, len(chunks))
	dim := 0

	for i, chunk := range chunks {
		vec, err := ix.provider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			return &BuildError{Chunk: i, Err: err}
		}
		if len(vec) == 0 {
			return &BuildError{Chunk: i, Err: errors.New("provider returned empty vector")}
		}
		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			return &BuildError{Chunk: i, Err: fmt.Errorf("dimension mismatch: got %d, want %d", len(vec), dim)}
		}
		entries = append(entries, entry{Content: chunk, Vector: normalize(vec)})
	}

	ix.entries = entries
	ix.dim = dim
	return nil
}

// Search embeds the query and returns the topK most similar chunks,
// best first.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]Scored, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if len(ix.entries) == 0 {
		return nil, nil
	}

	qvec, err := ix.provider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(qvec) != ix.dim {
		return nil, fmt.Errorf("query dimension mismatch: got %d, want %d", len(qvec), ix.dim)
	}
	qvec = normalize(qvec)

	scored := make([]Scored, len(ix.entries))
	for i, e := range ix.entries {
		scored[i] = Scored{Content: e.Content, Score: dot(e.Vector, qvec)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

// Count reports how many chunks are indexed.
func (ix *Index) Count() int {
	return len(ix.entries)
}

// Dimension reports the vector width, 0 for an empty index.
func (ix *Index) Dimension() int {
	return ix.dim
}

// Sample returns up to n chunk texts spread evenly across the index.
func (ix *Index) Sample(n int) []string {
	if n <= 0 || len(ix.entries) == 0 {
		return nil
	}
	if n >= len(ix.entries) {
		out := make([]string, len(ix.entries))
		for i, e := range ix.entries {
			out[i] = e.Content
		}
		return out
	}

	out := make([]string, 0, n)
	stride := float64(len(ix.entries)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, ix.entries[int(float64(i)*stride)].Content)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / magnitude)
	}
	return out
}
