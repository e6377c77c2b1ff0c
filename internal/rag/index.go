package rag

import (
	"fmt"
	"math"
	"sort"

	"github.com/hirescope/hirescope/internal/model"
	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

// Entry pairs a chunk with its embedding vector.
type Entry struct {
	Chunk  model.Chunk
	Vector []float32
}

// Hit is a query result: a chunk with its cosine similarity to the query.
type Hit struct {
	Chunk model.Chunk
	Score float64
}

type indexEntry struct {
	chunk  model.Chunk
	vector []float64 // L2-normalized copy; never handed back out
}

// Index is an in-memory nearest-neighbor structure over one resume
// generation. Vectors are normalized at build time so cosine similarity is
// a plain dot product at query time. An Index is immutable once built; the
// session layer swaps whole instances instead of mutating one in place.
type Index struct {
	dim     int
	entries []indexEntry
}

// BuildIndex validates and normalizes all entries before constructing the
// index, so a bad entry can never leave a half-populated result behind.
func BuildIndex(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return &Index{}, nil
	}
	dim := len(entries[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("index entry 0 has an empty vector")
	}
	prepared := make([]indexEntry, 0, len(entries))
	for i, entry := range entries {
		if len(entry.Vector) != dim {
			return nil, appErr.Kind(appErr.ErrEmbeddingUnavailable,
				fmt.Errorf("index entry %d has dimension %d, want %d", i, len(entry.Vector), dim))
		}
		prepared = append(prepared, indexEntry{
			chunk:  entry.Chunk,
			vector: normalize(entry.Vector),
		})
	}
	return &Index{dim: dim, entries: prepared}, nil
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

func (idx *Index) Dimension() int {
	if idx == nil {
		return 0
	}
	return idx.dim
}

// Query returns up to k entries ranked by descending cosine similarity,
// ties broken by insertion order. k greater than the index size returns
// everything; k <= 0 is an InvalidQuery error.
func (idx *Index) Query(vector []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, appErr.Kind(appErr.ErrInvalidQuery, fmt.Errorf("k must be positive, got %d", k))
	}
	if idx.Len() == 0 {
		return nil, nil
	}
	if len(vector) != idx.dim {
		return nil, appErr.Kind(appErr.ErrEmbeddingUnavailable,
			fmt.Errorf("query vector has dimension %d, index has %d", len(vector), idx.dim))
	}
	query := normalize(vector)
	hits := make([]Hit, 0, len(idx.entries))
	for _, entry := range idx.entries {
		var dot float64
		for i, v := range entry.vector {
			dot += v * query[i]
		}
		hits = append(hits, Hit{Chunk: entry.chunk, Score: dot})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func normalize(vector []float32) []float64 {
	out := make([]float64, len(vector))
	var norm float64
	for i, v := range vector {
		out[i] = float64(v)
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return out
	}
	inv := 1 / math.Sqrt(norm)
	for i := range out {
		out[i] *= inv
	}
	return out
}
