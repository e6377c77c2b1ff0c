package rag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/model"
	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

func testEntries() []Entry {
	return []Entry{
		{Chunk: model.Chunk{ID: 0, Section: "skills", Text: "Go, Python"}, Vector: []float32{1, 0, 0}},
		{Chunk: model.Chunk{ID: 1, Section: "experience", Text: "Acme Corp"}, Vector: []float32{0, 1, 0}},
		{Chunk: model.Chunk{ID: 2, Section: "education", Text: "BSc"}, Vector: []float32{0, 0, 1}},
	}
}

func TestIndexQuery_IdentityVectorScoresHighest(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	hits, err := idx.Query([]float32{0, 1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	require.Equal(t, 1, hits[0].Chunk.ID)
	require.InDelta(t, 1.0, hits[0].Score, 1e-9)
	require.Less(t, hits[1].Score, hits[0].Score)
}

func TestIndexQuery_KBounds(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	hits, err := idx.Query([]float32{1, 1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	hits, err = idx.Query([]float32{1, 1, 0}, 100)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	_, err = idx.Query([]float32{1, 1, 0}, 0)
	require.ErrorIs(t, err, appErr.ErrInvalidQuery)
}

func TestIndexQuery_DimensionMismatch(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	_, err = idx.Query([]float32{1, 0}, 3)
	require.ErrorIs(t, err, appErr.ErrEmbeddingUnavailable)
}

func TestIndexQuery_EmptyIndex(t *testing.T) {
	idx, err := BuildIndex(nil)
	require.NoError(t, err)
	require.Equal(t, 0, idx.Len())

	hits, err := idx.Query([]float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestIndexQuery_TiesKeepInsertionOrder(t *testing.T) {
	entries := []Entry{
		{Chunk: model.Chunk{ID: 0}, Vector: []float32{1, 0}},
		{Chunk: model.Chunk{ID: 1}, Vector: []float32{1, 0}},
		{Chunk: model.Chunk{ID: 2}, Vector: []float32{1, 0}},
	}
	idx, err := BuildIndex(entries)
	require.NoError(t, err)

	hits, err := idx.Query([]float32{1, 0}, 3)
	require.NoError(t, err)
	for i, hit := range hits {
		require.Equal(t, i, hit.Chunk.ID)
	}
}

func TestBuildIndex_RejectsMixedDimensions(t *testing.T) {
	entries := []Entry{
		{Chunk: model.Chunk{ID: 0}, Vector: []float32{1, 0, 0}},
		{Chunk: model.Chunk{ID: 1}, Vector: []float32{1, 0}},
	}
	_, err := BuildIndex(entries)
	require.ErrorIs(t, err, appErr.ErrEmbeddingUnavailable)
}

func TestIndexQuery_ScaleInvariant(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	small, err := idx.Query([]float32{0.001, 0.002, 0}, 3)
	require.NoError(t, err)
	big, err := idx.Query([]float32{1000, 2000, 0}, 3)
	require.NoError(t, err)

	require.Equal(t, len(small), len(big))
	for i := range small {
		require.Equal(t, small[i].Chunk.ID, big[i].Chunk.ID)
		if math.Abs(small[i].Score-big[i].Score) > 1e-9 {
			t.Fatalf("score %d differs under scaling: %v vs %v", i, small[i].Score, big[i].Score)
		}
	}
}
