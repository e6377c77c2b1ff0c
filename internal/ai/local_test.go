package ai

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalEmbed_Deterministic(t *testing.T) {
	provider, err := NewEmbedProvider("local", nil)
	require.NoError(t, err)

	first, err := provider.Embed(context.Background(), "", []string{"golang backend engineer"})
	require.NoError(t, err)
	second, err := provider.Embed(context.Background(), "", []string{"golang backend engineer"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLocalEmbed_DimensionsAndNorm(t *testing.T) {
	provider, err := NewEmbedProvider("local", map[string]interface{}{"dimensions": 64})
	require.NoError(t, err)

	vectors, err := provider.Embed(context.Background(), "", []string{"some resume text"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	require.Len(t, vectors[0], 64)

	var norm float64
	for _, v := range vectors[0] {
		norm += float64(v) * float64(v)
	}
	require.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestLocalEmbed_PreservesInputOrder(t *testing.T) {
	provider, err := NewEmbedProvider("local", nil)
	require.NoError(t, err)

	texts := []string{"alpha", "beta", "gamma"}
	batch, err := provider.Embed(context.Background(), "", texts)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	for i, text := range texts {
		single, err := provider.Embed(context.Background(), "", []string{text})
		require.NoError(t, err)
		require.Equal(t, single[0], batch[i])
	}
}

func TestLocalEmbed_DifferentTextsDiffer(t *testing.T) {
	provider, err := NewEmbedProvider("local", nil)
	require.NoError(t, err)

	vectors, err := provider.Embed(context.Background(), "", []string{"python data science", "golang backend"})
	require.NoError(t, err)
	require.NotEqual(t, vectors[0], vectors[1])
}

func TestNewEmbedProvider_UnknownName(t *testing.T) {
	_, err := NewEmbedProvider("does-not-exist", nil)
	require.Error(t, err)
}

func TestEmbedder_Fingerprint(t *testing.T) {
	provider, err := NewEmbedProvider("local", nil)
	require.NoError(t, err)
	embedder := NewEmbedder(provider, "v1")
	require.Equal(t, "local:v1", embedder.Fingerprint())
}
