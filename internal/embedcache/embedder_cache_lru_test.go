package embedcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	fingerprint string
	calls       int
	texts       [][]string
}

func (c *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.texts = append(c.texts, texts)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}
	return out, nil
}

func (c *countingEmbedder) Fingerprint() string {
	return c.fingerprint
}

func TestLruEmbedder_SecondCallHitsCache(t *testing.T) {
	backend := &countingEmbedder{fingerprint: "local:"}
	cached := WrapLruCacheToEmbedder(backend, 16, time.Minute)

	first, err := cached.Embed(context.Background(), []string{"hello world"})
	require.NoError(t, err)
	second, err := cached.Embed(context.Background(), []string{"hello world"})
	require.NoError(t, err)

	require.Equal(t, 1, backend.calls)
	require.Equal(t, first, second)
}

func TestLruEmbedder_OnlyMissesHitBackend(t *testing.T) {
	backend := &countingEmbedder{fingerprint: "local:"}
	cached := WrapLruCacheToEmbedder(backend, 16, time.Minute)

	_, err := cached.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	vectors, err := cached.Embed(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	require.Equal(t, 2, backend.calls)
	require.Equal(t, []string{"c"}, backend.texts[1])
}

func TestLruEmbedder_ReturnsDefensiveCopies(t *testing.T) {
	backend := &countingEmbedder{fingerprint: "local:"}
	cached := WrapLruCacheToEmbedder(backend, 16, time.Minute)

	first, err := cached.Embed(context.Background(), []string{"hello"})
	require.NoError(t, err)
	first[0][0] = -999

	second, err := cached.Embed(context.Background(), []string{"hello"})
	require.NoError(t, err)
	require.NotEqual(t, float32(-999), second[0][0])
	require.Equal(t, 1, backend.calls)
}

func TestWrapLruCacheToEmbedder_DisabledPassesThrough(t *testing.T) {
	backend := &countingEmbedder{fingerprint: "local:"}
	require.Equal(t, backend, WrapLruCacheToEmbedder(backend, 0, time.Minute))
	require.Equal(t, backend, WrapLruCacheToEmbedder(backend, 16, 0))
}

func TestLruEmbedder_FingerprintPassthrough(t *testing.T) {
	backend := &countingEmbedder{fingerprint: "openai:text-embedding-3-small"}
	cached := WrapLruCacheToEmbedder(backend, 16, time.Minute)
	require.Equal(t, backend.Fingerprint(), cached.Fingerprint())
}
