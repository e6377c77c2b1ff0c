package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

type fakeEmbedder struct {
	fingerprint string
	vector      []float32
	err         error
	calls       int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) Fingerprint() string {
	return f.fingerprint
}

func TestRetrieve_NoDocumentIndexed(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{fingerprint: "local:"})

	_, err := r.Retrieve(context.Background(), nil, "local:", "question", 3)
	require.ErrorIs(t, err, appErr.ErrNoDocumentIndexed)

	empty, buildErr := BuildIndex(nil)
	require.NoError(t, buildErr)
	_, err = r.Retrieve(context.Background(), empty, "local:", "question", 3)
	require.ErrorIs(t, err, appErr.ErrNoDocumentIndexed)
}

func TestRetrieve_FingerprintMismatch(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	embedder := &fakeEmbedder{fingerprint: "openai:text-embedding-3-small", vector: []float32{1, 0, 0}}
	_, err = NewRetriever(embedder).Retrieve(context.Background(), idx, "local:", "question", 3)
	require.ErrorIs(t, err, appErr.ErrEmbeddingUnavailable)
	require.Equal(t, 0, embedder.calls)
}

func TestRetrieve_ReturnsRankedChunks(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	embedder := &fakeEmbedder{fingerprint: "local:", vector: []float32{0, 0, 1}}
	chunks, err := NewRetriever(embedder).Retrieve(context.Background(), idx, "local:", "what is the education?", 2)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, "education", chunks[0].Section)
}

func TestRetrieve_EmbedErrorPropagates(t *testing.T) {
	idx, err := BuildIndex(testEntries())
	require.NoError(t, err)

	wrapped := appErr.Kind(appErr.ErrEmbeddingUnavailable, errors.New("connection refused"))
	embedder := &fakeEmbedder{fingerprint: "local:", err: wrapped}
	_, err = NewRetriever(embedder).Retrieve(context.Background(), idx, "local:", "question", 2)
	require.ErrorIs(t, err, appErr.ErrEmbeddingUnavailable)
}
