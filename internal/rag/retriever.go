package rag

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirescope/hirescope/internal/ai"
	"github.com/hirescope/hirescope/internal/model"
	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

// Retriever embeds a question and ranks the indexed resume chunks against
// it. The embedder must be the same provider:model pair that built the
// index; a mismatch is an error, never a silent fallback.
type Retriever struct {
	embedder ai.IEmbedder
}

func NewRetriever(embedder ai.IEmbedder) *Retriever {
	return &Retriever{embedder: embedder}
}

func (r *Retriever) Retrieve(ctx context.Context, idx *Index, indexFingerprint string, question string, k int) ([]model.Chunk, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, appErr.ErrNoDocumentIndexed
	}
	if fp := r.embedder.Fingerprint(); fp != indexFingerprint {
		return nil, appErr.Kind(appErr.ErrEmbeddingUnavailable,
			fmt.Errorf("index was built with embedder %s, active embedder is %s", indexFingerprint, fp))
	}
	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	hits, err := idx.Query(vectors[0], k)
	if err != nil {
		return nil, err
	}
	chunks := make([]model.Chunk, 0, len(hits))
	for _, hit := range hits {
		logutil.GetLogger(ctx).Debug("retrieved chunk",
			zap.Int("chunk_id", hit.Chunk.ID),
			zap.String("section", hit.Chunk.Section),
			zap.Float64("score", hit.Score),
		)
		chunks = append(chunks, hit.Chunk)
	}
	return chunks, nil
}
