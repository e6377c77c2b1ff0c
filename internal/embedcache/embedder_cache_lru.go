package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirescope/hirescope/internal/ai"
)

// WrapLruCacheToEmbedder memoizes per-text embeddings in front of an
// embedder. Cache entries are keyed by the embedder fingerprint plus a
// content hash, so a provider swap never serves stale vectors.
func WrapLruCacheToEmbedder(e ai.IEmbedder, size int, ttl time.Duration) ai.IEmbedder {
	if e == nil || size <= 0 || ttl <= 0 {
		return e
	}
	return &lruEmbedder{
		next:  e,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

type lruEmbedder struct {
	next  ai.IEmbedder
	cache *expirable.LRU[string, []float32]
}

func (l *lruEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([][]float32, len(texts))
	missing := make([]string, 0, len(texts))
	missingAt := make([]int, 0, len(texts))
	hits := 0
	for i, text := range texts {
		if cached, ok := l.cache.Get(l.cacheKey(text)); ok {
			out[i] = cloneEmbedding(cached)
			hits++
			continue
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}
	if hits > 0 {
		logutil.GetLogger(ctx).Debug("embedding cache hit (lru)", zap.Int("hits", hits), zap.Int("total", len(texts)))
	}
	if len(missing) == 0 {
		return out, nil
	}
	fresh, err := l.next.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	for j, vec := range fresh {
		out[missingAt[j]] = vec
		l.cache.Add(l.cacheKey(missing[j]), cloneEmbedding(vec))
	}
	return out, nil
}

func (l *lruEmbedder) Fingerprint() string {
	return l.next.Fingerprint()
}

func (l *lruEmbedder) cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return l.next.Fingerprint() + ":" + hex.EncodeToString(hash[:])
}

func cloneEmbedding(values []float32) []float32 {
	if len(values) == 0 {
		return nil
	}
	clone := make([]float32, len(values))
	copy(clone, values)
	return clone
}
