package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultLocalDimensions = 256

type localConfig struct {
	Dimensions int `json:"dimensions"`
}

// localEmbedProvider is a deterministic feature-hashing embedder. Tokens are
// hashed into a fixed number of buckets with a hash-derived sign and the
// result is L2-normalized. No network, no model weights; identical input
// always yields identical vectors, which retrieval tests rely on.
type localEmbedProvider struct {
	dimensions int
}

func (p *localEmbedProvider) Name() string {
	return "local"
}

func (p *localEmbedProvider) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if p.dimensions <= 0 {
		return nil, fmt.Errorf("local embedder dimensions must be positive")
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		out = append(out, p.embedOne(text))
	}
	return out, nil
}

func (p *localEmbedProvider) embedOne(text string) []float32 {
	vec := make([]float32, p.dimensions)
	tokens := tokenize(text)
	for i, token := range tokens {
		addFeature(vec, token)
		// Word bigrams keep a little phrase structure.
		if i+1 < len(tokens) {
			addFeature(vec, token+" "+tokens[i+1])
		}
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}

func addFeature(vec []float32, feature string) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(len(vec)))
	if sum&(1<<63) != 0 {
		vec[idx]--
	} else {
		vec[idx]++
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func createLocalEmbedFactory(args interface{}) (IEmbedProvider, error) {
	cfg := &localConfig{}
	if args != nil {
		if err := decodeConfig(args, cfg); err != nil {
			return nil, err
		}
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = defaultLocalDimensions
	}
	return &localEmbedProvider{dimensions: dims}, nil
}

func init() {
	RegisterEmbed("local", createLocalEmbedFactory)
}
