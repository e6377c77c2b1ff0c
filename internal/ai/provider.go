package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

// IGenProvider is a generation backend. All variants take the same input
// shape: a fixed system instruction plus the assembled user prompt.
type IGenProvider interface {
	Name() string
	Generate(ctx context.Context, model string, system string, prompt string) (string, error)
}

// IEmbedProvider maps texts to fixed-length vectors, one per input,
// order-preserving. Dimensionality is constant per provider+model.
type IEmbedProvider interface {
	Name() string
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// IGenerator is a provider bound to a model. Backend failures come out as a
// single ErrGenerationFailed kind with the cause preserved.
type IGenerator interface {
	Generate(ctx context.Context, system string, prompt string) (string, error)
}

// IEmbedder is an embed provider bound to a model. The fingerprint names the
// provider:model pair so an index built by one embedder is never queried
// through another.
type IEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Fingerprint() string
}

type generator struct {
	provider IGenProvider
	model    string
}

func NewGenerator(p IGenProvider, model string) IGenerator {
	return &generator{provider: p, model: model}
}

func (g *generator) Generate(ctx context.Context, system string, prompt string) (string, error) {
	text, err := g.provider.Generate(ctx, g.model, system, prompt)
	if err != nil {
		return "", appErr.Kind(appErr.ErrGenerationFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", appErr.Kind(appErr.ErrGenerationFailed, fmt.Errorf("%s returned empty response", g.provider.Name()))
	}
	return text, nil
}

type embedder struct {
	provider IEmbedProvider
	model    string
}

func NewEmbedder(p IEmbedProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.provider.Embed(ctx, e.model, texts)
	if err != nil {
		return nil, appErr.Kind(appErr.ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(texts) {
		return nil, appErr.Kind(appErr.ErrEmbeddingUnavailable,
			fmt.Errorf("%s returned %d vectors for %d inputs", e.provider.Name(), len(vectors), len(texts)))
	}
	return vectors, nil
}

func (e *embedder) Fingerprint() string {
	return e.provider.Name() + ":" + e.model
}

type GenProviderFactory func(args interface{}) (IGenProvider, error)

type EmbedProviderFactory func(args interface{}) (IEmbedProvider, error)

var (
	genRegistry   = map[string]GenProviderFactory{}
	embedRegistry = map[string]EmbedProviderFactory{}
)

func Register(name string, factory GenProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	genRegistry[key] = factory
}

func RegisterEmbed(name string, factory EmbedProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	embedRegistry[key] = factory
}

func NewGenProvider(name string, args interface{}) (IGenProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := genRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported generation provider: %s", name)
	}
	return factory(args)
}

func NewEmbedProvider(name string, args interface{}) (IEmbedProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("embedding.provider is required")
	}
	factory := embedRegistry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported embedding provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("ai provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode ai provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode ai provider config: %w", err)
	}
	return nil
}
