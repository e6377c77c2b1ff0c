package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
)

type scriptedGenerator struct {
	answer string
	err    error
	calls  int
}

func (s *scriptedGenerator) Generate(ctx context.Context, system string, prompt string) (string, error) {
	s.calls++
	return s.answer, s.err
}

func TestGroupGenerator_FirstSuccessWins(t *testing.T) {
	first := &scriptedGenerator{answer: "primary"}
	second := &scriptedGenerator{answer: "fallback"}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: first},
		{Name: "b", Generator: second},
	})

	answer, err := group.Generate(context.Background(), "", "q")
	require.NoError(t, err)
	require.Equal(t, "primary", answer)
	require.Equal(t, 0, second.calls)
}

func TestGroupGenerator_FallsBackOnFailure(t *testing.T) {
	first := &scriptedGenerator{err: appErr.Kind(appErr.ErrGenerationFailed, errors.New("quota"))}
	second := &scriptedGenerator{answer: "fallback"}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: first},
		{Name: "b", Generator: second},
	})

	answer, err := group.Generate(context.Background(), "", "q")
	require.NoError(t, err)
	require.Equal(t, "fallback", answer)
	require.Equal(t, 1, first.calls)
}

func TestGroupGenerator_LastErrorPropagates(t *testing.T) {
	first := &scriptedGenerator{err: appErr.Kind(appErr.ErrGenerationFailed, errors.New("quota"))}
	second := &scriptedGenerator{err: appErr.Kind(appErr.ErrGenerationFailed, errors.New("timeout"))}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: first},
		{Name: "b", Generator: second},
	})

	_, err := group.Generate(context.Background(), "", "q")
	require.ErrorIs(t, err, appErr.ErrGenerationFailed)
	require.Contains(t, err.Error(), "timeout")
}

func TestGroupGenerator_SingleEntryUnwrapped(t *testing.T) {
	only := &scriptedGenerator{answer: "one"}
	group := NewGroupGenerator([]GeneratorEntry{{Name: "a", Generator: only}})
	require.Equal(t, IGenerator(only), group)
}
