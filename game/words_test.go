package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackWordsGenerator_BuiltinPool(t *testing.T) {
	t.Parallel()

	gen := NewFallbackWordsGenerator(nil)

	words := gen.Generate(3)
	assert.Len(t, words, 3)

	seen := map[string]struct{}{}
	for _, w := range words {
		assert.Contains(t, builtinWords, w)
		seen[w] = struct{}{}
	}
	assert.Len(t, seen, 3)
}

func TestFallbackWordsGenerator_PrimaryWins(t *testing.T) {
	t.Parallel()

	primary := &MockRandomWordsGenerator{}
	primary.On("Generate", 2).Return([]string{"Comet", "Galaxy"}).Once()

	gen := NewFallbackWordsGenerator(primary)
	assert.Equal(t, []string{"Comet", "Galaxy"}, gen.Generate(2))
	primary.AssertExpectations(t)
}

func TestFallbackWordsGenerator_FallsBackWhenPrimaryComesUpShort(t *testing.T) {
	t.Parallel()

	primary := &MockRandomWordsGenerator{}
	primary.On("Generate", 2).Return([]string{}).Once()

	gen := NewFallbackWordsGenerator(primary)
	words := gen.Generate(2)
	assert.Len(t, words, 2)
	for _, w := range words {
		assert.Contains(t, builtinWords, w)
	}
	primary.AssertExpectations(t)
}

func TestFallbackWordsGenerator_ZeroCount(t *testing.T) {
	t.Parallel()

	gen := NewFallbackWordsGenerator(nil)
	assert.Empty(t, gen.Generate(0))
}
