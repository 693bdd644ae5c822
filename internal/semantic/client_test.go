package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	t.Parallel() // Enable parallel execution
	client := Disabled{}

	_, err := client.EmbedTexts(context.Background(), []string{"hello"})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.SummarizeMatches(context.Background(), "topic", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel() // Enable parallel execution
	t.Run("identical vectors", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, sim, 1e-9)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 2}, []float32{1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty vectors", func(t *testing.T) {
		_, err := CosineSimilarity(nil, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero vector", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
		assert.ErrorIs(t, err, ErrZeroVector)
	})
}

func TestSimilarityScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		similarity float64
		expected   int
	}{
		{1.0, 100},
		{0.874, 87},
		{0.0, 0},
		{-0.5, 0},
		{1.2, 100},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SimilarityScore(tc.similarity))
	}
}
