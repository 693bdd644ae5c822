package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresMentorStore(t *testing.T) {
	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresMentorStore(nil, nil)
		})
	})
}

func TestNewPostgresRequestStore(t *testing.T) {
	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresRequestStore(nil, nil)
		})
	})
}

func TestMentorColumnsMatchScanOrder(t *testing.T) {
	// The shared column list drives both SELECT statements and scanMentor;
	// a mismatch surfaces as silent field swaps, so pin the count here.
	require.Equal(t, 17, countColumns(mentorColumns))
	require.Equal(t, 16, countColumns(requestColumns))
}

func countColumns(list string) int {
	count := 1
	for _, ch := range list {
		if ch == ',' {
			count++
		}
	}
	return count
}
