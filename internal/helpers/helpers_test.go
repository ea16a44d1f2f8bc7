package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 15, 11, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-03-15T11:00:00Z",
		"2025-03-15T06:00:00-05:00",
		"2025-03-15T11:00:00",
		"2025-03-15 11:00:00",
		" 2025-03-15T11:00 ",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	day, err := ParseTimestamp("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseTimestamp("next saturday")
	assert.Error(t, err)
}

func TestRemoveDuplicates(t *testing.T) {
	assert.Equal(t, []string{"crafts", "food"}, RemoveDuplicates([]string{"crafts", " food", "", "crafts", "food "}))
	assert.Nil(t, RemoveDuplicates(nil))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "NC", FirstNonEmpty("  ", "", " NC "))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(1250), ToCents(12.5))
	assert.Equal(t, int64(1999), ToCents(19.99))
	assert.Equal(t, int64(7500), ToCents(75))
	assert.Equal(t, int64(0), ToCents(0))
}
