package idx_test

import (
	"testing"
	"time"

	"github.com/jotmail/jotmail/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	// Monotonic entropy keeps same-millisecond IDs ordered.
	require.Equal(t, -1, func() int {
		if a.String() < b.String() {
			return -1
		}
		return 1
	}())
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := idx.New()

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	id := idx.NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}
