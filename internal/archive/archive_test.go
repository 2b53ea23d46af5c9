package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "archive.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func lines(n int) []marker.Record {
	out := make([]marker.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, marker.Record{
			ID:        10 - i,
			Label:     "line",
			StartX:    float64(i),
			EndY:      1.5,
			EndZ:      -2,
			ColorArgb: -65536,
		})
	}
	return out
}

func TestPushAndLatest(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	_, _, err := a.Latest(ctx, "part.stl")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	first, err := a.Push(ctx, "part.stl", lines(2))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Revision)

	second, err := a.Push(ctx, "part.stl", lines(3))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Revision)
	assert.Equal(t, 3, second.LineCount)

	records, sum, err := a.Latest(ctx, "part.stl")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Revision)
	assert.Equal(t, lines(3), records, "order and values survive")

	records, sum, err = a.Revision(ctx, "part.stl", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Revision)
	assert.Equal(t, lines(2), records)

	_, _, err = a.Revision(ctx, "part.stl", 7)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestPushEmptySet(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	_, err := a.Push(ctx, "empty.stl", nil)
	require.NoError(t, err)

	records, _, err := a.Latest(ctx, "empty.stl")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestList(t *testing.T) {
	a := openTest(t)
	ctx := context.Background()

	_, err := a.Push(ctx, "b.stl", lines(1))
	require.NoError(t, err)
	_, err = a.Push(ctx, "a.stl", lines(2))
	require.NoError(t, err)
	_, err = a.Push(ctx, "a.stl", lines(4))
	require.NoError(t, err)

	list, err := a.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, modelKey("a.stl"), list[0].ModelPath)
	assert.Equal(t, 2, list[0].Revision)
	assert.Equal(t, 4, list[0].LineCount)
	assert.Equal(t, 1, list[1].Revision)
	assert.Equal(t, 2, list[1].LineCount)
	assert.Equal(t, modelKey("b.stl"), list[2].ModelPath)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "", zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported archive driver")
}
