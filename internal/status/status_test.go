package status

import (
	"bytes"
	"testing"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	var buf bytes.Buffer
	b := NewBoard(zerolog.New(&buf))

	assert.Equal(t, Snapshot{SelectedID: NoSelection}, b.Snapshot())

	b.SetStatus(LinesLoaded)
	b.UpdateLineCount(3)
	m, err := marker.New(7, geometry.Vector3{}, geometry.NewVector3(1, 0, 0), geometry.Red, "scratch")
	require.NoError(t, err)
	b.UpdateSelectedLine(m)

	assert.Equal(t, Snapshot{
		Message:    LinesLoaded,
		LineCount:  3,
		SelectedID: "7",
		LabelText:  "scratch",
	}, b.Snapshot())
	assert.Contains(t, buf.String(), `"message":"Lines loaded"`)
	assert.Contains(t, buf.String(), `"component":"status"`)

	b.UpdateSelectedLine(nil)
	snap := b.Snapshot()
	assert.Equal(t, NoSelection, snap.SelectedID)
	assert.Empty(t, snap.LabelText)
}
