package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/philipparndt/findflaw/internal/config"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/status"
	"github.com/philipparndt/findflaw/internal/viewport"
	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/viewer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	center = viewer.ScreenPoint{X: 400, Y: 300}
	// onPlate is inside the plate and off its diagonal
	onPlate = viewer.ScreenPoint{X: 460, Y: 250}
)

// plate is a 4x4 square in the z=0 plane centred on the origin
const plate = `solid plate
facet normal 0 0 1
 outer loop
  vertex -2 -2 0
  vertex 2 -2 0
  vertex 2 2 0
 endloop
endfacet
facet normal 0 0 1
 outer loop
  vertex -2 -2 0
  vertex 2 2 0
  vertex -2 2 0
 endloop
endfacet
endsolid plate
`

type fixture struct {
	s     *Session
	board *status.Board
	dir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Defaults()
	cfg.Watch.Enabled = false

	board := status.NewBoard(zerolog.Nop())
	s := New(cfg, viewer.Viewport{Width: 800, Height: 600}, board, zerolog.Nop())
	t.Cleanup(func() { s.Close() })
	return &fixture{s: s, board: board, dir: t.TempDir()}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (f *fixture) loadPlate(t *testing.T) {
	t.Helper()
	require.NoError(t, f.s.LoadModel(context.Background(), f.write(t, "plate.stl", plate)))
}

func linesJSON(records ...marker.Record) string {
	var parts []string
	for _, r := range records {
		parts = append(parts, fmt.Sprintf(
			`{"id":%d,"label":%q,"StartX":%g,"StartY":%g,"StartZ":%g,"EndX":%g,"EndY":%g,"EndZ":%g,"ColorArgb":%d}`,
			r.ID, r.Label, r.StartX, r.StartY, r.StartZ, r.EndX, r.EndY, r.EndZ, r.ColorArgb))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// crossLine runs through the centre of the view, above the plate
var crossLine = marker.Record{ID: 4, Label: "seam", StartX: -1, StartZ: 0.5, EndX: 1, EndZ: 0.5, ColorArgb: geometry.Red.ARGB()}

func TestLoadModel(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)

	assert.Equal(t, status.ModelLoaded, f.board.Snapshot().Message)
	cam := f.s.Camera()
	assert.InDelta(t, 8.8, cam.Position.Z, 1e-9)
	assert.InDelta(t, 0, cam.Target().Z, 1e-9)
	assert.Equal(t, geometry.Blue, f.s.Models().Color())
}

func TestLoadModelError(t *testing.T) {
	f := newFixture(t)
	err := f.s.LoadModel(context.Background(), filepath.Join(f.dir, "missing.stl"))
	assert.Error(t, err)
	assert.Contains(t, f.board.Snapshot().Message, "Error loading model")
	assert.False(t, f.s.Models().Loaded())
}

func TestPointerDownSelectsLine(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)
	require.NoError(t, f.s.LoadLines(f.write(t, "lines.json", linesJSON(crossLine))))

	f.s.PointerDown(center)
	snap := f.board.Snapshot()
	assert.Equal(t, status.LineSelected, snap.Message)
	assert.Equal(t, "4", snap.SelectedID)
	assert.Equal(t, "seam", snap.LabelText)
	require.NotNil(t, f.s.Markers().Selected())

	// The plate alone never selects anything
	f.s.PointerDown(viewer.ScreenPoint{X: 400, Y: 100})
	snap = f.board.Snapshot()
	assert.Equal(t, status.NoLineSelected, snap.Message)
	assert.Equal(t, status.NoSelection, snap.SelectedID)
	assert.Nil(t, f.s.Markers().Selected())
}

func TestButtons(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)
	cam := f.s.Camera()
	fov := cam.FieldOfView

	f.s.Press(ButtonZoomIn)
	assert.Equal(t, fov-0.5, cam.FieldOfView)
	f.s.Press(ButtonZoomOut)
	assert.Equal(t, fov, cam.FieldOfView)

	pos := cam.Position
	f.s.Press(ButtonLeft)
	assert.Less(t, cam.Position.X, pos.X, "content moves right, so the camera moves left in a top view")
	f.s.Press(ButtonRight)
	assert.InDelta(t, pos.X, cam.Position.X, 1e-9)

	f.s.Press(ButtonUp)
	assert.Greater(t, cam.Position.Y, pos.Y)
	f.s.Press(ButtonDown)
	assert.InDelta(t, pos.Y, cam.Position.Y, 1e-9)

	f.s.Press(ButtonCenter)
	assert.InDelta(t, 0, cam.Target().X, 1e-9)
}

func TestKeys(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)
	fov := f.s.Camera().FieldOfView

	assert.True(t, f.s.Key(viewport.KeyPageUp, viewport.ModCtrl))
	assert.Equal(t, fov-0.5, f.s.Camera().FieldOfView)
	assert.False(t, f.s.Key(viewport.KeyLeft, 0))
}

func TestListSelectAndActivate(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)
	other := marker.Record{ID: 9, StartX: 1, StartY: 1, EndX: 1, EndY: 1.5, ColorArgb: geometry.Red.ARGB()}
	require.NoError(t, f.s.LoadLines(f.write(t, "lines.json", linesJSON(crossLine, other))))

	f.s.ListSelect(9)
	assert.Equal(t, "9", f.board.Snapshot().SelectedID)
	assert.Equal(t, 9, f.s.Markers().Selected().ID)

	f.s.ListSelect(0)
	assert.Nil(t, f.s.Markers().Selected())

	f.s.ListSelect(42)
	assert.Equal(t, status.NoSelection, f.board.Snapshot().SelectedID)

	f.s.ListActivate(9)
	f.s.Frame(context.Background(), 500*time.Millisecond)
	target := f.s.Camera().Target()
	assert.InDelta(t, 1, target.X, 1e-9)
	assert.InDelta(t, 1.25, target.Y, 1e-9)
}

func TestHighlightPressRelease(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadLines(f.write(t, "lines.json", linesJSON(crossLine))))
	m, err := f.s.Markers().ByID(4)
	require.NoError(t, err)

	f.s.HighlightPress(4)
	f.s.Frame(context.Background(), 50*time.Millisecond)
	assert.True(t, m.SphereVisible())
	assert.InDelta(t, 0.5+5*0.1, m.SphereRadius(), 1e-9)

	f.s.HighlightRelease(4)
	assert.False(t, m.SphereVisible())
	assert.Equal(t, 0.5, m.SphereRadius())

	f.s.HighlightPress(77)
	f.s.HighlightRelease(77)
}

func TestLoadLinesStatus(t *testing.T) {
	f := newFixture(t)

	err := f.s.LoadLines(f.write(t, "broken.json", "{"))
	assert.Error(t, err)
	assert.Contains(t, f.board.Snapshot().Message, "Error loading lines")

	require.NoError(t, f.s.LoadLines(f.write(t, "lines.json", linesJSON(crossLine))))
	snap := f.board.Snapshot()
	assert.Equal(t, status.LinesLoaded, snap.Message)
	assert.Equal(t, 1, snap.LineCount)
	assert.Equal(t, 5, f.s.Markers().NextID())
}

func TestSaveLinesRoundTrip(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.LoadLines(f.write(t, "lines.json", linesJSON(crossLine))))
	require.NoError(t, f.s.SetLabel(4, "renamed"))

	out := filepath.Join(f.dir, "out.json")
	require.NoError(t, f.s.SaveLines(out))
	assert.Equal(t, status.LinesSaved, f.board.Snapshot().Message)
	assert.Equal(t, out, f.s.LinesPath())

	records, err := marker.ReadFile(out)
	require.NoError(t, err)
	want := crossLine
	want.Label = "renamed"
	assert.Equal(t, []marker.Record{want}, records)
}

func TestDrawing(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.s.StartDrawing(onPlate), "no model to draw on")

	f.loadPlate(t)
	require.True(t, f.s.StartDrawing(onPlate))
	require.NotNil(t, f.s.Drawing())

	m, ok := f.s.FinishDrawing(viewer.ScreenPoint{X: 560, Y: 250})
	require.True(t, ok)
	assert.True(t, m.Finalized())
	assert.Greater(t, m.End.X, m.Start.X)
	assert.InDelta(t, m.Start.Y, m.End.Y, 1e-6)
	assert.InDelta(t, 0, m.End.Z, 1e-9)
	assert.Equal(t, 1, f.board.Snapshot().LineCount)
	assert.Nil(t, f.s.Drawing())

	// Ending off the model discards the line
	require.True(t, f.s.StartDrawing(onPlate))
	_, ok = f.s.FinishDrawing(viewer.ScreenPoint{X: 0, Y: 0})
	assert.False(t, ok)
	assert.Equal(t, 1, f.s.Markers().Count())

	require.True(t, f.s.StartDrawing(onPlate))
	f.s.CancelDrawing()
	assert.Equal(t, 1, f.s.Markers().Count())
}

func TestModelColor(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)

	f.s.SetModelColor(1)
	assert.Equal(t, geometry.Gray, f.s.Models().Color())
	f.s.SetModelColor(99)
	assert.Equal(t, geometry.Blue, f.s.Models().Color())

	f.s.SetEmissionAlpha(60)
	assert.Equal(t, uint8(60), f.s.Models().EmissionAlpha())
}

func TestInitialViewSwitch(t *testing.T) {
	f := newFixture(t)
	f.loadPlate(t)

	f.s.SetInitialView(false)
	assert.InDelta(t, -8.8, f.s.Camera().Position.Z, 1e-9)
}

func TestWatchLinesReloads(t *testing.T) {
	f := newFixture(t)
	f.s.cfg.Watch.Debounce = 20 * time.Millisecond

	path := f.write(t, "lines.json", linesJSON(crossLine))
	require.NoError(t, f.s.LoadLines(path))
	require.NoError(t, f.s.WatchLines(path))

	second := crossLine
	second.ID = 12
	require.NoError(t, os.WriteFile(path, []byte(linesJSON(crossLine, second)), 0644))

	require.Eventually(t, func() bool {
		f.s.Frame(context.Background(), time.Millisecond)
		return f.s.Markers().Count() == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, status.LinesReloaded, f.board.Snapshot().Message)
	assert.Equal(t, 13, f.s.Markers().NextID())
}

func TestWatchModelReloads(t *testing.T) {
	f := newFixture(t)
	f.s.cfg.Watch.Enabled = true
	f.s.cfg.Watch.Debounce = 20 * time.Millisecond

	f.loadPlate(t)
	f.s.SetModelColor(1)
	pos := f.s.Camera().Position

	bigger := strings.ReplaceAll(plate, "2", "4")
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "plate.stl"), []byte(bigger), 0644))

	require.Eventually(t, func() bool {
		f.s.Frame(context.Background(), time.Millisecond)
		b, err := f.s.Models().Bounds()
		return err == nil && b.MaxExtent() == 8
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, status.ModelLoaded, f.board.Snapshot().Message)
	assert.Equal(t, geometry.Gray, f.s.Models().Color(), "reload keeps the chosen colour")
	assert.Equal(t, pos, f.s.Camera().Position, "reload keeps the camera")
}

func TestWatchLinesMissingDirectory(t *testing.T) {
	f := newFixture(t)
	var logs strings.Builder
	f.s.log = zerolog.New(&logs)
	f.s.cfg.Watch.Enabled = true
	f.s.cfg.Watch.Debounce = 20 * time.Millisecond

	err := f.s.WatchLines(filepath.Join(f.dir, "gone", "lines.json"))
	require.Error(t, err)
	assert.Contains(t, logs.String(), "auto-reload of lines will not be available")
	assert.Empty(t, f.s.watchedLines)

	// The model is still watched
	f.loadPlate(t)
	bigger := strings.ReplaceAll(plate, "2", "4")
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "plate.stl"), []byte(bigger), 0644))

	require.Eventually(t, func() bool {
		f.s.Frame(context.Background(), time.Millisecond)
		b, err := f.s.Models().Bounds()
		return err == nil && b.MaxExtent() == 8
	}, 5*time.Second, 10*time.Millisecond)
}
