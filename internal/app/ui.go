package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/session"
	"github.com/philipparndt/findflaw/version"
)

const (
	fontSize12 = float32(12)
	fontSize14 = float32(14)
	fontSize16 = float32(16)
	lineHeight = float32(20)

	listWidth  = float32(280)
	buttonSize = float32(36)
	margin     = float32(10)
)

var (
	panelColor    = rl.NewColor(0, 0, 0, 160)
	selectedColor = rl.NewColor(80, 80, 20, 220)
	hintColor     = rl.NewColor(144, 238, 144, 255)
)

// layout positions the line list and the navigation buttons for the
// current window size
func (app *App) layout() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	app.UI.listBounds = rl.Rectangle{
		X:      w - listWidth - margin,
		Y:      margin,
		Width:  listWidth,
		Height: h - 4*buttonSize - 4*margin,
	}

	// Arrow cross with centre, zoom buttons on the right
	cx := w - listWidth/2 - margin - buttonSize/2
	cy := h - 2*buttonSize - 2*margin
	at := func(dx, dy float32) rl.Rectangle {
		return rl.Rectangle{X: cx + dx*buttonSize, Y: cy + dy*buttonSize, Width: buttonSize - 2, Height: buttonSize - 2}
	}
	app.UI.buttons = []navButton{
		{button: session.ButtonUp, label: "^", bounds: at(0, -1)},
		{button: session.ButtonDown, label: "v", bounds: at(0, 1)},
		{button: session.ButtonLeft, label: "<", bounds: at(-1, 0)},
		{button: session.ButtonRight, label: ">", bounds: at(1, 0)},
		{button: session.ButtonCenter, label: "o", bounds: at(0, 0)},
		{button: session.ButtonZoomIn, label: "+", bounds: at(2.5, -0.5)},
		{button: session.ButtonZoomOut, label: "-", bounds: at(2.5, 0.5)},
	}
}

func (app *App) overUI(p rl.Vector2) bool {
	if rl.CheckCollisionPointRec(p, app.UI.listBounds) {
		return true
	}
	for _, b := range app.UI.buttons {
		if rl.CheckCollisionPointRec(p, b.bounds) {
			return true
		}
	}
	return false
}

func (app *App) rowAt(p rl.Vector2) (int, bool) {
	for _, r := range app.UI.rows {
		if rl.CheckCollisionPointRec(p, r.bounds) {
			return r.id, true
		}
	}
	return 0, false
}

// handleUIClick presses a button or selects a list row. A second click
// on the same row focuses the camera on it.
func (app *App) handleUIClick(p rl.Vector2) {
	for _, b := range app.UI.buttons {
		if rl.CheckCollisionPointRec(p, b.bounds) {
			app.session.Press(b.button)
			return
		}
	}

	id, ok := app.rowAt(p)
	if !ok {
		return
	}
	now := rl.GetTime()
	if id == app.UI.lastClickRow && now-app.UI.lastClickAt < doubleClickSeconds {
		app.session.ListActivate(id)
		app.UI.lastClickRow = -1
		return
	}
	app.session.ListSelect(id)
	app.UI.lastClickRow = id
	app.UI.lastClickAt = now
}

func (app *App) text(s string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, color)
}

// drawUI draws the user interface
func (app *App) drawUI() {
	snap := app.board.Snapshot()
	y := margin

	// === MODEL ===
	app.text("Model:", margin, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text(fmt.Sprintf("  Name: %s", app.info.Name), margin, y, fontSize14, rl.White)
	y += lineHeight
	app.text(fmt.Sprintf("  Triangles: %d", app.info.TriangleCount), margin, y, fontSize14, rl.White)
	y += lineHeight
	d := app.info.Dimensions
	app.text(fmt.Sprintf("  Size: %.2f x %.2f x %.2f", d.X, d.Y, d.Z), margin, y, fontSize14, rl.White)
	y += lineHeight * 2

	// === LINES ===
	app.text("Lines:", margin, y, fontSize16, rl.Yellow)
	y += lineHeight
	app.text(fmt.Sprintf("  Count: %d", snap.LineCount), margin, y, fontSize14, rl.White)
	y += lineHeight
	app.text(fmt.Sprintf("  Selected: %s", snap.SelectedID), margin, y, fontSize14, rl.White)
	y += lineHeight
	label := snap.LabelText
	if app.UI.editing {
		label = string(app.UI.editBuffer) + "_"
	}
	app.text(fmt.Sprintf("  Label: %s", label), margin, y, fontSize14, rl.White)
	y += lineHeight * 2

	if app.View.showHelp {
		app.drawHelp(y)
	} else {
		app.text("H: Help", margin, y, fontSize14, rl.LightGray)
	}

	app.drawLineList()
	app.drawButtons()

	// Status line, version and FPS along the bottom
	bottomY := float32(rl.GetScreenHeight()) - 30
	app.text(snap.Message, margin, bottomY-lineHeight, fontSize16, hintColor)

	versionText := fmt.Sprintf("v%s", version.GetVersion())
	app.text(versionText, margin, bottomY, fontSize12, rl.Gray)
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	app.text(fmt.Sprintf("FPS: %d", rl.GetFPS()), margin+versionWidth+15, bottomY, fontSize12, rl.Lime)
}

func (app *App) drawHelp(y float32) {
	sections := []struct {
		title string
		lines []string
	}{
		{"Select:", []string{
			"  Left Click: Select line",
			"  Alt+Drag: Draw line on model",
			"  Enter: Edit label | Esc: Cancel",
			"  List: Click select, double click focus",
			"  List: Hold right button to highlight",
		}},
		{"Navigate:", []string{
			"  Ctrl+Arrows/+/-: Move camera",
			"  Shift+Arrows/+/-: Move target",
			"  Ctrl/Shift+PgUp/PgDn: Zoom",
			"  Wheel: Zoom | Right/Middle Drag: Pan",
			"  Home: Fit | T: Top/Bottom view",
		}},
		{"Display:", []string{
			"  W: Wireframe | F: Fill",
			"  C: Model colour | E: Emission",
			"  Ctrl+S: Save lines | Ctrl+L: Reload",
		}},
	}
	for _, s := range sections {
		app.text(s.title, margin, y, fontSize16, rl.Yellow)
		y += lineHeight
		for _, l := range s.lines {
			app.text(l, margin, y, fontSize14, rl.LightGray)
			y += lineHeight
		}
		y += lineHeight / 2
	}
}

// drawLineList draws every marker as a row and records the row bounds
// for hit testing on the next frame
func (app *App) drawLineList() {
	b := app.UI.listBounds
	rl.DrawRectangleRec(b, panelColor)
	rl.DrawRectangleLinesEx(b, 1, rl.DarkGray)
	app.text("Lines", b.X+margin, b.Y+6, fontSize16, rl.Yellow)

	app.UI.rows = app.UI.rows[:0]
	y := b.Y + 6 + lineHeight
	for _, m := range app.session.Markers().Markers() {
		if y+lineHeight > b.Y+b.Height {
			break
		}
		row := rl.Rectangle{X: b.X + 2, Y: y, Width: b.Width - 4, Height: lineHeight}
		if m.Selected() {
			rl.DrawRectangleRec(row, selectedColor)
		}
		app.text(rowText(m), row.X+margin, y+3, fontSize14, toRaylibColor(m.Color))
		app.UI.rows = append(app.UI.rows, listRow{id: m.ID, bounds: row})
		y += lineHeight
	}
}

func rowText(m *marker.LineMarker) string {
	length := m.Start.Distance(m.End)
	if m.Label == "" {
		return fmt.Sprintf("#%d  %.2f", m.ID, length)
	}
	return fmt.Sprintf("#%d %s  %.2f", m.ID, m.Label, length)
}

func (app *App) drawButtons() {
	mouse := rl.GetMousePosition()
	for _, b := range app.UI.buttons {
		bg := panelColor
		if rl.CheckCollisionPointRec(mouse, b.bounds) {
			bg = selectedColor
		}
		rl.DrawRectangleRec(b.bounds, bg)
		rl.DrawRectangleLinesEx(b.bounds, 1, rl.Gray)
		size := rl.MeasureTextEx(app.UI.font, b.label, fontSize16, 1)
		app.text(b.label, b.bounds.X+(b.bounds.Width-size.X)/2, b.bounds.Y+(b.bounds.Height-size.Y)/2, fontSize16, rl.White)
	}
}
