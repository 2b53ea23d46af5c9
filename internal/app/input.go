package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/model"
	"github.com/philipparndt/findflaw/internal/session"
	"github.com/philipparndt/findflaw/internal/viewport"
	"github.com/philipparndt/findflaw/pkg/geometry"
)

const doubleClickSeconds = 0.4

var navKeys = map[int32]viewport.Key{
	rl.KeyLeft:       viewport.KeyLeft,
	rl.KeyRight:      viewport.KeyRight,
	rl.KeyUp:         viewport.KeyUp,
	rl.KeyDown:       viewport.KeyDown,
	rl.KeyKpAdd:      viewport.KeyPlus,
	rl.KeyEqual:      viewport.KeyPlus,
	rl.KeyKpSubtract: viewport.KeyMinus,
	rl.KeyMinus:      viewport.KeyMinus,
	rl.KeyPageUp:     viewport.KeyPageUp,
	rl.KeyPageDown:   viewport.KeyPageDown,
}

var emissionSteps = []uint8{0, model.DefaultEmissionAlpha, 60, 120}

func modifiers() viewport.Modifiers {
	var mods viewport.Modifiers
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		mods |= viewport.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		mods |= viewport.ModShift
	}
	return mods
}

// handleInput processes user input
func (app *App) handleInput() {
	mouse := rl.GetMousePosition()
	defer func() { app.Interaction.lastMousePos = mouse }()

	if app.UI.editing {
		app.handleLabelEditing()
		return
	}

	mods := modifiers()
	for rk, key := range navKeys {
		if rl.IsKeyPressed(rk) || rl.IsKeyPressedRepeat(rk) {
			app.session.Key(key, mods)
		}
	}

	if mods.Has(viewport.ModCtrl) {
		if rl.IsKeyPressed(rl.KeyS) {
			app.saveLines()
		}
		if rl.IsKeyPressed(rl.KeyL) {
			app.reloadLines()
		}
	} else if mods == 0 {
		app.handleViewKeys()
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		if app.session.Drawing() != nil {
			app.session.CancelDrawing()
			app.Interaction.isDrawing = false
		} else {
			app.session.ListSelect(0)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.session.View().ChangeFov(-float64(wheel) * app.cfg.Navigation.FovStep * 4)
	}

	app.handleMouse(mouse)
}

// handleViewKeys handles the single-key display toggles
func (app *App) handleViewKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyW):
		app.View.showWireframe = !app.View.showWireframe
	case rl.IsKeyPressed(rl.KeyF):
		app.View.showFilled = !app.View.showFilled
	case rl.IsKeyPressed(rl.KeyT):
		app.toggleTopBottom()
	case rl.IsKeyPressed(rl.KeyHome):
		app.session.Press(session.ButtonCenter)
	case rl.IsKeyPressed(rl.KeyC):
		app.View.colorIndex = (app.View.colorIndex + 1) % len(model.Colors)
		app.session.SetModelColor(app.View.colorIndex)
	case rl.IsKeyPressed(rl.KeyE):
		app.View.emission = nextEmission(app.View.emission)
		app.session.SetEmissionAlpha(app.View.emission)
	case rl.IsKeyPressed(rl.KeyH), rl.IsKeyPressed(rl.KeyF1):
		app.View.showHelp = !app.View.showHelp
	case rl.IsKeyPressed(rl.KeyEnter):
		app.beginLabelEditing()
	}
}

func nextEmission(current uint8) uint8 {
	for i, e := range emissionSteps {
		if e == current {
			return emissionSteps[(i+1)%len(emissionSteps)]
		}
	}
	return emissionSteps[0]
}

// handleMouse routes clicks to the overlay or the scene. Alt+drag draws
// a new line on the model; middle or right drag pans.
func (app *App) handleMouse(mouse rl.Vector2) {
	s := app.session
	overUI := app.overUI(mouse)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		altPressed := rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
		switch {
		case overUI:
			app.handleUIClick(mouse)
		case altPressed:
			app.Interaction.isDrawing = s.StartDrawing(screenPoint(mouse))
		default:
			s.PointerDown(screenPoint(mouse))
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Interaction.isDrawing {
		app.Interaction.isDrawing = false
		if _, ok := s.FinishDrawing(screenPoint(mouse)); ok {
			app.log.Debug().Int("lines", s.Markers().Count()).Msg("line added")
		}
	}

	// Right button on a list row grows that line's highlight sphere
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		if id, ok := app.rowAt(mouse); ok {
			app.Interaction.highlighted = id
			s.HighlightPress(id)
		} else if !overUI {
			app.Interaction.isPanning = true
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		if app.Interaction.highlighted != 0 {
			s.HighlightRelease(app.Interaction.highlighted)
			app.Interaction.highlighted = 0
		}
		app.Interaction.isPanning = false
	}

	if app.Interaction.isPanning || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}
}

// doPan moves the view content with the mouse
func (app *App) doPan(delta rl.Vector2) {
	view := app.session.View()
	vp := view.Viewport()
	if vp.Height <= 0 {
		return
	}
	// Pan moves a tenth of the view distance per unit
	perPixel := geometry.FrustumHeight(1, view.Camera().FieldOfView) * 10 / vp.Height
	view.Pan(float64(delta.X)*perPixel, -float64(delta.Y)*perPixel)
}

func (app *App) beginLabelEditing() {
	sel := app.session.Markers().Selected()
	if sel == nil {
		return
	}
	app.UI.editing = true
	app.UI.editID = sel.ID
	app.UI.editBuffer = []rune(sel.Label)
}

// handleLabelEditing collects typed text until Enter or Escape
func (app *App) handleLabelEditing() {
	for char := rl.GetCharPressed(); char > 0; char = rl.GetCharPressed() {
		if char >= 32 {
			app.UI.editBuffer = append(app.UI.editBuffer, rune(char))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(app.UI.editBuffer) > 0 {
		app.UI.editBuffer = app.UI.editBuffer[:len(app.UI.editBuffer)-1]
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		if err := app.session.SetLabel(app.UI.editID, string(app.UI.editBuffer)); err != nil {
			app.log.Warn().Err(err).Int("id", app.UI.editID).Msg("cannot rename line")
		}
		app.UI.editing = false
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.UI.editing = false
	}
}
