package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/session"
	"github.com/philipparndt/findflaw/pkg/stl"
)

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showHelp      bool
	topView       bool
	colorIndex    int
	emission      uint8
}

// MeshCache holds the GPU mesh of the current model. It is rebuilt when
// the model, its colour or its emission change.
type MeshCache struct {
	model    *stl.Model
	color    rl.Color
	emission uint8
	mesh     rl.Mesh
	material rl.Material
	loaded   bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	lastMousePos rl.Vector2
	isPanning    bool
	isDrawing    bool
	highlighted  int // Marker id whose sphere is growing, 0 for none
}

// listRow is a clickable entry of the line list
type listRow struct {
	id     int
	bounds rl.Rectangle
}

// navButton is one of the on-screen navigation buttons
type navButton struct {
	button session.Button
	label  string
	bounds rl.Rectangle
}

// UIState holds UI-related state
type UIState struct {
	font         rl.Font
	listBounds   rl.Rectangle
	rows         []listRow
	buttons      []navButton
	lastClickRow int
	lastClickAt  float64

	// Label editing of the selected line
	editing    bool
	editID     int
	editBuffer []rune
}
