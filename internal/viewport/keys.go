package viewport

// Key is a navigation key, independent of the windowing library
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPlus
	KeyMinus
	KeyPageUp
	KeyPageDown
)

// Modifiers is a set of held modifier keys
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
)

// Has reports whether all of m2 are held
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

const fovKeyStep = 0.5

type axisStep struct {
	dx, dy, dz int
}

var keyAxes = map[Key]axisStep{
	KeyLeft:  {-1, 0, 0},
	KeyRight: {+1, 0, 0},
	KeyUp:    {0, +1, 0},
	KeyDown:  {0, -1, 0},
	KeyPlus:  {0, 0, +1},
	KeyMinus: {0, 0, -1},
}

// HandleKey applies a key chord: Ctrl moves the camera, Shift moves the
// target, and with either modifier PageUp/PageDown zoom. Holding both
// applies both. Returns whether the chord was used.
func (in *Interaction) HandleKey(key Key, mods Modifiers) bool {
	handled := false
	if mods.Has(ModCtrl) {
		handled = in.applyKey(key, in.MovePosition) || handled
	}
	if mods.Has(ModShift) {
		handled = in.applyKey(key, in.MoveTarget) || handled
	}
	return handled
}

func (in *Interaction) applyKey(key Key, move func(dx, dy, dz int)) bool {
	switch key {
	case KeyPageUp:
		in.ChangeFov(-fovKeyStep)
		return true
	case KeyPageDown:
		in.ChangeFov(+fovKeyStep)
		return true
	}
	step, ok := keyAxes[key]
	if !ok {
		return false
	}
	move(step.dx, step.dy, step.dz)
	return true
}
