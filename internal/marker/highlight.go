package marker

// StartHighlight shows the marker's sphere at its base radius and grows it
// on every timer tick. Markers without a sphere are ignored.
func (s *Store) StartHighlight(m *LineMarker) {
	if m == nil || m.sphere == nil {
		return
	}
	if s.growing != nil && s.growing != m {
		s.growing.resetSphere(false)
	}
	s.growing = m
	m.resetSphere(true)
	s.timer.Start()
}

// StopHighlight stops growth, hides the sphere and restores its radius.
// Calling it when nothing grows is harmless.
func (s *Store) StopHighlight(m *LineMarker) {
	s.timer.Stop()
	if m != nil {
		m.resetSphere(false)
	}
	if s.growing != nil && s.growing != m {
		s.growing.resetSphere(false)
	}
	s.growing = nil
}

// Growing returns the marker whose sphere is growing, if any
func (s *Store) Growing() *LineMarker {
	return s.growing
}

func (s *Store) tick() {
	m := s.growing
	if m == nil || m.sphere == nil {
		return
	}
	r := m.sphere.node.Radius + m.BaseSphereRadius*s.opts.HighlightGrowth
	m.sphere.node.Radius = min(r, s.opts.MaxSphereRadius)
}
