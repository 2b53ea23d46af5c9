package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/session"
	"github.com/philipparndt/findflaw/internal/status"
	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/philipparndt/findflaw/pkg/viewer"
)

// linesPathFor returns the explicit line-set file or the model's sidecar
func linesPathFor(modelPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return marker.SidecarPath(modelPath)
}

// openSession loads a model and, when it exists, its line set into a
// session without a window. Viewport sizes default to the window config.
func openSession(ctx context.Context, modelPath, linesPath string, width, height int) (*session.Session, *status.Board, error) {
	headless := *cfg
	headless.Watch.Enabled = false
	if width <= 0 {
		width = cfg.Window.Width
	}
	if height <= 0 {
		height = cfg.Window.Height
	}

	board := status.NewBoard(log)
	vp := viewer.Viewport{Width: float64(width), Height: float64(height)}
	s := session.New(&headless, vp, board, log)

	if err := s.LoadModel(ctx, modelPath); err != nil {
		s.Close()
		return nil, nil, err
	}

	path := linesPathFor(modelPath, linesPath)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && linesPath == "" {
		return s, board, nil
	}
	if err := s.LoadLines(path); err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, board, nil
}

func segments(records []marker.Record) []analysis.Segment {
	out := make([]analysis.Segment, 0, len(records))
	for _, r := range records {
		m, err := marker.FromRecord(r)
		if err != nil {
			continue
		}
		out = append(out, analysis.Segment{ID: m.ID, Label: m.Label, Start: m.Start, End: m.End})
	}
	return out
}
