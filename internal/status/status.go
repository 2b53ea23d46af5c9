// Package status holds the user-facing status line, line count and
// selection summary.
package status

import (
	"strconv"
	"sync"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/rs/zerolog"
)

// Messages shown to the user
const (
	LineSelected   = "Line selected."
	NoLineSelected = "No line selected."
	ModelLoaded    = "Model loaded successfully"
	LinesLoaded    = "Lines loaded"
	LinesSaved     = "Lines saved"
	LinesReloaded  = "Lines reloaded"
	NoSelection    = "None"
)

// Surface receives status updates
type Surface interface {
	SetStatus(msg string)
	UpdateLineCount(n int)
	UpdateSelectedLine(m *marker.LineMarker)
}

// Board is an in-memory Surface that also logs every status message.
// It may be read from another goroutine than the one updating it.
type Board struct {
	log zerolog.Logger

	mu         sync.RWMutex
	message    string
	lineCount  int
	selectedID string
	labelText  string
}

// NewBoard creates an empty board
func NewBoard(log zerolog.Logger) *Board {
	return &Board{
		log:        log.With().Str("component", "status").Logger(),
		selectedID: NoSelection,
	}
}

// SetStatus replaces the status line
func (b *Board) SetStatus(msg string) {
	b.mu.Lock()
	b.message = msg
	b.mu.Unlock()
	b.log.Info().Msg(msg)
}

// UpdateLineCount shows the number of markers
func (b *Board) UpdateLineCount(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineCount = n
}

// UpdateSelectedLine shows the selected marker's id and label
func (b *Board) UpdateSelectedLine(m *marker.LineMarker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m == nil {
		b.selectedID = NoSelection
		b.labelText = ""
		return
	}
	b.selectedID = strconv.Itoa(m.ID)
	b.labelText = m.Label
}

// Snapshot is a copy of the board's contents
type Snapshot struct {
	Message    string
	LineCount  int
	SelectedID string
	LabelText  string
}

// Snapshot returns the current contents
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		Message:    b.message,
		LineCount:  b.lineCount,
		SelectedID: b.selectedID,
		LabelText:  b.labelText,
	}
}
