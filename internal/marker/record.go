package marker

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/philipparndt/findflaw/pkg/geometry"
)

// Record is the persisted form of a marker
type Record struct {
	ID        int     `json:"id"`
	Label     string  `json:"label"`
	StartX    float64 `json:"StartX"`
	StartY    float64 `json:"StartY"`
	StartZ    float64 `json:"StartZ"`
	EndX      float64 `json:"EndX"`
	EndY      float64 `json:"EndY"`
	EndZ      float64 `json:"EndZ"`
	ColorArgb int32   `json:"ColorArgb"`
}

// Record captures the marker for persistence
func (m *LineMarker) Record() Record {
	return Record{
		ID:        m.ID,
		Label:     m.Label,
		StartX:    m.Start.X,
		StartY:    m.Start.Y,
		StartZ:    m.Start.Z,
		EndX:      m.End.X,
		EndY:      m.End.Y,
		EndZ:      m.End.Z,
		ColorArgb: m.Color.ARGB(),
	}
}

// FromRecord rebuilds a finalized marker
func FromRecord(r Record) (*LineMarker, error) {
	start := geometry.NewVector3(r.StartX, r.StartY, r.StartZ)
	end := geometry.NewVector3(r.EndX, r.EndY, r.EndZ)

	m, err := New(r.ID, start, end, geometry.ColorFromARGB(r.ColorArgb), r.Label)
	if err != nil {
		return nil, err
	}
	if err := m.FinalizeEnd(end, true); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile loads records from a JSON line-set file
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse lines: %w", err)
	}
	// "[]" decodes to an empty slice, "null" leaves it nil
	if records == nil {
		return nil, fmt.Errorf("failed to parse lines: not a list")
	}
	return records, nil
}

// WriteFile stores records as an indented JSON line-set file
func WriteFile(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lines: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lines: %w", err)
	}
	return nil
}

// SidecarPath returns the default line-set file next to a model file
func SidecarPath(modelPath string) string {
	return modelPath + ".lines.json"
}
