package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/findflaw/pkg/geometry"
	"github.com/philipparndt/findflaw/pkg/stl"
)

// ModelInfo summarises the geometry of a model
type ModelInfo struct {
	Name          string
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
}

// AnalyzeModel measures a model
func AnalyzeModel(model *stl.Model) ModelInfo {
	info := ModelInfo{
		Name:          model.Name,
		TriangleCount: model.TriangleCount(),
		BoundingBox:   model.BoundingBox(),
	}
	if !info.BoundingBox.IsEmpty() {
		info.Dimensions = info.BoundingBox.Size()
	}
	for _, tri := range model.Triangles {
		info.SurfaceArea += tri.Area()
	}
	return info
}

// Segment is an annotated line to report on
type Segment struct {
	ID    int
	Label string
	Start geometry.Vector3
	End   geometry.Vector3
}

// LineInfo is a segment with its length
type LineInfo struct {
	Segment
	Length float64
}

// LineReport contains length statistics of a line set
type LineReport struct {
	Count       int
	TotalLength float64
	MinLength   float64
	MaxLength   float64
	AvgLength   float64
	Lines       []LineInfo
}

// AnalyzeLines measures every segment. Lines keep the input order.
func AnalyzeLines(segments []Segment) *LineReport {
	report := &LineReport{
		Count: len(segments),
		Lines: make([]LineInfo, 0, len(segments)),
	}
	if len(segments) == 0 {
		return report
	}

	report.MinLength = math.MaxFloat64
	for _, s := range segments {
		length := s.Start.Distance(s.End)
		report.Lines = append(report.Lines, LineInfo{Segment: s, Length: length})

		report.TotalLength += length
		report.MinLength = math.Min(report.MinLength, length)
		report.MaxLength = math.Max(report.MaxLength, length)
	}
	report.AvgLength = report.TotalLength / float64(report.Count)
	return report
}

// FindLinesByLength finds all lines within a length range
func FindLinesByLength(report *LineReport, minLength, maxLength float64) []LineInfo {
	var lines []LineInfo
	for _, l := range report.Lines {
		if l.Length >= minLength && l.Length <= maxLength {
			lines = append(lines, l)
		}
	}
	return lines
}

// FindLongestLines returns the N longest lines, longest first
func FindLongestLines(report *LineReport, count int) []LineInfo {
	lines := make([]LineInfo, len(report.Lines))
	copy(lines, report.Lines)

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Length > lines[j].Length
	})

	if count > len(lines) {
		count = len(lines)
	}
	return lines[:count]
}

// FindNearestVertex finds the model vertex nearest to a point
func FindNearestVertex(model *stl.Model, point geometry.Vector3) (geometry.Vector3, float64, bool) {
	var nearest geometry.Vector3
	minDistance := math.MaxFloat64
	found := false

	for _, tri := range model.Triangles {
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			if d := point.Distance(v); d < minDistance {
				minDistance = d
				nearest = v
				found = true
			}
		}
	}
	return nearest, minDistance, found
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
