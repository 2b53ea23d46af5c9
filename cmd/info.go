package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/model"
	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display information about a model and its line set",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	md, deps, err := model.Read(cmd.Context(), filename)
	if err != nil {
		return err
	}
	info := analysis.AnalyzeModel(md)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	if info.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", info.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintf(out, "Triangles: %d\n", info.TriangleCount)
	fmt.Fprintf(out, "Surface Area: %.6f square units\n", info.SurfaceArea)
	if !info.BoundingBox.IsEmpty() {
		fmt.Fprintf(out, "Min: %s\n", analysis.FormatVector(info.BoundingBox.Min))
		fmt.Fprintf(out, "Max: %s\n", analysis.FormatVector(info.BoundingBox.Max))
		fmt.Fprintf(out, "Size: %.6f x %.6f x %.6f\n", info.Dimensions.X, info.Dimensions.Y, info.Dimensions.Z)
	}
	if len(deps) > 1 {
		fmt.Fprintln(out, "\nSources:")
		for _, d := range deps {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}

	records, err := marker.ReadFile(marker.SidecarPath(filename))
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "\nLines: none")
		return nil
	}
	if err != nil {
		return err
	}
	report := analysis.AnalyzeLines(segments(records))
	fmt.Fprintf(out, "\nLines: %d (total length %.6f)\n", report.Count, report.TotalLength)
	return nil
}
