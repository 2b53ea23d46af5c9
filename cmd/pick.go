package cmd

import (
	"fmt"

	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/philipparndt/findflaw/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	pickX, pickY   float64
	pickLines      string
	viewportWidth  int
	viewportHeight int
)

var pickCmd = &cobra.Command{
	Use:   "pick <model>",
	Short: "Report what lies under a screen position in the initial view",
	Long: `Load a model and its line set as the viewer would, then pick at the given
pixel position: print the model surface point and select the line under it.`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().Float64Var(&pickX, "x", 0, "horizontal pixel position")
	pickCmd.Flags().Float64Var(&pickY, "y", 0, "vertical pixel position, from the top")
	pickCmd.Flags().StringVar(&pickLines, "lines", "", "line-set file (default <model>.lines.json)")
	addViewportFlags(pickCmd)

	pickCmd.MarkFlagsRequiredTogether("x", "y")
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&viewportWidth, "width", 0, "viewport width in pixels (default window.width)")
	cmd.Flags().IntVar(&viewportHeight, "height", 0, "viewport height in pixels (default window.height)")
}

func runPick(cmd *cobra.Command, args []string) error {
	s, board, err := openSession(cmd.Context(), args[0], pickLines, viewportWidth, viewportHeight)
	if err != nil {
		return err
	}
	defer s.Close()

	pos := viewer.ScreenPoint{X: pickX, Y: pickY}
	if !cmd.Flags().Changed("x") {
		vp := s.View().Viewport()
		pos = viewer.ScreenPoint{X: vp.Width / 2, Y: vp.Height / 2}
	}
	out := cmd.OutOrStdout()

	if hit, ok := s.View().PickModel(pos); ok {
		fmt.Fprintf(out, "Model: %s\n", analysis.FormatVector(hit.Point))
	} else {
		fmt.Fprintln(out, "Model: -")
	}

	s.PointerDown(pos)
	snap := board.Snapshot()
	fmt.Fprintln(out, snap.Message)
	fmt.Fprintf(out, "Selected: %s\n", snap.SelectedID)
	if snap.LabelText != "" {
		fmt.Fprintf(out, "Label: %s\n", snap.LabelText)
	}
	return nil
}
