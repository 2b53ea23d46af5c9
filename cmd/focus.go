package cmd

import (
	"fmt"

	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	focusID    int
	focusLines string
)

var focusCmd = &cobra.Command{
	Use:   "focus <model>",
	Short: "Print the camera after focusing on a line",
	Long: `Run the focus animation on a line to completion and print the resulting
camera, as the viewer does when a line is activated in the list.`,
	Args: cobra.ExactArgs(1),
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)

	focusCmd.Flags().IntVar(&focusID, "id", 0, "id of the line to focus on")
	focusCmd.Flags().StringVar(&focusLines, "lines", "", "line-set file (default <model>.lines.json)")
	addViewportFlags(focusCmd)

	focusCmd.MarkFlagRequired("id")
}

func runFocus(cmd *cobra.Command, args []string) error {
	s, _, err := openSession(cmd.Context(), args[0], focusLines, viewportWidth, viewportHeight)
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.Markers().ByID(focusID)
	if err != nil {
		return err
	}
	if !s.View().FocusOnMarkerAnimated(m) {
		return fmt.Errorf("cannot focus on line %d", focusID)
	}
	s.Frame(cmd.Context(), cfg.Focus.Duration)

	cam := s.Camera()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Line: %s\n", m.DisplayText())
	fmt.Fprintf(out, "Position: %s\n", analysis.FormatVector(cam.Position))
	fmt.Fprintf(out, "Target: %s\n", analysis.FormatVector(cam.Target()))
	fmt.Fprintf(out, "Distance: %.6f\n", cam.Distance())
	fmt.Fprintf(out, "Field of view: %.1f\n", cam.FieldOfView)
	return nil
}
