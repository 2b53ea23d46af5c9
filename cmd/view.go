package cmd

import (
	"github.com/philipparndt/findflaw/internal/app"
	"github.com/spf13/cobra"
)

var viewLines string

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open a model in the viewer window",
	Long: `Open an STL or OpenSCAD model in the viewer window together with its
line set. The model and the line set are reloaded when they change on disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVar(&viewLines, "lines", "", "line-set file (default <model>.lines.json)")

	// findflaw <file> is short for findflaw view <file>
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(cmd, args)
	}
}

func runView(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), cfg, app.Options{
		ModelPath: args[0],
		LinesPath: viewLines,
	}, log)
}
