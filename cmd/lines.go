package cmd

import (
	"fmt"
	"io"

	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	linesFile    string
	linesLongest int
	linesMin     float64
	linesMax     float64
)

var linesCmd = &cobra.Command{
	Use:   "lines <model>",
	Short: "List the annotated lines of a model",
	Long: `List every line of a model's line set with its label and length.
The line set is read from <model>.lines.json unless --lines is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)

	linesCmd.Flags().StringVar(&linesFile, "lines", "", "line-set file (default <model>.lines.json)")
	linesCmd.Flags().IntVar(&linesLongest, "longest", 0, "only show the N longest lines")
	linesCmd.Flags().Float64Var(&linesMin, "min", 0, "minimum line length")
	linesCmd.Flags().Float64Var(&linesMax, "max", 0, "maximum line length")
}

func runLines(cmd *cobra.Command, args []string) error {
	records, err := marker.ReadFile(linesPathFor(args[0], linesFile))
	if err != nil {
		return err
	}
	report := analysis.AnalyzeLines(segments(records))

	lines := report.Lines
	if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
		upper := linesMax
		if !cmd.Flags().Changed("max") {
			upper = report.MaxLength
		}
		lines = analysis.FindLinesByLength(report, linesMin, upper)
	}
	if linesLongest > 0 {
		lines = analysis.FindLongestLines(&analysis.LineReport{Lines: lines}, linesLongest)
	}

	out := cmd.OutOrStdout()
	for _, l := range lines {
		printLine(out, l)
	}

	fmt.Fprintf(out, "\n%d line(s)", report.Count)
	if report.Count > 0 {
		fmt.Fprintf(out, ", length min %.4f max %.4f avg %.4f total %.4f",
			report.MinLength, report.MaxLength, report.AvgLength, report.TotalLength)
	}
	fmt.Fprintln(out)
	return nil
}

func printLine(out io.Writer, l analysis.LineInfo) {
	label := l.Label
	if label == "" {
		label = "-"
	}
	fmt.Fprintf(out, "%4d  %-20s %s -> %s  %.4f\n",
		l.ID, label, analysis.FormatVector(l.Start), analysis.FormatVector(l.End), l.Length)
}
