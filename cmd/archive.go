package cmd

import (
	"fmt"

	"github.com/philipparndt/findflaw/internal/archive"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/spf13/cobra"
)

var (
	archiveDriver   string
	archiveDSN      string
	archiveLines    string
	archiveRevision int
	archiveOut      string
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep revisions of line sets in a database",
	Long: `Push line sets into a SQLite or PostgreSQL archive, list what is stored
and pull a revision back into a line-set file.`,
}

var archivePushCmd = &cobra.Command{
	Use:   "push <model>",
	Short: "Store the current line set of a model as a new revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := marker.ReadFile(linesPathFor(args[0], archiveLines))
		if err != nil {
			return err
		}
		return withArchive(func(a *archive.Archive) error {
			sum, err := a.Push(cmd.Context(), args[0], records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s revision %d: %d line(s)\n", sum.ModelPath, sum.Revision, sum.LineCount)
			return nil
		})
	},
}

var archivePullCmd = &cobra.Command{
	Use:   "pull <model>",
	Short: "Write an archived line set back to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(func(a *archive.Archive) error {
			records, sum, err := a.Revision(cmd.Context(), args[0], archiveRevision)
			if err != nil {
				return err
			}
			path := linesPathFor(args[0], archiveOut)
			if err := marker.WriteFile(path, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision %d: %d line(s) written to %s\n", sum.Revision, sum.LineCount, path)
			return nil
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived line sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchive(func(a *archive.Archive) error {
			summaries, err := a.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range summaries {
				fmt.Fprintf(out, "%s\t%d\t%s\t%d\n", s.ModelPath, s.Revision, s.CreatedAt.Format("2006-01-02 15:04:05"), s.LineCount)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePushCmd, archivePullCmd, archiveListCmd)

	archiveCmd.PersistentFlags().StringVar(&archiveDriver, "driver", "", "database driver, sqlite or postgres (default archive.driver)")
	archiveCmd.PersistentFlags().StringVar(&archiveDSN, "dsn", "", "database connection string (default archive.dsn)")

	archivePushCmd.Flags().StringVar(&archiveLines, "lines", "", "line-set file (default <model>.lines.json)")
	archivePullCmd.Flags().IntVar(&archiveRevision, "revision", 0, "revision to pull, 0 for the newest")
	archivePullCmd.Flags().StringVar(&archiveOut, "out", "", "output file (default <model>.lines.json)")
}

func withArchive(fn func(a *archive.Archive) error) error {
	driver, dsn := cfg.Archive.Driver, cfg.Archive.DSN
	if archiveDriver != "" {
		driver = archiveDriver
	}
	if archiveDSN != "" {
		dsn = archiveDSN
	}

	a, err := archive.Open(driver, dsn, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
