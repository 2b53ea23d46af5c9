package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for findflaw.

To load completions:

Bash:

  $ source <(findflaw completion bash)

  To load completions for each session, execute once:
  Linux:
    $ findflaw completion bash > /etc/bash_completion.d/findflaw
  macOS:
    $ findflaw completion bash > /usr/local/etc/bash_completion.d/findflaw

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ findflaw completion zsh > "${fpath[1]}/_findflaw"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ findflaw completion fish | source

  To load completions for each session, execute once:
  $ findflaw completion fish > ~/.config/fish/completions/findflaw.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		default:
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	completionCmd.PersistentPreRunE = skipSetup
}
