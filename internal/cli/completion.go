package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand prints a completion script for the requested shell.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for latticekit.

The script completes the subcommands (lattice, hilbert, render, browse, serve,
cache) and their flags, including the render --format and --engine values,
the --space names, and description files for --config and --input.

To load completions:

Bash:
  $ source <(latticekit completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ latticekit completion bash > /etc/bash_completion.d/latticekit
  # macOS:
  $ latticekit completion bash > $(brew --prefix)/etc/bash_completion.d/latticekit

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ latticekit completion zsh > "${fpath[1]}/_latticekit"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ latticekit completion fish | source

  # To load completions for each session, execute once:
  $ latticekit completion fish > ~/.config/fish/completions/latticekit.fish

PowerShell:
  PS> latticekit completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> latticekit completion powershell > latticekit.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
