package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for aurupd.

Bash:
  $ source <(aurupd completion bash)
  # Persist for all sessions:
  $ aurupd completion bash | sudo tee /usr/share/bash-completion/completions/aurupd

Zsh:
  $ aurupd completion zsh > "${fpath[1]}/_aurupd"
  # Start a new shell for this to take effect.

Fish:
  $ aurupd completion fish > ~/.config/fish/completions/aurupd.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		default:
			return rootCmd.GenFishCompletion(out, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
