// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var installHints = map[string]string{
	"bash":       "phrasekit completion bash > /etc/bash_completion.d/phrasekit",
	"zsh":        "phrasekit completion zsh > ~/.zsh/completions/_phrasekit",
	"fish":       "phrasekit completion fish > ~/.config/fish/completions/phrasekit.fish",
	"powershell": "phrasekit completion powershell >> $PROFILE",
}

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for phrasekit.

Install instructions:
  Bash:       ` + installHints["bash"] + `
  Zsh:        ` + installHints["zsh"] + `
  Fish:       ` + installHints["fish"] + `
  PowerShell: ` + installHints["powershell"],
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(rootCmd, cmd.OutOrStdout(), args[0])
		},
	}
}

// Generate writes the completion script for shell to w, preceded by an
// install hint.
func Generate(rootCmd *cobra.Command, w io.Writer, shell string) error {
	hint, ok := installHints[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}
	fmt.Fprintf(w, "# phrasekit %s completion\n# Install: %s\n\n", shell, hint)

	switch shell {
	case "bash":
		return rootCmd.GenBashCompletion(w)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	default:
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
}
