package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// GenCompletions writes the shell completion script for the root of command.
func GenCompletions(command *cobra.Command, shell string, w io.Writer) error {
	root := command.Root()

	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q (expected bash, zsh, fish or powershell)", shell)
	}
}
