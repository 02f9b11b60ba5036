package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/solver"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for papg.

Besides commands and flags, the scripts complete strategy names, lock
policies and render formats:

  $ papg solve games/elevator.gm --strategy <TAB>
  input  input-nonreturning  priority  ...  propagation-hybrid
  $ papg bench games/*.gm --strategies recursive,<TAB>
  $ papg render games/elevator.gm --format svg,<TAB>

To load completions:

Bash:
  $ source <(papg completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ papg completion bash > /etc/bash_completion.d/papg
  # macOS:
  $ papg completion bash > $(brew --prefix)/etc/bash_completion.d/papg

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ papg completion zsh > "${fpath[1]}/_papg"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ papg completion fish | source

  # To load completions for each session, execute once:
  $ papg completion fish > ~/.config/fish/completions/papg.fish

PowerShell:
  PS> papg completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> papg completion powershell > papg.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions attaches value completion to the named flags of cmd.
// Flags that cmd does not define are skipped.
func registerCompletions(cmd *cobra.Command, funcs map[string]cobra.CompletionFunc) {
	for name, fn := range funcs {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, fn)
	}
}

func strategyNames() []string {
	var names []string
	for _, st := range solver.Strategies() {
		names = append(names, string(st))
	}
	return names
}

// completeOne offers the candidates starting with toComplete.
func completeOne(candidates ...string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(c, toComplete) {
				out = append(out, c)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeList completes the last element of a comma-separated list, leaving
// out the elements already given.
func completeList(candidates ...string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		done, last := "", toComplete
		if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
			done, last = toComplete[:i+1], toComplete[i+1:]
		}
		given := make(map[string]bool)
		for _, d := range strings.Split(done, ",") {
			given[strings.TrimSpace(d)] = true
		}
		var out []string
		for _, c := range candidates {
			if !given[c] && strings.HasPrefix(c, last) {
				out = append(out, done+c)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
