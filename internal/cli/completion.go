package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/prompt"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dreamhouse.

  $ source <(dreamhouse completion bash)
  $ dreamhouse completion zsh > "${fpath[1]}/_dreamhouse"
  $ dreamhouse completion fish | source
  PS> dreamhouse completion powershell | Out-String | Invoke-Expression

Formats, styles, parsers and placement modes complete as flag values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// =============================================================================
// Flag value completion
// =============================================================================

func fixedValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes the last element of a comma-separated format
// list, skipping formats already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	given := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		given[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range pipeline.Formats {
		if !given[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func registerStyleCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("style", fixedValues(styles.Names...))
}

func registerFormatCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func registerParserCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("parser", fixedValues(prompt.ParserRegex, prompt.ParserGemini))
}

func registerModeCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode", fixedValues(mode2D, mode3D, modeBoth))
}
