package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/briangreenhill/workoutplanner/internal/generators"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Ask the configured provider to write a plan",
	Long: `Sends the plan request to the text-generation provider selected by LLM_PROVIDER and
prints its answer unchanged. Output is rendered as markdown when stdout is a terminal.`,
	Example: `  LLM_API_KEY=... planner llm -l intermediate -g "run a 10k" -d 4 --info "bad left knee"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		gen, err := a.Generator(generators.NameLLM)
		if err != nil {
			return err
		}

		text, err := gen.Generate(cmdContext(cmd), requestFromFlags(cmd))
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")
		if !raw && isTerminal(cmd) {
			if rendered, err := renderMarkdown(text); err == nil {
				text = rendered
			} else {
				a.Log.Debug().Err(err).Msg("markdown render failed, printing raw text")
			}
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(llmCmd)
	addRequestFlags(llmCmd)
	llmCmd.Flags().String("info", "", "Additional information or preferences for the plan")
	llmCmd.Flags().Bool("raw", false, "Print the provider response without markdown rendering")
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
