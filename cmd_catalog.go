package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fake-news-detector/format"
	"fake-news-detector/services"
)

var modelsFlags struct {
	markdown bool
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the model comparison table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := format.ASCII
		if modelsFlags.markdown {
			mode = format.Markdown
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, services.RenderComparison(mode))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Key findings: %s\n", services.KeyFindings())
		return nil
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Print the bundled example texts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, ex := range services.Examples() {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s\n%s\n%s\n", ex.Label, strings.Repeat("-", len(ex.Label)), ex.Text)
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsFlags.markdown, "markdown", false, "Render the table as Markdown")
}
