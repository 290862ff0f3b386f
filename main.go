package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fake-news-detector",
	Short: "Classify news text as FAKE or REAL with a choice of models",
	Long: "fake-news-detector runs analysis sessions against a model-serving\n" +
		"classifier (BERT, RoBERTa or LSTM) and renders the verdict, probabilities,\n" +
		"text features, suspicious indicators and attention heatmap.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
