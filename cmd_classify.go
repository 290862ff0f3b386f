package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"fake-news-detector/config"
	"fake-news-detector/models"
	"fake-news-detector/services"
)

var classifyFlags struct {
	text    string
	example string
	url     string
	model   string
	offline bool
	asJSON  bool
	verbose bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Run a single analysis session and print the result",
	Long: `Classify one piece of news text and print the verdict.

Usage:
  fake-news-detector classify "Breaking: ..."           # Text as argument
  fake-news-detector classify --example fake            # Bundled example
  fake-news-detector classify --url https://...         # Article from a page
  echo "..." | fake-news-detector classify -            # Text from stdin
  fake-news-detector classify --model roberta --offline "..."`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVar(&classifyFlags.text, "text", "", "Text to classify")
	f.StringVar(&classifyFlags.example, "example", "", "Use a bundled example (real, fake)")
	f.StringVar(&classifyFlags.url, "url", "", "Load the article text from a web page")
	f.StringVarP(&classifyFlags.model, "model", "m", "", "Model: bert, roberta or lstm (default: $DEFAULT_MODEL)")
	f.BoolVar(&classifyFlags.offline, "offline", false, "Use the built-in heuristic classifier")
	f.BoolVar(&classifyFlags.asJSON, "json", false, "Print the session state as JSON")
	f.BoolVarP(&classifyFlags.verbose, "verbose", "v", false, "Show log output on stderr")
}

func runClassify(cmd *cobra.Command, args []string) error {
	if !classifyFlags.verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if classifyFlags.offline {
		cfg.Offline = true
	}

	model := cfg.DefaultModel
	if classifyFlags.model != "" {
		if model, err = models.ParseModelID(classifyFlags.model); err != nil {
			return err
		}
	}

	text, err := classifyInput(cmd, cfg, args)
	if err != nil {
		return err
	}

	session := services.NewSessionController(services.NewClassifierFromConfig(cfg))
	if err := session.SelectModel(model); err != nil {
		return err
	}
	session.SetInputText(text)

	submitErr := session.Submit(cmd.Context())
	state := session.State()
	out := cmd.OutOrStdout()

	if classifyFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state); err != nil {
			return err
		}
		return submitErr
	}

	if submitErr != nil {
		if state.LastErrorMessage != "" {
			return fmt.Errorf("%s (%w)", state.LastErrorMessage, submitErr)
		}
		return submitErr
	}
	fmt.Fprint(out, services.FormatText(services.Present(*state.Result)))
	return nil
}

func classifyInput(cmd *cobra.Command, cfg *config.Config, args []string) (string, error) {
	switch {
	case classifyFlags.example != "":
		ex, ok := services.FindExample(classifyFlags.example)
		if !ok {
			return "", fmt.Errorf("unknown example %q", classifyFlags.example)
		}
		return ex.Text, nil
	case classifyFlags.url != "":
		return services.NewContentFetcher(cfg.ClassifierTimeout).FetchURL(cmd.Context(), classifyFlags.url)
	case classifyFlags.text != "":
		return classifyFlags.text, nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", fmt.Errorf("nothing to classify\n\nUsage: fake-news-detector classify <text>\n       fake-news-detector classify --example fake")
}
