package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"logsift/pkg/advisor"
	"logsift/pkg/config"
	"logsift/pkg/logging"
	"logsift/pkg/tracing"
)

var (
	analyzeModel string
	analyzeDepth string
	quickAction  string
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [question]",
		Short: "Ask an LLM to analyze the archived batch",
		Long: `Build an analysis context from the archived batch (statistics, the
detected actor's journey, failure patterns, and the most relevant
records for the question) and send it to an LLM.

Requires OPENROUTER_API_KEY environment variable to be set.

Examples:
  logsift analyze "why did checkout fail for john123?"
  logsift analyze --action find_errors
  logsift analyze --depth deep "trace user alice through the API"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}
	cmd.Flags().StringVar(&analyzeModel, "model", "", "override LLM model")
	cmd.Flags().StringVar(&analyzeDepth, "depth", "", "analysis depth: quick, standard, or deep")
	cmd.Flags().StringVar(&quickAction, "action", "", "canned prompt: find_errors, list_users, api_summary, or error_patterns")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return errors.New("OPENROUTER_API_KEY environment variable is required")
	}

	question := ""
	if len(args) > 0 {
		question = args[0]
	}
	if question == "" && quickAction != "" {
		prompt, ok := config.QuickActions[quickAction]
		if !ok {
			return errors.Errorf("unknown quick action %q", quickAction)
		}
		question = prompt
	}
	if question == "" {
		question = "Summarize the notable errors and patterns in these logs."
	}

	depth := analyzeDepth
	if depth == "" {
		depth = cfg.Depth
	}
	model := analyzeModel
	if model == "" {
		model = cfg.Model
	}

	ctx := cmd.Context()
	sess, err := loadSession(ctx)
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(ctx, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if err != nil {
		return errors.Errorf("tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	log := logging.Component("analyze")
	log.Info().Str("model", config.ResolveModel(model)).Str("depth", depth).Msg("analyzing")

	spanCtx, span := provider.StartSpan(ctx, "advisor.analyze")
	result, err := advisor.Analyze(spanCtx, advisor.Config{
		APIKey: apiKey,
		Model:  model,
		Depth:  depth,
	}, sess, question)
	span.End()
	if err != nil {
		return err
	}

	fmt.Println(result)

	if suggestions := advisor.SuggestNextSteps(result); len(suggestions) > 0 {
		fmt.Println("\nSuggested next steps:")
		for _, s := range suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}
